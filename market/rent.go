package market

import (
	"context"
	"fmt"

	"github.com/MixinNetwork/mixin/crypto"
	"github.com/MixinNetwork/mixin/logger"
	"github.com/gofrs/uuid"
)

const DaySeconds = 24 * 3600

// RentNft runs the rental state machine. The caller supplies the collection
// address it believes the NFT belongs to together with the (symbol,
// authority) pair, and the engine re-derives the expected address instead of
// trusting the supplied one. Validation, payment and the rental window
// mutation are one indivisible operation, a fault at any step leaves every
// record and balance untouched.
func (m *Marketplace) RentNft(ctx context.Context, renter, mint, collection, owner crypto.Hash, symbol string, authority crypto.Hash, days uint32) (*Nft, error) {
	if !renter.HasValue() {
		return nil, ErrMissingSignature
	}

	address, _ := DeriveNft(mint)
	unlock := m.guard.lock(address.String())
	defer unlock()

	expected, _ := DeriveCollection(symbol, authority)
	if expected != collection {
		return nil, ErrInvalidCollection
	}

	// The collection record is informational here, its absence is logged
	// and tolerated.
	c, err := m.store.ReadCollection(collection)
	if err != nil {
		return nil, err
	}
	if c == nil {
		logger.Verbosef("RentNft(%s) collection %s not initialized\n", mint, collection)
	} else {
		logger.Verbosef("RentNft(%s) collection %s\n", mint, c.Name)
	}

	timestamp := m.clock.Now().Unix()

	n, err := m.store.ReadNft(address)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, ErrNotFound
	}
	if n.Owner != owner {
		return nil, ErrInvalidOwner
	}
	if n.RentedUntil > timestamp {
		return nil, ErrNftRented
	}
	if !n.RentalEnabled {
		return nil, ErrNftNotListed
	}
	if days < 1 || days > n.RentalMaxDays {
		return nil, ErrInvalidRentalDuration
	}

	total, ok := rentalTotal(n.RentalPrice, days)
	if !ok {
		return nil, ErrPriceOverflow
	}

	trace := uuid.NewV5(uuid.NamespaceOID, fmt.Sprintf("rent/%s/%s/%d", address, renter, timestamp))
	payment := &Transfer{
		TraceId: trace.String(),
		From:    renter,
		To:      n.Owner,
		Amount:  amountFromUnits(total),
	}

	n.Renter = renter
	n.RentedUntil = timestamp + int64(days)*DaySeconds
	n.RentalCount += 1
	err = m.store.RentNft(n, payment)
	if err != nil {
		return nil, err
	}
	logger.Verbosef("RentNft(%s) => %s until %d\n", mint, renter, n.RentedUntil)
	return n, nil
}

func rentalTotal(price uint64, days uint32) (uint64, bool) {
	if price == 0 || days == 0 {
		return 0, true
	}
	total := price * uint64(days)
	if total/price != uint64(days) {
		return 0, false
	}
	return total, true
}
