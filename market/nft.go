package market

import (
	"context"
	"fmt"
	"time"

	"github.com/MixinNetwork/mixin/crypto"
	"github.com/MixinNetwork/mixin/logger"
)

const (
	StateUnlisted  = "unlisted"
	StateAvailable = "available"
	StateRented    = "rented"
)

// Nft is the rental configuration and rental window of one mint. The mint
// uniquely determines the record address, so a mint can be registered at
// most once.
type Nft struct {
	Address    crypto.Hash
	Salt       uint8
	Mint       crypto.Hash
	Owner      crypto.Hash
	Collection crypto.Hash
	// Owner policy
	RentalEnabled bool
	RentalPrice   uint64
	RentalMaxDays uint32
	// Rental state, owned by the rental engine
	RentalCount uint64
	Renter      crypto.Hash
	RentedUntil int64
}

func (n *Nft) Size() int {
	return 8 + 32 + 32 + 32 + 1 + 8 + 4 + 8 + 32 + 8
}

// State derives the rental state at the given time. Expiry is implicit,
// there is no explicit return transition.
func (n *Nft) State(at time.Time) string {
	if !n.RentalEnabled {
		return StateUnlisted
	}
	if n.RentedUntil > at.Unix() {
		return StateRented
	}
	return StateAvailable
}

// CreateNft registers the rental record for a mint. It trusts the
// caller-asserted owner unless a TokenVerifier has been configured, the
// underlying token ownership check is delegated to that extension point.
func (m *Marketplace) CreateNft(ctx context.Context, owner, mint, collection crypto.Hash, maxDays uint32, price uint64, enabled bool) (*Nft, error) {
	if !owner.HasValue() {
		return nil, ErrMissingSignature
	}
	if !mint.HasValue() {
		return nil, ErrInvalidMint
	}
	if m.verifier != nil {
		err := m.verifier.VerifyOwnership(ctx, mint, owner)
		if err != nil {
			return nil, fmt.Errorf("verify ownership: %w", err)
		}
	}

	address, salt := DeriveNft(mint)
	unlock := m.guard.lock(address.String())
	defer unlock()

	n := &Nft{
		Address:       address,
		Salt:          salt,
		Mint:          mint,
		Owner:         owner,
		Collection:    collection,
		RentalEnabled: enabled,
		RentalPrice:   price,
		RentalMaxDays: maxDays,
		RentalCount:   0,
		RentedUntil:   0,
	}
	err := m.store.CreateNft(n, m.storageDeposit(owner, address, n.Size()))
	if err != nil {
		return nil, err
	}
	logger.Verbosef("CreateNft(%s) => %s\n", mint, address)
	return n, nil
}

// UpdateNft overwrites the owner policy fields and never touches the
// rental window.
func (m *Marketplace) UpdateNft(ctx context.Context, owner, mint crypto.Hash, maxDays uint32, price uint64, enabled bool) (*Nft, error) {
	if !owner.HasValue() {
		return nil, ErrMissingSignature
	}

	address, _ := DeriveNft(mint)
	unlock := m.guard.lock(address.String())
	defer unlock()

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
	n.RentalMaxDays = maxDays
	n.RentalPrice = price
	n.RentalEnabled = enabled
	err = m.store.UpdateNft(n)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (m *Marketplace) GetNft(ctx context.Context, mint crypto.Hash) (*Nft, error) {
	address, _ := DeriveNft(mint)
	return m.store.ReadNft(address)
}

func (m *Marketplace) ListCollectionNfts(ctx context.Context, collection crypto.Hash, limit int) ([]*Nft, error) {
	return m.store.ListCollectionNfts(collection, limit)
}

func (m *Marketplace) ListOwnerNfts(ctx context.Context, owner crypto.Hash, limit int) ([]*Nft, error) {
	return m.store.ListOwnerNfts(owner, limit)
}
