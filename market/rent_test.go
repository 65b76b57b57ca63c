package market_test

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/MixinNetwork/mixin/crypto"
	"github.com/rentable/rental/market"
	"github.com/stretchr/testify/require"
)

type rentFixture struct {
	mkt       *market.Marketplace
	clock     *fakeClock
	authority crypto.Hash
	owner     crypto.Hash
	renter    crypto.Hash
	mint      crypto.Hash
	nft       *market.Nft
}

func buildRentFixture(t *testing.T, price uint64, maxDays uint32, enabled bool) *rentFixture {
	ctx := context.Background()
	mkt, _, clock := buildTestMarketplace(t)

	f := &rentFixture{
		mkt:       mkt,
		clock:     clock,
		authority: testHash("authority"),
		owner:     testHash("owner"),
		renter:    testHash("renter"),
		mint:      testHash("mint"),
	}
	fund(t, mkt, f.authority, 100000000000)
	fund(t, mkt, f.owner, 100000000000)

	c, err := f.mkt.CreateCollection(ctx, f.authority, "Symb", "Collection", "", "", 0)
	require.Nil(t, err)
	f.nft, err = mkt.CreateNft(ctx, f.owner, f.mint, c.Address, maxDays, price, enabled)
	require.Nil(t, err)
	return f
}

func (f *rentFixture) rent(ctx context.Context, days uint32) (*market.Nft, error) {
	return f.mkt.RentNft(ctx, f.renter, f.mint, f.nft.Collection, f.owner, "Symb", f.authority, days)
}

func TestRentNft(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	f := buildRentFixture(t, 10, 5, true)
	fund(t, f.mkt, f.renter, 30)
	ownerFunded := balance(t, f.mkt, f.owner)

	now := f.clock.Now().Unix()
	n, err := f.rent(ctx, 3)
	require.Nil(err)
	require.Equal(f.renter, n.Renter)
	require.Equal(now+3*market.DaySeconds, n.RentedUntil)
	require.Equal(uint64(1), n.RentalCount)
	require.Equal(market.StateRented, n.State(f.clock.Now()))

	require.Equal("0", balance(t, f.mkt, f.renter).String())
	require.Equal(ownerFunded.Add(decimalInt(30)).String(), balance(t, f.mkt, f.owner).String())

	// an immediate second request must observe the rented window
	fund(t, f.mkt, f.renter, 10)
	_, err = f.rent(ctx, 1)
	require.ErrorIs(err, market.ErrNftRented)

	read, err := f.mkt.GetNft(ctx, f.mint)
	require.Nil(err)
	require.Equal(now+3*market.DaySeconds, read.RentedUntil)
	require.Equal("10", balance(t, f.mkt, f.renter).String())

	// expiry is implicit, the window lapses and the next rental succeeds
	f.clock.advance(3*market.DaySeconds*time.Second + time.Second)
	n, err = f.rent(ctx, 1)
	require.Nil(err)
	require.Equal(uint64(2), n.RentalCount)
	require.Equal("0", balance(t, f.mkt, f.renter).String())
}

func TestRentNftInvalidDuration(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	f := buildRentFixture(t, 10, 5, true)
	fund(t, f.mkt, f.renter, 1000)

	_, err := f.rent(ctx, 6)
	require.ErrorIs(err, market.ErrInvalidRentalDuration)
	_, err = f.rent(ctx, 0)
	require.ErrorIs(err, market.ErrInvalidRentalDuration)

	read, err := f.mkt.GetNft(ctx, f.mint)
	require.Nil(err)
	require.Equal(int64(0), read.RentedUntil)
	require.Equal(uint64(0), read.RentalCount)
	require.Equal("1000", balance(t, f.mkt, f.renter).String())
}

func TestRentNftNotListed(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	f := buildRentFixture(t, 10, 5, false)
	fund(t, f.mkt, f.renter, 1000)

	_, err := f.rent(ctx, 1)
	require.ErrorIs(err, market.ErrNftNotListed)
}

func TestRentNftInvalidCollection(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	f := buildRentFixture(t, 10, 5, true)
	fund(t, f.mkt, f.renter, 1000)

	// a collection address that does not match the derived one is rejected
	// before any state is touched
	_, err := f.mkt.RentNft(ctx, f.renter, f.mint, testHash("bogus"), f.owner, "Symb", f.authority, 1)
	require.ErrorIs(err, market.ErrInvalidCollection)
	_, err = f.mkt.RentNft(ctx, f.renter, f.mint, f.nft.Collection, f.owner, "Other", f.authority, 1)
	require.ErrorIs(err, market.ErrInvalidCollection)

	read, err := f.mkt.GetNft(ctx, f.mint)
	require.Nil(err)
	require.Equal(int64(0), read.RentedUntil)
	require.Equal("1000", balance(t, f.mkt, f.renter).String())
}

func TestRentNftInvalidOwner(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	f := buildRentFixture(t, 10, 5, true)
	fund(t, f.mkt, f.renter, 1000)

	_, err := f.mkt.RentNft(ctx, f.renter, f.mint, f.nft.Collection, testHash("impostor"), "Symb", f.authority, 1)
	require.ErrorIs(err, market.ErrInvalidOwner)
}

func TestRentNftPriceOverflow(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	f := buildRentFixture(t, math.MaxUint64/2, 10, true)
	fund(t, f.mkt, f.renter, 1000)

	_, err := f.rent(ctx, 3)
	require.ErrorIs(err, market.ErrPriceOverflow)

	read, err := f.mkt.GetNft(ctx, f.mint)
	require.Nil(err)
	require.Equal(int64(0), read.RentedUntil)
}

func TestRentNftInsufficientFunds(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	f := buildRentFixture(t, 10, 5, true)
	fund(t, f.mkt, f.renter, 29)
	ownerFunded := balance(t, f.mkt, f.owner)

	_, err := f.rent(ctx, 3)
	require.ErrorIs(err, market.ErrInsufficientFunds)

	// the failed transfer retained no partial mutation
	read, err := f.mkt.GetNft(ctx, f.mint)
	require.Nil(err)
	require.Equal(int64(0), read.RentedUntil)
	require.Equal(uint64(0), read.RentalCount)
	require.Equal("29", balance(t, f.mkt, f.renter).String())
	require.Equal(ownerFunded.String(), balance(t, f.mkt, f.owner).String())
}

func TestRentNftMissingCollectionRecord(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	mkt, _, clock := buildTestMarketplace(t)
	authority := testHash("authority")
	owner := testHash("owner")
	renter := testHash("renter")
	mint := testHash("mint")
	fund(t, mkt, owner, 100000000000)
	fund(t, mkt, renter, 1000)

	// the collection address is valid for the pair but was never created,
	// a rental tolerates the missing record
	collection, _ := market.DeriveCollection("Ghost", authority)
	_, err := mkt.CreateNft(ctx, owner, mint, collection, 5, 10, true)
	require.Nil(err)

	n, err := mkt.RentNft(ctx, renter, mint, collection, owner, "Ghost", authority, 2)
	require.Nil(err)
	require.Equal(clock.Now().Unix()+2*market.DaySeconds, n.RentedUntil)
}

func TestRentNftConcurrentExclusion(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	f := buildRentFixture(t, 10, 5, true)
	fund(t, f.mkt, f.renter, 1000)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.rent(ctx, 1)
		}(i)
	}
	wg.Wait()

	var succeeded, rejected int
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(err, market.ErrNftRented)
			rejected++
		}
	}
	require.Equal(1, succeeded)
	require.Equal(1, rejected)

	read, err := f.mkt.GetNft(ctx, f.mint)
	require.Nil(err)
	require.Equal(uint64(1), read.RentalCount)
	require.Equal("990", balance(t, f.mkt, f.renter).String())
}
