package market_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MixinNetwork/mixin/crypto"
	"github.com/rentable/rental/market"
	"github.com/rentable/rental/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func buildTestMarketplace(t *testing.T) (*market.Marketplace, *store.BadgerStore, *fakeClock) {
	ctx := context.Background()
	bs, err := store.OpenBadger(ctx, t.TempDir())
	require.Nil(t, err)
	t.Cleanup(func() { bs.Close() })

	mkt, err := market.BuildMarketplace(ctx, bs, nil)
	require.Nil(t, err)
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	mkt.SetClock(clock)
	return mkt, bs, clock
}

func testHash(seed string) crypto.Hash {
	return crypto.NewHash([]byte(seed))
}

func fund(t *testing.T, mkt *market.Marketplace, address crypto.Hash, amount int64) {
	err := mkt.Airdrop(context.Background(), address, decimal.New(amount, 0))
	require.Nil(t, err)
}

func decimalInt(v int64) decimal.Decimal {
	return decimal.New(v, 0)
}

func balance(t *testing.T, mkt *market.Marketplace, address crypto.Hash) decimal.Decimal {
	b, err := mkt.Balance(context.Background(), address)
	require.Nil(t, err)
	return b
}

func TestSetup(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[node]
listen = ":9007"
log-level = 5
verify-ownership = true

[[genesis]]
address = "` + testHash("genesis-account").String() + `"
amount = "1000000000"
`
	err := os.WriteFile(path, []byte(data), 0644)
	require.Nil(err)

	conf, err := market.Setup(path)
	require.Nil(err)
	require.Equal(":9007", conf.Node.Listen)
	require.Equal(5, conf.Node.LogLevel)
	require.True(conf.Node.VerifyOwnership)
	require.Len(conf.Genesis, 1)
	require.Equal("1000000000", conf.Genesis[0].Amount)
}

func TestGenesisAppliedOnce(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	bs, err := store.OpenBadger(ctx, t.TempDir())
	require.Nil(err)
	defer bs.Close()

	account := testHash("genesis-account")
	conf := &market.Configuration{Genesis: []market.GenesisEntry{{
		Address: account.String(),
		Amount:  "12345",
	}}}
	mkt, err := market.BuildMarketplace(ctx, bs, conf)
	require.Nil(err)
	require.Equal("12345", balance(t, mkt, account).String())

	// a rebuild over the same store must not double the deposits
	mkt, err = market.BuildMarketplace(ctx, bs, conf)
	require.Nil(err)
	require.Equal("12345", balance(t, mkt, account).String())
}

func TestMintDelegation(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	mkt, _, _ := buildTestMarketplace(t)
	_, err := mkt.MintNft(ctx, testHash("creator"), "https://meta.example/1", "Pet #1", "PET")
	require.ErrorIs(err, market.ErrMetadataUnavailable)
	_, err = mkt.VerifyNft(ctx, testHash("mint"))
	require.ErrorIs(err, market.ErrMetadataUnavailable)
}
