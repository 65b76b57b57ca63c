package market

import (
	"context"
	"fmt"
	"math/big"

	"github.com/MixinNetwork/mixin/crypto"
	"github.com/MixinNetwork/mixin/logger"
	"github.com/gofrs/uuid"
	"github.com/rentable/rental/metadata"
	"github.com/shopspring/decimal"
)

// DepositPerByte is the amount of native value escrowed per reserved record
// byte at creation. Records never shrink, the reservation is refunded only
// when a record is destroyed.
const DepositPerByte = 6960

const genesisAppliedPropertyKey = "MARKET:GENESIS:APPLIED"

type Marketplace struct {
	store    Store
	clock    Clock
	guard    *guard
	verifier TokenVerifier
	meta     metadata.Service
}

func BuildMarketplace(ctx context.Context, store Store, conf *Configuration) (*Marketplace, error) {
	clock, err := NewMonotonicClock(store)
	if err != nil {
		return nil, err
	}
	m := &Marketplace{
		store: store,
		clock: clock,
		guard: newGuard(),
	}
	err = m.applyGenesis(conf)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Marketplace) SetClock(c Clock) {
	m.clock = c
}

func (m *Marketplace) SetTokenVerifier(v TokenVerifier) {
	m.verifier = v
}

func (m *Marketplace) SetMetadataService(s metadata.Service) {
	m.meta = s
}

// MintNft delegates to the external metadata capability, the marketplace
// never needs the internals of the metadata format.
func (m *Marketplace) MintNft(ctx context.Context, creator crypto.Hash, uri, title, symbol string) (*metadata.Token, error) {
	if m.meta == nil {
		return nil, ErrMetadataUnavailable
	}
	if !creator.HasValue() {
		return nil, ErrMissingSignature
	}
	return m.meta.Mint(ctx, creator, uri, title, symbol)
}

func (m *Marketplace) VerifyNft(ctx context.Context, mint crypto.Hash) (*metadata.Verification, error) {
	if m.meta == nil {
		return nil, ErrMetadataUnavailable
	}
	return m.meta.Verify(ctx, mint)
}

func (m *Marketplace) Balance(ctx context.Context, address crypto.Hash) (decimal.Decimal, error) {
	return m.store.ReadBalance(address)
}

// Airdrop credits an address from thin air. It exists for the faucet
// endpoint and tests, production deposits arrive through the genesis
// section of the configuration.
func (m *Marketplace) Airdrop(ctx context.Context, address crypto.Hash, amount decimal.Decimal) error {
	if !address.HasValue() || amount.Sign() <= 0 {
		return fmt.Errorf("invalid airdrop %s %s", address, amount)
	}
	return m.store.Deposit(address, amount)
}

func (m *Marketplace) applyGenesis(conf *Configuration) error {
	if conf == nil || len(conf.Genesis) == 0 {
		return nil
	}
	val, err := m.store.ReadProperty([]byte(genesisAppliedPropertyKey))
	if err != nil {
		return err
	}
	if len(val) > 0 {
		return nil
	}
	for _, entry := range conf.Genesis {
		addr, err := crypto.HashFromString(entry.Address)
		if err != nil {
			return fmt.Errorf("invalid genesis address %s", entry.Address)
		}
		amount, err := decimal.NewFromString(entry.Amount)
		if err != nil || amount.Sign() <= 0 {
			return fmt.Errorf("invalid genesis amount %s", entry.Amount)
		}
		err = m.store.Deposit(addr, amount)
		if err != nil {
			return err
		}
		logger.Printf("genesis deposit %s => %s\n", entry.Amount, entry.Address)
	}
	return m.store.WriteProperty([]byte(genesisAppliedPropertyKey), []byte{1})
}

func (m *Marketplace) storageDeposit(payer, record crypto.Hash, size int) *Transfer {
	tid := uuid.NewV5(uuid.NamespaceOID, "deposit/"+record.String())
	return &Transfer{
		TraceId: tid.String(),
		From:    payer,
		To:      record,
		Amount:  decimal.New(int64(size)*DepositPerByte, 0),
	}
}

func amountFromUnits(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
}
