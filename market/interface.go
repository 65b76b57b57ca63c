package market

import (
	"context"
	"time"

	"github.com/MixinNetwork/mixin/crypto"
	"github.com/shopspring/decimal"
)

// Transfer moves native value between two addresses. TraceId makes the
// transfer idempotent, a trace that has been applied before is skipped.
type Transfer struct {
	TraceId string
	From    crypto.Hash
	To      crypto.Hash
	Amount  decimal.Decimal
}

// Store persists marketplace records and the native value ledger. Composite
// operations apply their record writes and fund movements in one storage
// transaction, so a failed transfer or precondition leaves no partial
// mutation behind.
type Store interface {
	ReadProperty(key []byte) ([]byte, error)
	WriteProperty(key, val []byte) error

	CreateCollection(c *Collection, deposit *Transfer) error
	UpdateCollection(c *Collection) error
	ReadCollection(address crypto.Hash) (*Collection, error)

	CreateCollectionApp(app *CollectionApp, deposit *Transfer) error
	UpdateCollectionApp(app *CollectionApp) error
	RemoveCollectionApp(address crypto.Hash, refundTo crypto.Hash) error
	ReadCollectionApp(address crypto.Hash) (*CollectionApp, error)
	ListCollectionApps(collection crypto.Hash) ([]*CollectionApp, error)

	CreateNft(n *Nft, deposit *Transfer) error
	UpdateNft(n *Nft) error
	ReadNft(address crypto.Hash) (*Nft, error)
	ListCollectionNfts(collection crypto.Hash, limit int) ([]*Nft, error)
	ListOwnerNfts(owner crypto.Hash, limit int) ([]*Nft, error)

	RentNft(n *Nft, payment *Transfer) error

	Transfer(t *Transfer) error
	Deposit(address crypto.Hash, amount decimal.Decimal) error
	ReadBalance(address crypto.Hash) (decimal.Decimal, error)
}

// Clock is the read-only time oracle, queried once per state transition.
type Clock interface {
	Now() time.Time
}

// TokenVerifier is the extension point for checking that an owner actually
// holds the underlying token before its rental record is created. The
// marketplace runs without one unless configured and trusts the
// caller-asserted owner.
type TokenVerifier interface {
	VerifyOwnership(ctx context.Context, mint, owner crypto.Hash) error
}
