package metadata

import (
	"context"
	"errors"
	"time"

	"github.com/MixinNetwork/mixin/crypto"
)

var (
	ErrUnknownMint    = errors.New("unknown mint")
	ErrForeignCreator = errors.New("symbol owned by another creator")
	ErrNotOwner       = errors.New("token not held by owner")
)

// Service is the delegated metadata capability: minting new tokens and
// verifying what is known about an existing mint. The marketplace consumes
// only these two signatures, never the metadata format itself.
type Service interface {
	Mint(ctx context.Context, creator crypto.Hash, uri, title, symbol string) (*Token, error)
	Verify(ctx context.Context, mint crypto.Hash) (*Verification, error)
}

type Store interface {
	WriteMintToken(t *Token) error
	ReadMintToken(mint crypto.Hash) (*Token, error)
	ReadMintGroup(symbol string) (*Group, error)
}

// Group tracks every mint issued under one symbol, only the first creator
// of a symbol may keep minting into it.
type Group struct {
	Symbol      string
	Creator     crypto.Hash
	Circulation uint64
}

type Token struct {
	Mint      crypto.Hash
	Creator   crypto.Hash
	Symbol    string
	Title     string
	URI       string
	Edition   uint64
	CreatedAt time.Time
}

type Verification struct {
	Mint            crypto.Hash
	Owner           crypto.Hash
	CreatorVerified bool
}
