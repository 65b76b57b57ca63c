package metadata

import (
	"context"
	"fmt"
	"time"

	"github.com/MixinNetwork/mixin/crypto"
	"github.com/gofrs/uuid"
)

// Registrar is a local metadata program. A production deployment would
// point Service at the external metadata capability instead, everything the
// marketplace needs fits behind the same two calls.
type Registrar struct {
	store Store
}

func NewRegistrar(store Store) *Registrar {
	return &Registrar{store: store}
}

func (r *Registrar) Mint(ctx context.Context, creator crypto.Hash, uri, title, symbol string) (*Token, error) {
	if !creator.HasValue() {
		return nil, fmt.Errorf("invalid creator %s", creator)
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	t := &Token{
		Mint:      crypto.NewHash(append([]byte("mint"), id.Bytes()...)),
		Creator:   creator,
		Symbol:    symbol,
		Title:     title,
		URI:       uri,
		CreatedAt: time.Now(),
	}
	// the store assigns the edition from the group circulation
	err = r.store.WriteMintToken(t)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *Registrar) Verify(ctx context.Context, mint crypto.Hash) (*Verification, error) {
	t, err := r.store.ReadMintToken(mint)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrUnknownMint
	}
	g, err := r.store.ReadMintGroup(t.Symbol)
	if err != nil {
		return nil, err
	}
	return &Verification{
		Mint:            t.Mint,
		Owner:           t.Creator,
		CreatorVerified: g != nil && g.Creator == t.Creator,
	}, nil
}

// VerifyOwnership backs the marketplace ownership extension point with the
// registrar's own ledger of minted tokens.
func (r *Registrar) VerifyOwnership(ctx context.Context, mint, owner crypto.Hash) error {
	t, err := r.store.ReadMintToken(mint)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrUnknownMint
	}
	if t.Creator != owner {
		return ErrNotOwner
	}
	return nil
}
