package market

import (
	"github.com/MixinNetwork/mixin/crypto"
	"github.com/gofrs/uuid"
)

const (
	NamespaceCollection    = "collection"
	NamespaceCollectionApp = "collection_app"
	NamespaceNft           = "nft"
)

// Derive maps a namespace tag and its discriminating fields to a record
// address and the salt folded into the final candidate. The same inputs
// always produce the same pair, so any caller re-derives an address and
// compares it against a supplied one instead of trusting it. Distinct
// namespaces never collide because the tag prefixes the seed.
func Derive(namespace string, fields ...[]byte) (crypto.Hash, uint8) {
	seed := []byte(namespace)
	for _, f := range fields {
		seed = append(seed, 0)
		seed = append(seed, f...)
	}
	for salt := 255; salt >= 0; salt-- {
		candidate := crypto.NewHash(append(seed, byte(salt)))
		if candidate[0] != 0 {
			return candidate, uint8(salt)
		}
	}
	panic(namespace)
}

func DeriveCollection(symbol string, authority crypto.Hash) (crypto.Hash, uint8) {
	return Derive(NamespaceCollection, []byte(symbol), authority[:])
}

func DeriveCollectionApp(collection crypto.Hash, id uuid.UUID) (crypto.Hash, uint8) {
	return Derive(NamespaceCollectionApp, collection[:], id.Bytes())
}

func DeriveNft(mint crypto.Hash) (crypto.Hash, uint8) {
	return Derive(NamespaceNft, mint[:])
}
