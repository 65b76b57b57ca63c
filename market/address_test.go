package market_test

import (
	"testing"

	"github.com/gofrs/uuid"
	"github.com/rentable/rental/market"
	"github.com/stretchr/testify/require"
)

func TestDeriveDeterminism(t *testing.T) {
	require := require.New(t)

	authority := testHash("authority")
	a1, s1 := market.DeriveCollection("Symb", authority)
	a2, s2 := market.DeriveCollection("Symb", authority)
	require.Equal(a1, a2)
	require.Equal(s1, s2)

	b, _ := market.DeriveCollection("Symb2", authority)
	require.NotEqual(a1, b)
	c, _ := market.DeriveCollection("Symb", testHash("other"))
	require.NotEqual(a1, c)
}

func TestDeriveNamespaceSeparation(t *testing.T) {
	require := require.New(t)

	field := testHash("field")
	a, _ := market.Derive(market.NamespaceCollection, field[:])
	b, _ := market.Derive(market.NamespaceNft, field[:])
	require.NotEqual(a, b)

	mint := testHash("mint")
	n1, _ := market.DeriveNft(mint)
	n2, _ := market.Derive(market.NamespaceNft, mint[:])
	require.Equal(n1, n2)
}

func TestDeriveCollectionApp(t *testing.T) {
	require := require.New(t)

	collection, _ := market.DeriveCollection("Symb", testHash("authority"))
	id := uuid.Must(uuid.NewV4())
	a1, _ := market.DeriveCollectionApp(collection, id)
	a2, _ := market.DeriveCollectionApp(collection, id)
	require.Equal(a1, a2)

	other := uuid.Must(uuid.NewV4())
	a3, _ := market.DeriveCollectionApp(collection, other)
	require.NotEqual(a1, a3)
}
