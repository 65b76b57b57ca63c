package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MixinNetwork/mixin/crypto"
	"github.com/rentable/rental/api"
	"github.com/rentable/rental/market"
	"github.com/rentable/rental/metadata"
	"github.com/rentable/rental/store"
	"github.com/stretchr/testify/require"
)

func buildTestRouter(t *testing.T) http.Handler {
	ctx := context.Background()
	bs, err := store.OpenBadger(ctx, t.TempDir())
	require.Nil(t, err)
	t.Cleanup(func() { bs.Close() })

	mkt, err := market.BuildMarketplace(ctx, bs, nil)
	require.Nil(t, err)
	mkt.SetMetadataService(metadata.NewRegistrar(bs))
	return api.NewRouter(mkt)
}

func request(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		err := json.NewEncoder(&buf).Encode(body)
		require.Nil(t, err)
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	require.Nil(t, json.NewDecoder(rec.Body).Decode(out))
}

func TestRouterHealthz(t *testing.T) {
	router := buildTestRouter(t)
	rec := request(t, router, "GET", "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterCollections(t *testing.T) {
	require := require.New(t)
	router := buildTestRouter(t)

	authority := crypto.NewHash([]byte("authority"))
	rec := request(t, router, "POST", "/faucet", map[string]string{
		"address": authority.String(),
		"amount":  "100000000",
	})
	require.Equal(http.StatusOK, rec.Code)

	rec = request(t, router, "GET", "/balances/"+authority.String(), nil)
	require.Equal(http.StatusOK, rec.Code)
	var balance map[string]string
	decodeResponse(t, rec, &balance)
	require.Equal("100000000", balance["balance"])

	body := map[string]interface{}{
		"signer":            authority.String(),
		"symbol":            "PUNK",
		"name":              "Punks",
		"image_url":         "https://img.example/punks.png",
		"website_url":       "https://punks.example",
		"royalties_percent": 5,
	}
	rec = request(t, router, "POST", "/collections", body)
	require.Equal(http.StatusCreated, rec.Code)
	var c market.Collection
	decodeResponse(t, rec, &c)
	require.Equal("PUNK", c.Symbol)
	require.Equal(authority, c.Authority)

	rec = request(t, router, "POST", "/collections", body)
	require.Equal(http.StatusConflict, rec.Code)

	rec = request(t, router, "GET", "/collections/PUNK?authority="+authority.String(), nil)
	require.Equal(http.StatusOK, rec.Code)
	rec = request(t, router, "GET", "/collections/NONE?authority="+authority.String(), nil)
	require.Equal(http.StatusNotFound, rec.Code)

	// a broke authority cannot reserve record storage
	broke := crypto.NewHash([]byte("broke"))
	body["signer"] = broke.String()
	body["symbol"] = "POOR"
	rec = request(t, router, "POST", "/collections", body)
	require.Equal(http.StatusPaymentRequired, rec.Code)
}

func TestRouterMintAndRent(t *testing.T) {
	require := require.New(t)
	router := buildTestRouter(t)

	creator := crypto.NewHash([]byte("creator"))
	rec := request(t, router, "POST", "/mint", map[string]string{
		"signer": creator.String(),
		"uri":    "https://img.example/1.png",
		"title":  "Punk #1",
		"symbol": "PUNK",
	})
	require.Equal(http.StatusCreated, rec.Code)
	var tok metadata.Token
	decodeResponse(t, rec, &tok)
	require.Equal(creator, tok.Creator)

	rec = request(t, router, "GET", "/verify/"+tok.Mint.String(), nil)
	require.Equal(http.StatusOK, rec.Code)
	var v metadata.Verification
	decodeResponse(t, rec, &v)
	require.True(v.CreatorVerified)

	unknown := crypto.NewHash([]byte("unknown"))
	rec = request(t, router, "GET", "/verify/"+unknown.String(), nil)
	require.Equal(http.StatusNotFound, rec.Code)

	rec = request(t, router, "POST", fmt.Sprintf("/nfts/%s/rent", unknown), map[string]interface{}{
		"signer":     creator.String(),
		"collection": unknown.String(),
		"owner":      creator.String(),
		"symbol":     "PUNK",
		"authority":  creator.String(),
		"days":       3,
	})
	require.Equal(http.StatusBadRequest, rec.Code)
}
