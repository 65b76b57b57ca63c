package api

import (
	"net/http"

	"github.com/rentable/rental/market"
)

// NewRouter maps every marketplace operation to one HTTP route. Caller
// identity arrives as a signer field, signature verification itself belongs
// to the hosting environment and is out of scope here.
func NewRouter(mkt *market.Marketplace) http.Handler {
	ch := &CollectionHandler{mkt: mkt}
	nh := &NftHandler{mkt: mkt}
	lh := &LedgerHandler{mkt: mkt}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})

	mux.HandleFunc("POST /collections", ch.Create)
	mux.HandleFunc("PUT /collections/{symbol}", ch.Update)
	mux.HandleFunc("GET /collections/{symbol}", ch.Get)
	mux.HandleFunc("POST /collections/{symbol}/apps", ch.CreateApp)
	mux.HandleFunc("GET /collections/{symbol}/apps", ch.ListApps)
	mux.HandleFunc("PUT /collections/{symbol}/apps/{id}", ch.UpdateApp)
	mux.HandleFunc("DELETE /collections/{symbol}/apps/{id}", ch.RemoveApp)

	mux.HandleFunc("POST /nfts", nh.Create)
	mux.HandleFunc("GET /nfts", nh.List)
	mux.HandleFunc("PUT /nfts/{mint}", nh.Update)
	mux.HandleFunc("GET /nfts/{mint}", nh.Get)
	mux.HandleFunc("POST /nfts/{mint}/rent", nh.Rent)
	mux.HandleFunc("POST /mint", nh.Mint)
	mux.HandleFunc("GET /verify/{mint}", nh.Verify)

	mux.HandleFunc("GET /balances/{address}", lh.Balance)
	mux.HandleFunc("POST /faucet", lh.Faucet)

	return mux
}
