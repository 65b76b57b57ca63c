package api

import (
	"net/http"
	"strconv"

	"github.com/rentable/rental/market"
)

type NftHandler struct {
	mkt *market.Marketplace
}

// Rental prices are carried as decimal strings, the native unit amounts
// exceed what JSON numbers can hold exactly.
type nftRequest struct {
	Signer        string `json:"signer"`
	Mint          string `json:"mint"`
	Collection    string `json:"collection"`
	RentalMaxDays uint32 `json:"rental_max_days"`
	RentalPrice   string `json:"rental_price"`
	RentalEnabled bool   `json:"rental_enabled"`
}

func (h *NftHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req nftRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	owner, err := parseHash(req.Signer)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	mint, err := parseHash(req.Mint)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	collection, err := parseHash(req.Collection)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	price, err := strconv.ParseUint(req.RentalPrice, 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	n, err := h.mkt.CreateNft(r.Context(), owner, mint, collection, req.RentalMaxDays, price, req.RentalEnabled)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func (h *NftHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req nftRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	owner, err := parseHash(req.Signer)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	mint, err := parseHash(r.PathValue("mint"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	price, err := strconv.ParseUint(req.RentalPrice, 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	n, err := h.mkt.UpdateNft(r.Context(), owner, mint, req.RentalMaxDays, price, req.RentalEnabled)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *NftHandler) Get(w http.ResponseWriter, r *http.Request) {
	mint, err := parseHash(r.PathValue("mint"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	n, err := h.mkt.GetNft(r.Context(), mint)
	if err != nil {
		writeError(w, err)
		return
	}
	if n == nil {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *NftHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 100
	}

	var nfts []*market.Nft
	if c := r.URL.Query().Get("collection"); c != "" {
		collection, err := parseHash(c)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		nfts, err = h.mkt.ListCollectionNfts(r.Context(), collection, limit)
		if err != nil {
			writeError(w, err)
			return
		}
	} else if o := r.URL.Query().Get("owner"); o != "" {
		owner, err := parseHash(o)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		nfts, err = h.mkt.ListOwnerNfts(r.Context(), owner, limit)
		if err != nil {
			writeError(w, err)
			return
		}
	} else {
		http.Error(w, "collection or owner required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": nfts})
}

type rentRequest struct {
	Signer     string `json:"signer"`
	Collection string `json:"collection"`
	Owner      string `json:"owner"`
	Symbol     string `json:"symbol"`
	Authority  string `json:"authority"`
	Days       uint32 `json:"days"`
}

func (h *NftHandler) Rent(w http.ResponseWriter, r *http.Request) {
	var req rentRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	renter, err := parseHash(req.Signer)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	mint, err := parseHash(r.PathValue("mint"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	collection, err := parseHash(req.Collection)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	owner, err := parseHash(req.Owner)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	authority, err := parseHash(req.Authority)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	n, err := h.mkt.RentNft(r.Context(), renter, mint, collection, owner, req.Symbol, authority, req.Days)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

type mintRequest struct {
	Signer string `json:"signer"`
	URI    string `json:"uri"`
	Title  string `json:"title"`
	Symbol string `json:"symbol"`
}

func (h *NftHandler) Mint(w http.ResponseWriter, r *http.Request) {
	var req mintRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	creator, err := parseHash(req.Signer)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	t, err := h.mkt.MintNft(r.Context(), creator, req.URI, req.Title, req.Symbol)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *NftHandler) Verify(w http.ResponseWriter, r *http.Request) {
	mint, err := parseHash(r.PathValue("mint"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	v, err := h.mkt.VerifyNft(r.Context(), mint)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
