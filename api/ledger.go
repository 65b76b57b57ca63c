package api

import (
	"net/http"

	"github.com/rentable/rental/market"
	"github.com/shopspring/decimal"
)

type LedgerHandler struct {
	mkt *market.Marketplace
}

func (h *LedgerHandler) Balance(w http.ResponseWriter, r *http.Request) {
	address, err := parseHash(r.PathValue("address"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	balance, err := h.mkt.Balance(r.Context(), address)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"address": address.String(),
		"balance": balance.String(),
	})
}

type faucetRequest struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

func (h *LedgerHandler) Faucet(w http.ResponseWriter, r *http.Request) {
	var req faucetRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	address, err := parseHash(req.Address)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	err = h.mkt.Airdrop(r.Context(), address, amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}
