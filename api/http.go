package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MixinNetwork/mixin/crypto"
	"github.com/rentable/rental/market"
	"github.com/rentable/rental/metadata"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusForError(err), map[string]string{"error": err.Error()})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, market.ErrNotFound), errors.Is(err, metadata.ErrUnknownMint):
		return http.StatusNotFound
	case errors.Is(err, market.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, market.ErrNftRented), errors.Is(err, market.ErrNftNotListed):
		return http.StatusConflict
	case errors.Is(err, market.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, market.ErrInvalidOwner), errors.Is(err, market.ErrMissingSignature),
		errors.Is(err, metadata.ErrNotOwner), errors.Is(err, metadata.ErrForeignCreator):
		return http.StatusForbidden
	case errors.Is(err, market.ErrStringTooLong), errors.Is(err, market.ErrInvalidRoyalty),
		errors.Is(err, market.ErrInvalidMint), errors.Is(err, market.ErrInvalidCollection),
		errors.Is(err, market.ErrInvalidRentalDuration), errors.Is(err, market.ErrPriceOverflow):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func parseHash(s string) (crypto.Hash, error) {
	return crypto.HashFromString(s)
}

func decodeBody(r *http.Request, body interface{}) error {
	return json.NewDecoder(r.Body).Decode(body)
}
