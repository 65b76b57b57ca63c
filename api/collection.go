package api

import (
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/rentable/rental/market"
)

type CollectionHandler struct {
	mkt *market.Marketplace
}

type collectionRequest struct {
	Signer           string `json:"signer"`
	Symbol           string `json:"symbol"`
	Name             string `json:"name"`
	ImageURL         string `json:"image_url"`
	WebsiteURL       string `json:"website_url"`
	RoyaltiesPercent uint8  `json:"royalties_percent"`
}

func (h *CollectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req collectionRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	authority, err := parseHash(req.Signer)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c, err := h.mkt.CreateCollection(r.Context(), authority, req.Symbol, req.Name, req.ImageURL, req.WebsiteURL, req.RoyaltiesPercent)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CollectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req collectionRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	authority, err := parseHash(req.Signer)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c, err := h.mkt.UpdateCollection(r.Context(), authority, r.PathValue("symbol"), req.Name, req.ImageURL, req.WebsiteURL, req.RoyaltiesPercent)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CollectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	authority, err := parseHash(r.URL.Query().Get("authority"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c, err := h.mkt.GetCollection(r.Context(), authority, r.PathValue("symbol"))
	if err != nil {
		writeError(w, err)
		return
	}
	if c == nil {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type collectionAppRequest struct {
	Signer   string `json:"signer"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	AppURL   string `json:"app_url"`
}

func (h *CollectionHandler) CreateApp(w http.ResponseWriter, r *http.Request) {
	var req collectionAppRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	authority, err := parseHash(req.Signer)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	app, err := h.mkt.CreateCollectionApp(r.Context(), authority, r.PathValue("symbol"), req.Name, req.ImageURL, req.AppURL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

func (h *CollectionHandler) ListApps(w http.ResponseWriter, r *http.Request) {
	authority, err := parseHash(r.URL.Query().Get("authority"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c, err := h.mkt.GetCollection(r.Context(), authority, r.PathValue("symbol"))
	if err != nil {
		writeError(w, err)
		return
	}
	if c == nil {
		http.NotFound(w, r)
		return
	}
	apps, err := h.mkt.ListCollectionApps(r.Context(), c.Address)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": apps})
}

func (h *CollectionHandler) UpdateApp(w http.ResponseWriter, r *http.Request) {
	var req collectionAppRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	authority, err := parseHash(req.Signer)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id, err := uuid.FromString(r.PathValue("id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	app, err := h.mkt.UpdateCollectionApp(r.Context(), authority, r.PathValue("symbol"), id, req.Name, req.ImageURL, req.AppURL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (h *CollectionHandler) RemoveApp(w http.ResponseWriter, r *http.Request) {
	authority, err := parseHash(r.URL.Query().Get("signer"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id, err := uuid.FromString(r.PathValue("id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	err = h.mkt.RemoveCollectionApp(r.Context(), authority, r.PathValue("symbol"), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}
