package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/ansuz/internal/admin"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/store"
)

const maxBodyBytes = 1 << 20

// Handler holds API route handlers.
type Handler struct {
	svc *admin.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *admin.Service) *Handler {
	return &Handler{svc: svc}
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, errInvalidJSON
	}
	return body, nil
}

// List handles GET /api/{kind}.
//
//	@Summary		List a collection through its filter
//	@Tags			records
//	@Produce		json
//	@Param			search		query		string	false	"Case-insensitive substring"
//	@Param			category	query		string	false	"Category (products, blog)"
//	@Param			status		query		string	false	"Status (orders, notifications)"
//	@Param			role		query		string	false	"Role (users)"
//	@Success		200			{object}	ListResponse
//	@Security		BearerAuth
//	@Router			/{kind} [get]
func (h *Handler) List(kind models.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		overrides := make(map[string]string)
		for _, f := range store.FilterFields(kind) {
			if v := q.Get(f); v != "" {
				overrides[f] = v
			}
		}
		page, err := h.svc.List(r.Context(), kind, overrides)
		if err != nil {
			writeError(w, "list", err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

// Get handles GET /api/{kind}/{id}.
//
//	@Summary		Get a single record
//	@Tags			records
//	@Produce		json
//	@Param			id	path		string	true	"Record id"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/{kind}/{id} [get]
func (h *Handler) Get(kind models.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := h.svc.Get(r.Context(), kind, chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, "get", err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

// Create handles POST /api/{kind}.
//
//	@Summary		Create a record at the front of the collection
//	@Tags			records
//	@Accept			json
//	@Produce		json
//	@Failure		400	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/{kind} [post]
func (h *Handler) Create(kind models.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(w, r)
		if err != nil {
			writeError(w, "create", err)
			return
		}
		rec, err := decodeRecord(kind, body, "")
		if err != nil {
			writeError(w, "create", err)
			return
		}
		created, err := h.svc.Create(r.Context(), rec)
		if err != nil {
			writeError(w, "create", err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

// Update handles PUT /api/{kind}/{id}. The record is replaced wholesale; an
// unknown id is answered like a successful replace.
func (h *Handler) Update(kind models.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		body, err := readBody(w, r)
		if err != nil {
			writeError(w, "update", err)
			return
		}
		rec, err := decodeRecord(kind, body, id)
		if err != nil {
			writeError(w, "update", err)
			return
		}
		stored, applied, err := h.svc.Update(r.Context(), rec)
		if err != nil {
			writeError(w, "update", err)
			return
		}
		if !applied {
			slog.Debug("update of absent record ignored", slog.String("kind", string(kind)), slog.String("id", id))
		}
		writeJSON(w, http.StatusOK, stored)
	}
}

// Delete handles DELETE /api/{kind}/{id}. Deleting an absent id succeeds.
func (h *Handler) Delete(kind models.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.svc.Delete(r.Context(), kind, chi.URLParam(r, "id")); err != nil {
			writeError(w, "delete", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// SetFilter handles PUT /api/{kind}/filter.
//
//	@Summary		Set one filter field and return the new view
//	@Tags			records
//	@Accept			json
//	@Produce		json
//	@Param			body	body		FilterRequest	true	"Field and value"
//	@Success		200		{object}	ListResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/{kind}/filter [put]
func (h *Handler) SetFilter(kind models.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(w, r)
		if err != nil {
			writeError(w, "set filter", err)
			return
		}
		var req FilterRequest
		if err := unmarshal(body, &req); err != nil {
			writeError(w, "set filter", err)
			return
		}
		if err := req.Validate(kind); err != nil {
			writeError(w, "set filter", err)
			return
		}
		page, err := h.svc.SetFilter(r.Context(), kind, req.Field, req.Value)
		if err != nil {
			writeError(w, "set filter", err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

// Categories handles GET /api/products/categories and GET /api/blog/categories.
func (h *Handler) Categories(kind models.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats, err := h.svc.Categories(r.Context(), kind)
		if err != nil {
			writeError(w, "categories", err)
			return
		}
		writeJSON(w, http.StatusOK, CategoriesResponse{Categories: cats})
	}
}

// MarkAsRead handles POST /api/notifications/{id}/read.
//
//	@Summary		Mark one notification as read
//	@Tags			notifications
//	@Produce		json
//	@Param			id	path		string	true	"Notification id"
//	@Success		200	{object}	UnreadResponse
//	@Security		BearerAuth
//	@Router			/notifications/{id}/read [post]
func (h *Handler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	n := h.svc.MarkAsRead(r.Context(), chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, UnreadResponse{UnreadCount: n})
}

// MarkAllAsRead handles POST /api/notifications/read-all.
func (h *Handler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	n := h.svc.MarkAllAsRead(r.Context())
	writeJSON(w, http.StatusOK, UnreadResponse{UnreadCount: n})
}

// UnreadCount handles GET /api/notifications/unread-count.
func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, UnreadResponse{UnreadCount: h.svc.UnreadCount(r.Context())})
}

// Dashboard handles GET /api/metrics/dashboard.
//
//	@Summary		Dashboard aggregates
//	@Tags			metrics
//	@Produce		json
//	@Security		BearerAuth
//	@Router			/metrics/dashboard [get]
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Dashboard(r.Context()))
}

// Analytics handles GET /api/metrics/analytics.
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Analytics(r.Context()))
}
