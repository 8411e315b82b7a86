// Package api exposes the QuickSplit HTTP JSON API.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quicksplit/quicksplit/internal/auth"
	"github.com/quicksplit/quicksplit/internal/middleware"
	"github.com/quicksplit/quicksplit/internal/service"
	"github.com/quicksplit/quicksplit/internal/storage"
)

// Handler carries the services behind the HTTP endpoints.
type Handler struct {
	split *service.SplitService
	auth  *service.AuthService
}

// NewHandler creates the API handler.
func NewHandler(split *service.SplitService, authSvc *service.AuthService) *Handler {
	return &Handler{split: split, auth: authSvc}
}

// Register mounts all API routes on the router. Bill persistence requires a
// valid session token; extraction and split calculation do not, matching the
// app where splitting works without an account.
func (h *Handler) Register(r chi.Router, tokens *auth.JWTManager) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", h.handleRegister)
		r.Post("/auth/login", h.handleLogin)

		r.Post("/receipts/process", h.handleProcessReceipt)
		r.Post("/split", h.handleSplit)
		r.Post("/split/share", h.handleShare)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(tokens))
			r.Post("/bills", h.handleSaveBill)
			r.Get("/bills", h.handleListBills)
			r.Get("/bills/{billID}", h.handleGetBill)
			r.Delete("/bills/{billID}", h.handleDeleteBill)
		})
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps domain errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "bill not found")
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrEmailExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrEmptyEmail):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("Request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
