package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quicksplit/quicksplit/internal/middleware"
	"github.com/quicksplit/quicksplit/internal/models"
)

type saveBillRequest struct {
	Name   string            `json:"name"`
	Items  []models.BillItem `json:"items"`
	People []models.Person   `json:"people"`
	Total  float64           `json:"billTotal"`
}

func (h *Handler) handleSaveBill(w http.ResponseWriter, r *http.Request) {
	var req saveBillRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "bill name required")
		return
	}

	userID := middleware.GetUserID(r.Context())
	saved, err := h.split.SaveBill(r.Context(), userID, req.Name, &models.Bill{
		Items:  req.Items,
		People: req.People,
		Total:  req.Total,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (h *Handler) handleListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := h.split.ListBills(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bills)
}

func (h *Handler) handleGetBill(w http.ResponseWriter, r *http.Request) {
	billID := chi.URLParam(r, "billID")
	bill, err := h.split.GetBill(r.Context(), middleware.GetUserID(r.Context()), billID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bill)
}

func (h *Handler) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	billID := chi.URLParam(r, "billID")
	if err := h.split.DeleteBill(r.Context(), middleware.GetUserID(r.Context()), billID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
