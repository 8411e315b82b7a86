package api

import (
	"net/http"

	"github.com/quicksplit/quicksplit/internal/models"
)

type processReceiptRequest struct {
	ImageBase64 string `json:"imageBase64"`
}

type processReceiptResponse struct {
	Success bool              `json:"success"`
	Items   []models.BillItem `json:"items"`
	Total   float64           `json:"total"`
	Dropped int               `json:"dropped,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// handleProcessReceipt runs OCR and normalization on an uploaded receipt
// image. Extraction failures come back as success=false with a reason rather
// than a bare 5xx, so clients can show the message and offer manual entry.
func (h *Handler) handleProcessReceipt(w http.ResponseWriter, r *http.Request) {
	var req processReceiptRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ImageBase64 == "" {
		writeError(w, http.StatusBadRequest, "no image data provided")
		return
	}

	result, err := h.split.ProcessReceipt(r.Context(), req.ImageBase64)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, processReceiptResponse{
			Success: false,
			Items:   []models.BillItem{},
			Error:   err.Error(),
		})
		return
	}

	if result.Empty() {
		writeJSON(w, http.StatusOK, processReceiptResponse{
			Success: false,
			Items:   []models.BillItem{},
			Error:   "no items detected",
		})
		return
	}

	writeJSON(w, http.StatusOK, processReceiptResponse{
		Success: true,
		Items:   result.Items,
		Total:   result.Total,
		Dropped: result.Dropped,
	})
}

type splitRequest struct {
	Items  []models.BillItem `json:"items"`
	People []models.Person   `json:"people"`
	Total  float64           `json:"billTotal"`
}

func (r splitRequest) bill() *models.Bill {
	return &models.Bill{Items: r.Items, People: r.People, Total: r.Total}
}

type splitResponse struct {
	PersonTotals map[string]float64      `json:"personTotals"`
	Payments     []models.PaymentSummary `json:"payments"`
	Text         string                  `json:"text"`
	HTML         string                  `json:"html"`
}

func (h *Handler) handleSplit(w http.ResponseWriter, r *http.Request) {
	var req splitRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.People) == 0 {
		writeError(w, http.StatusBadRequest, "at least one person required")
		return
	}

	result, err := h.split.Summarize(req.bill())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	payments := result.Payments
	if payments == nil {
		payments = []models.PaymentSummary{}
	}
	writeJSON(w, http.StatusOK, splitResponse{
		PersonTotals: result.PersonTotals,
		Payments:     payments,
		Text:         result.Text,
		HTML:         result.HTML,
	})
}

type shareResponse struct {
	Outcome string `json:"outcome"`
	Text    string `json:"text"`
	Error   string `json:"error,omitempty"`
}

func (h *Handler) handleShare(w http.ResponseWriter, r *http.Request) {
	var req splitRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.People) == 0 {
		writeError(w, http.StatusBadRequest, "at least one person required")
		return
	}

	outcome, text, err := h.split.ShareSummary(r.Context(), req.bill())
	resp := shareResponse{Outcome: outcome.String(), Text: text}
	if err != nil {
		resp.Error = err.Error()
		writeJSON(w, http.StatusBadGateway, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
