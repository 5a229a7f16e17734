package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"expensed/internal/core"
	applog "expensed/internal/log"
	"expensed/internal/store"
)

// Response and request shapes for the JSON API.

type expenseResponse struct {
	ID          int64      `json:"id"`
	ExpenseDate string     `json:"expense_date"`
	Category    string     `json:"category"`
	Notes       string     `json:"notes"`
	Amount      core.Money `json:"amount"`
}

// entryRequest models one submitted expense. Notes is a pointer so a
// missing field can be told apart from an intentionally empty note.
type entryRequest struct {
	Category string     `json:"category"`
	Notes    *string    `json:"notes"`
	Amount   core.Money `json:"amount"`
}

type createResponse struct {
	Message       string            `json:"message"`
	InsertedCount int               `json:"inserted_count"`
	InsertedIDs   []int64           `json:"inserted_ids"`
	Expenses      []expenseResponse `json:"expenses"`
}

type deleteResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deleted_count"`
}

type summaryItem struct {
	Category    string     `json:"category"`
	TotalAmount core.Money `json:"total_amount"`
}

type reportCategory struct {
	Category     string      `json:"category"`
	TotalAmount  core.Money  `json:"total_amount"`
	SharePercent json.Number `json:"share_percent"`
}

type reportResponse struct {
	StartDate    string           `json:"start_date"`
	EndDate      string           `json:"end_date"`
	NoData       bool             `json:"no_data,omitempty"`
	TotalSpent   *core.Money      `json:"total_spent,omitempty"`
	TopCategory  string           `json:"top_category,omitempty"`
	DailyAverage json.Number      `json:"daily_average,omitempty"`
	Categories   []reportCategory `json:"categories,omitempty"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// decodeEntries reads the POST body as a JSON array of entries. Body
// size is capped so a runaway client cannot exhaust memory.
func decodeEntries(r *http.Request) ([]entryRequest, error) {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	var reqs []entryRequest
	if err := dec.Decode(&reqs); err != nil {
		if errors.Is(err, core.ErrInvalidAmount) {
			return nil, errors.New("invalid amount: must be a positive decimal number")
		}
		return nil, errors.New("invalid request body: expected a JSON list of expenses")
	}
	return reqs, nil
}

func toExpenseResponse(rec core.Expense) expenseResponse {
	return expenseResponse{
		ID:          rec.ID,
		ExpenseDate: rec.Date.String(),
		Category:    rec.Category,
		Notes:       rec.Notes,
		Amount:      rec.Amount,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", applog.FieldError, err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// writeDomainError maps the error taxonomy onto status codes: invalid
// range to 400, validation failures to 422, store unavailability to
// 503, everything else to 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidRange):
		writeError(w, http.StatusBadRequest, "The start_date cannot be after the end_date.")
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyCategory),
		errors.Is(err, core.ErrUnknownCategory),
		errors.Is(err, core.ErrInvalidDate):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, store.ErrUnavailable):
		slog.ErrorContext(r.Context(), "Expense store unavailable", applog.FieldError, err, applog.FieldPath, r.URL.Path)
		writeError(w, http.StatusServiceUnavailable, "The expense store is not available. Please try again later.")
	default:
		slog.ErrorContext(r.Context(), "Internal error", applog.FieldError, err, applog.FieldPath, r.URL.Path)
		writeError(w, http.StatusInternalServerError, "An internal server error occurred.")
	}
}
