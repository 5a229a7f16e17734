package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"expensed/internal/core"
	applog "expensed/internal/log"
)

const apiVersion = "1.0.0"

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "expensed",
		"version": apiVersion,
		"status":  "operational",
		"endpoints": map[string]string{
			"GET /":                   "API information",
			"GET /health":             "Health check",
			"GET /expenses/{date}":    "Get expenses for a date",
			"POST /expenses/{date}":   "Add expenses for a date",
			"DELETE /expenses/{date}": "Delete expenses for a date",
			"GET /summary":            "Category totals for a date range",
			"GET /summary/report":     "Derived spending report for a date range",
		},
	})
}

// storePinger is implemented by ledgers that can probe their backing
// store directly.
type storePinger interface {
	Ping(ctx context.Context) error
}

// handleHealth probes the ledger so the response distinguishes a
// running process from a reachable store. Ledgers exposing Ping are
// probed through it; otherwise a cheap read stands in.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	database := "connected"

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var probeErr error
	if p, ok := s.ledger.(storePinger); ok {
		probeErr = p.Ping(ctx)
	} else {
		now := time.Now().UTC()
		today := core.NewDate(now.Year(), int(now.Month()), now.Day())
		_, probeErr = s.ledger.FetchByDate(ctx, today)
	}
	if probeErr != nil {
		slog.ErrorContext(r.Context(), "Health probe failed", applog.FieldError, probeErr)
		status = "degraded"
		database = "error"
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":   status,
		"database": database,
	})
}

func (s *Server) handleFetchExpenses(w http.ResponseWriter, r *http.Request) {
	date, err := core.ParseDate(r.PathValue("date"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid date: expected YYYY-MM-DD.")
		return
	}

	expenses, err := s.ledger.FetchByDate(r.Context(), date)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	out := make([]expenseResponse, 0, len(expenses))
	for _, rec := range expenses {
		out = append(out, toExpenseResponse(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateExpenses(w http.ResponseWriter, r *http.Request) {
	date, err := core.ParseDate(r.PathValue("date"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid date: expected YYYY-MM-DD.")
		return
	}

	reqs, err := decodeEntries(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	// Shape and category checks happen here, before any storage
	// access; the ledger service re-checks only the domain rules.
	entries := make([]core.Entry, 0, len(reqs))
	for i, req := range reqs {
		if req.Notes == nil {
			writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("Entry %d: missing notes field.", i))
			return
		}
		if req.Category == "" {
			writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("Entry %d: %v.", i, core.ErrEmptyCategory))
			return
		}
		if _, ok := s.allowed[req.Category]; !ok {
			writeError(w, http.StatusUnprocessableEntity,
				fmt.Sprintf("Entry %d: %v: %q is not an allowed category.", i, core.ErrUnknownCategory, req.Category))
			return
		}
		if err := req.Amount.Validate(); err != nil {
			writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("Entry %d: amount must be greater than 0.", i))
			return
		}
		entries = append(entries, core.Entry{
			Category: req.Category,
			Notes:    *req.Notes,
			Amount:   req.Amount,
		})
	}

	created, err := s.ledger.InsertForDate(r.Context(), date, entries)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	ids := make([]int64, 0, len(created))
	out := make([]expenseResponse, 0, len(created))
	for _, rec := range created {
		ids = append(ids, rec.ID)
		out = append(out, toExpenseResponse(rec))
	}

	writeJSON(w, http.StatusOK, createResponse{
		Message:       fmt.Sprintf("Successfully added %d expense(s) for %s.", len(created), date),
		InsertedCount: len(created),
		InsertedIDs:   ids,
		Expenses:      out,
	})
}

func (s *Server) handleDeleteExpenses(w http.ResponseWriter, r *http.Request) {
	date, err := core.ParseDate(r.PathValue("date"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid date: expected YYYY-MM-DD.")
		return
	}

	deleted, err := s.ledger.DeleteByDate(r.Context(), date)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{
		Message:      fmt.Sprintf("Successfully deleted %d expense(s) for %s.", deleted, date),
		DeletedCount: deleted,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		writeRangeError(w, err)
		return
	}

	totals, err := s.ledger.AggregateByCategory(r.Context(), start, end)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	out := make([]summaryItem, 0, len(totals))
	for _, t := range totals {
		out = append(out, summaryItem{Category: t.Category, TotalAmount: t.Total})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSummaryReport(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		writeRangeError(w, err)
		return
	}

	totals, err := s.ledger.AggregateByCategory(r.Context(), start, end)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	report := core.BuildReport(start, end, totals)
	resp := reportResponse{
		StartDate: start.String(),
		EndDate:   end.String(),
	}
	if report.NoData {
		resp.NoData = true
		writeJSON(w, http.StatusOK, resp)
		return
	}

	total := report.TotalSpent
	resp.TotalSpent = &total
	resp.TopCategory = report.TopCategory
	resp.DailyAverage = json.Number(report.DailyAverage.StringFixed(2))
	resp.Categories = make([]reportCategory, 0, len(report.Categories))
	for _, c := range report.Categories {
		resp.Categories = append(resp.Categories, reportCategory{
			Category:     c.Category,
			TotalAmount:  c.Total,
			SharePercent: json.Number(c.Share.StringFixed(2)),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// parseRange reads and validates start_date/end_date query parameters.
// Range ordering is checked here so an inverted range never reaches
// the store.
func parseRange(r *http.Request) (start, end core.Date, err error) {
	q := r.URL.Query()
	rawStart, rawEnd := q.Get("start_date"), q.Get("end_date")
	if rawStart == "" || rawEnd == "" {
		return start, end, errMissingRangeParam
	}
	start, err = core.ParseDate(rawStart)
	if err != nil {
		return start, end, core.ErrInvalidDate
	}
	end, err = core.ParseDate(rawEnd)
	if err != nil {
		return start, end, core.ErrInvalidDate
	}
	if end.Before(start) {
		return start, end, core.ErrInvalidRange
	}
	return start, end, nil
}

var errMissingRangeParam = errors.New("both start_date and end_date are required")

func writeRangeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidRange):
		writeError(w, http.StatusBadRequest, "The start_date cannot be after the end_date.")
	case errors.Is(err, errMissingRangeParam):
		writeError(w, http.StatusUnprocessableEntity, "Both start_date and end_date query parameters are required.")
	default:
		writeError(w, http.StatusUnprocessableEntity, "Invalid date: expected YYYY-MM-DD.")
	}
}
