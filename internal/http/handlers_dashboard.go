package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}
	account, ok := s.requireAccount(w, r)
	if !ok {
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", applog.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	data := struct {
		Name  string
		Email string
		Today string
	}{
		Name:  account.Name,
		Email: account.Email,
		Today: core.DateOf(time.Now()).String(),
	}

	if err := s.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Dashboard template execution failed", "error", err, "template", "dashboard.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

type overviewRow struct {
	ID          string
	Date        string
	Description string
	Category    string
	Amount      string
	Expense     bool
}

// handleOverview renders the totals and recent transactions partial. The
// ledger is re-read on every request so changes made elsewhere show up on
// the next refresh.
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	account, ok := s.requireAccount(w, r)
	if !ok {
		return
	}

	txs, err := s.ledgerSvc.List(r.Context(), account.Email)
	if err != nil {
		slog.ErrorContext(r.Context(), "Ledger list error", "error", err, applog.FieldEmail, account.Email)
		_, _ = w.Write([]byte(`<section id="overview" class="overview"><div class="placeholder">Could not load your transactions.</div></section>`))
		return
	}

	m := core.ComputeMetrics(txs, time.Now())

	data := struct {
		TotalBalance string
		MonthIncome  string
		MonthExpense string
		Count        int
		Truncated    bool
		Rows         []overviewRow
	}{
		TotalBalance: formatMoney(m.TotalBalance),
		MonthIncome:  formatMoney(m.MonthIncome),
		MonthExpense: formatMoney(m.MonthExpense),
		Count:        len(txs),
		Truncated:    len(txs) > core.DisplayLimit,
	}
	for _, tx := range core.SortForDisplay(txs) {
		data.Rows = append(data.Rows, overviewRow{
			ID:          tx.ID,
			Date:        tx.Date.String(),
			Description: tx.Description,
			Category:    tx.Category,
			Amount:      formatSigned(tx),
			Expense:     tx.Type == core.Expense,
		})
	}

	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="overview" class="overview"><div class="placeholder">Balance: ` + data.TotalBalance + `</div></section>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "overview.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "overview.html")
		_, _ = w.Write([]byte(`<section id="overview" class="overview"><div class="placeholder">Could not render the overview.</div></section>`))
	}
}

type chartSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type metricsPayload struct {
	Categories chartSeries `json:"categories"`
	Running    chartSeries `json:"running"`
}

// handleMetricsJSON serves the chart data for the dashboard.
func (s *Server) handleMetricsJSON(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}
	account, ok := s.requireAccount(w, r)
	if !ok {
		return
	}

	txs, err := s.ledgerSvc.List(r.Context(), account.Email)
	if err != nil {
		slog.ErrorContext(r.Context(), "Ledger list error", "error", err, applog.FieldEmail, account.Email)
		http.Error(w, "could not load metrics", http.StatusInternalServerError)
		return
	}

	m := core.ComputeMetrics(txs, time.Now())

	payload := metricsPayload{
		Categories: chartSeries{Labels: []string{}, Values: []float64{}},
		Running:    chartSeries{Labels: []string{}, Values: []float64{}},
	}
	for _, ct := range m.CategoryTotals {
		payload.Categories.Labels = append(payload.Categories.Labels, ct.Category)
		payload.Categories.Values = append(payload.Categories.Values, ct.Net)
	}
	for _, p := range m.RunningBalance {
		payload.Running.Labels = append(payload.Running.Labels, p.Label)
		payload.Running.Values = append(payload.Running.Values, p.Balance)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.ErrorContext(r.Context(), "Metrics encode error", "error", err)
	}
}
