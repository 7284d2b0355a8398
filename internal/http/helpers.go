package http

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"fintrack/internal/core"
)

type requestIDKey struct{}

// clientAddr extracts the client IP, considering proxies.
func clientAddr(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// generateRequestID creates a unique request ID for tracing
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp if random fails
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// requireAccount resolves the signed-in account or redirects to the sign-in
// page. HTMX requests get an HX-Redirect header, plain requests a 303.
func (s *Server) requireAccount(w http.ResponseWriter, r *http.Request) (core.Account, bool) {
	account, err := s.dir.CurrentAccount(r.Context())
	if err == nil {
		return account, true
	}
	if !errors.Is(err, core.ErrNoSession) {
		InternalServerError("Something went wrong. Please try again.").Write(w)
		return core.Account{}, false
	}
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusOK)
		return core.Account{}, false
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
	return core.Account{}, false
}

// formatMoney renders an amount for display, e.g. "1,234.50".
func formatMoney(v float64) string {
	return core.FormatAmount(v)
}

// formatSigned renders a transaction amount with its sign, e.g. "+500.00".
func formatSigned(tx core.Transaction) string {
	if tx.Type == core.Expense {
		return "-" + core.FormatAmount(tx.Amount)
	}
	return "+" + core.FormatAmount(tx.Amount)
}
