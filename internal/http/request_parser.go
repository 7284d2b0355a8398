// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request data.
// It reduces code duplication by providing reusable functions for common
// form parsing and input sanitization patterns.

package http

import (
	"net/http"
	"strings"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// Credentials holds the sign-in fields parsed from a form.
type Credentials struct {
	Email    string
	Password string
}

// Registration holds the sign-up fields parsed from a form.
type Registration struct {
	Name     string
	Email    string
	Password string
}

// ParseCredentials extracts email and password from form values.
func ParseCredentials(r *http.Request) Credentials {
	return Credentials{
		Email:    sanitizeInput(r.Form.Get("email")),
		Password: r.Form.Get("password"),
	}
}

// ParseRegistration extracts the sign-up fields from form values.
func ParseRegistration(r *http.Request) Registration {
	return Registration{
		Name:     sanitizeInput(r.Form.Get("name")),
		Email:    sanitizeInput(r.Form.Get("email")),
		Password: r.Form.Get("password"),
	}
}

// ParseTransactionInput extracts a ledger draft from form values.
// The date falls back to today when the field is blank; an unparsable
// amount or date yields a 422 error response builder.
func ParseTransactionInput(r *http.Request, now time.Time) (ledger.Draft, *HTMXResponseBuilder) {
	txType := core.TransactionType(sanitizeInput(r.Form.Get("type")))
	if txType != core.Income && txType != core.Expense {
		return ledger.Draft{}, UnprocessableEntityError("Please choose income or expense.")
	}

	amount, err := core.ParseAmount(r.Form.Get("amount"))
	if err != nil {
		return ledger.Draft{}, UnprocessableEntityError("Please enter a valid amount.")
	}

	dateStr := strings.TrimSpace(r.Form.Get("date"))
	var date core.Date
	if dateStr == "" {
		date = core.DateOf(now)
	} else {
		date, err = core.ParseDate(dateStr)
		if err != nil {
			return ledger.Draft{}, UnprocessableEntityError("Please enter a valid date.")
		}
	}

	return ledger.Draft{
		Type:        txType,
		Amount:      amount,
		Category:    sanitizeInput(r.Form.Get("category")),
		Date:        date,
		Description: sanitizeInput(r.Form.Get("description")),
	}, nil
}

// sanitizeInput removes potentially dangerous characters and trims whitespace
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	// Remove control characters except tab, newline, carriage return
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1 // remove character
		}
		return r
	}, s)
	return result
}

// RequireMethod checks if the request method matches the expected method(s).
// Returns an error response builder if the method doesn't match.
func RequireMethod(r *http.Request, methods ...string) *HTMXResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

// RequirePOST is a convenience function for POST-only handlers.
func RequirePOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

// RequireDeleteOrPOST is a convenience function for DELETE/POST handlers.
func RequireDeleteOrPOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodDelete, http.MethodPost)
}

// ParseFormOrFail parses the request form and returns an error response on failure.
// Returns nil on success.
func ParseFormOrFail(r *http.Request) *HTMXResponseBuilder {
	if err := r.ParseForm(); err != nil {
		return BadRequestError("Invalid request format.")
	}
	return nil
}
