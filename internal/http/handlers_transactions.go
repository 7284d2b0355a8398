package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
	applog "fintrack/internal/log"
)

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	account, ok := s.requireAccount(w, r)
	if !ok {
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	draft, resp := ParseTransactionInput(r, time.Now())
	if resp != nil {
		resp.Write(w)
		return
	}

	tx, err := s.ledgerSvc.Append(r.Context(), account.Email, draft)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidAmount):
			UnprocessableEntityError("Please enter a valid amount.").Write(w)
		case errors.Is(err, core.ErrInvalidType):
			UnprocessableEntityError("Please choose income or expense.").Write(w)
		case errors.Is(err, core.ErrInvalidDate):
			UnprocessableEntityError("Please enter a valid date.").Write(w)
		default:
			slog.ErrorContext(r.Context(), "Transaction append error", "error", err,
				applog.FieldEmail, account.Email, applog.FieldOperation, applog.OpAppend)
			InternalServerError("Could not save the transaction. Please try again.").Write(w)
		}
		return
	}

	label := "Income"
	if tx.Type == core.Expense {
		label = "Expense"
	}
	SuccessMessage(label+" recorded: "+formatMoney(tx.Amount)+" ("+tx.Category+")").
		TriggerTransactionCreated(tx.ID).
		TriggerOverviewRefresh().
		TriggerFormReset().
		Write(w)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if resp := RequireDeleteOrPOST(r); resp != nil {
		resp.Write(w)
		return
	}
	account, ok := s.requireAccount(w, r)
	if !ok {
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	id := strings.TrimSpace(r.Form.Get("id"))
	if id == "" {
		id = strings.TrimSpace(r.URL.Query().Get("id"))
	}
	if id == "" {
		BadRequestError("Missing transaction id.").Write(w)
		return
	}

	removed, err := s.ledgerSvc.Delete(r.Context(), account.Email, id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction delete error", "error", err,
			applog.FieldEmail, account.Email, applog.FieldTransactionID, id)
		InternalServerError("Could not delete the transaction. Please try again.").Write(w)
		return
	}
	if !removed {
		// Already gone: treat as success so stale UI rows disappear cleanly.
		slog.InfoContext(r.Context(), "Transaction already absent",
			applog.FieldEmail, account.Email, applog.FieldTransactionID, id)
	}

	NewHTMXResponse().
		TriggerTransactionDeleted(id).
		TriggerOverviewRefresh().
		Write(w)
}

func (s *Server) handleEraseTransactions(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	account, ok := s.requireAccount(w, r)
	if !ok {
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	var confirm ledger.Confirmation
	if strings.TrimSpace(r.Form.Get("confirm")) == "yes" {
		confirm = ledger.Confirmed()
	}

	err := s.ledgerSvc.Erase(r.Context(), account.Email, confirm)
	if err != nil {
		if errors.Is(err, core.ErrNotConfirmed) {
			UnprocessableEntityError("Erase was not confirmed. No data was removed.").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Erase error", "error", err,
			applog.FieldEmail, account.Email, applog.FieldOperation, applog.OpErase)
		InternalServerError("Could not erase the ledger. Please try again.").Write(w)
		return
	}

	SuccessMessage("All transactions erased.").
		TriggerLedgerErased().
		TriggerOverviewRefresh().
		Write(w)
}
