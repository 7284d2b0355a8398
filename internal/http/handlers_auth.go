package http

import (
	"errors"
	"log/slog"
	"net/http"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", applog.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	// Already signed in: straight to the dashboard.
	if _, err := s.dir.CurrentAccount(r.Context()); err == nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", nil); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	reg := ParseRegistration(r)
	err := s.dir.Register(r.Context(), reg.Name, reg.Email, reg.Password)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrAccountExists):
			UnprocessableEntityError("An account with this email already exists.").Write(w)
		case errors.Is(err, core.ErrEmptyName):
			UnprocessableEntityError("Please enter your name.").Write(w)
		case errors.Is(err, core.ErrEmptyEmail):
			UnprocessableEntityError("Please enter your email.").Write(w)
		case errors.Is(err, core.ErrPasswordTooShort):
			UnprocessableEntityError("Password must be at least 6 characters.").Write(w)
		default:
			slog.ErrorContext(r.Context(), "Registration failed", "error", err, applog.FieldOperation, applog.OpRegister)
			InternalServerError("Could not create the account. Please try again.").Write(w)
		}
		return
	}

	slog.InfoContext(r.Context(), "Account registered", applog.FieldEmail, core.NormalizeEmail(reg.Email))
	SuccessMessage("Account created. You can sign in now.").
		TriggerFormReset().
		Write(w)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	creds := ParseCredentials(r)
	account, err := s.dir.Authenticate(r.Context(), creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, core.ErrInvalidCredentials) {
			UnprocessableEntityError("Invalid email or password.").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Authentication failed", "error", err, applog.FieldOperation, applog.OpAuthenticate)
		InternalServerError("Could not sign in. Please try again.").Write(w)
		return
	}

	if err := s.dir.SignIn(r.Context(), account.Email); err != nil {
		slog.ErrorContext(r.Context(), "Session save failed", "error", err, applog.FieldEmail, account.Email)
		InternalServerError("Could not sign in. Please try again.").Write(w)
		return
	}

	slog.InfoContext(r.Context(), "Signed in", applog.FieldEmail, account.Email)
	SuccessMessage("Welcome back, "+account.Name+".").
		Redirect("/dashboard").
		Write(w)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	if err := s.dir.SignOut(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Sign out failed", "error", err, applog.FieldOperation, applog.OpSignOut)
		InternalServerError("Could not sign out. Please try again.").Write(w)
		return
	}

	if r.Header.Get("HX-Request") == "true" {
		NewHTMXResponse().Redirect("/").Write(w)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
