package core

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// DefaultCategory is assigned when a transaction is submitted with a blank category.
const DefaultCategory = "Other"

type (
	TransactionType string

	Date struct {
		time.Time
	}

	// Transaction is a single ledger entry. Amount is always a non-negative
	// magnitude; the sign is derived from Type at aggregation time.
	Transaction struct {
		ID          string          `json:"id"`
		Type        TransactionType `json:"type"`
		Amount      float64         `json:"amount"`
		Category    string          `json:"category"`
		Date        Date            `json:"date"`
		Description string          `json:"description,omitempty"`
	}

	// Account is a registered user's profile and owned transaction list.
	// The password is stored as plaintext, a known limitation of the demo.
	Account struct {
		Name         string        `json:"name"`
		Email        string        `json:"email"`
		Password     string        `json:"password"`
		Transactions []Transaction `json:"transactions"`
	}
)

var (
	ErrAccountExists      = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidType        = errors.New("invalid transaction type")
	ErrInvalidDate        = errors.New("invalid date")
	ErrEmptyName          = errors.New("empty name")
	ErrEmptyEmail         = errors.New("empty email")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrNotConfirmed       = errors.New("destructive operation not confirmed")
	ErrNoSession          = errors.New("no authenticated session")
	ErrAccountNotFound    = errors.New("account not found")
)

// MinPasswordLength is the signup precondition on password size.
const MinPasswordLength = 6

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day (UTC midnight).
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses an ISO 8601 calendar date (YYYY-MM-DD, no time component).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// MarshalJSON encodes the date as a bare YYYY-MM-DD string, matching the
// persisted document format.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.Format(dateLayout))), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return ErrInvalidDate
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// NormalizeEmail lowercases and trims an email so it can serve as a
// case-insensitive directory key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewTransactionID derives a transaction id from its creation timestamp.
func NewTransactionID(t time.Time) string {
	return "tx_" + strconv.FormatInt(t.UnixMilli(), 10)
}

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidType
	}
}

func (tx Transaction) Validate() error {
	if tx.ID == "" {
		return errors.New("missing transaction id")
	}
	if err := tx.Type.Validate(); err != nil {
		return err
	}
	if !validAmount(tx.Amount) || tx.Amount <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(tx.Category) == "" {
		return errors.New("empty category")
	}
	if err := tx.Date.Validate(); err != nil {
		return err
	}
	return nil
}

// Signed returns the transaction amount with its sign derived from the type:
// income positive, expense negative.
func (tx Transaction) Signed() float64 {
	if tx.Type == Expense {
		return -tx.Amount
	}
	return tx.Amount
}

// ValidateRegistration checks the signup preconditions.
func ValidateRegistration(name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if NormalizeEmail(email) == "" {
		return ErrEmptyEmail
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
