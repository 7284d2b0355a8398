package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2024-01-15", true},
		{" 2024-12-31 ", true},
		{"2024-13-01", false},
		{"15/01/2024", false},
		{"", false},
	}
	for i, tc := range cases {
		_, err := ParseDate(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, 1, 15)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-01-15"` {
		t.Fatalf("unexpected encoding %s", b)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip mismatch: %v != %v", back, d)
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail(" ALICE@X.COM "); got != "alice@x.com" {
		t.Fatalf("got %q", got)
	}
}

func TestNewTransactionID(t *testing.T) {
	ts := time.UnixMilli(1700000000000)
	if got := NewTransactionID(ts); got != "tx_1700000000000" {
		t.Fatalf("got %q", got)
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		ID:       "tx_1",
		Type:     Income,
		Amount:   10,
		Category: "Salary",
		Date:     NewDate(2024, 1, 15),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Type: Income, Amount: 10, Category: "c", Date: NewDate(2024, 1, 1)},                 // missing id
		{ID: "tx_1", Type: "transfer", Amount: 10, Category: "c", Date: NewDate(2024, 1, 1)}, // bad type
		{ID: "tx_1", Type: Expense, Amount: 0, Category: "c", Date: NewDate(2024, 1, 1)},     // zero amount
		{ID: "tx_1", Type: Expense, Amount: -5, Category: "c", Date: NewDate(2024, 1, 1)},    // negative stored
		{ID: "tx_1", Type: Expense, Amount: 5, Category: " ", Date: NewDate(2024, 1, 1)},     // blank category
		{ID: "tx_1", Type: Expense, Amount: 5, Category: "c"},                                // zero date
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestValidateRegistration(t *testing.T) {
	if err := ValidateRegistration("Alice", "alice@x.com", "secret1"); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	cases := []struct {
		name, email, password string
		want                  error
	}{
		{"", "a@x.com", "secret1", ErrEmptyName},
		{"A", "  ", "secret1", ErrEmptyEmail},
		{"A", "a@x.com", "12345", ErrPasswordTooShort},
	}
	for i, tc := range cases {
		if err := ValidateRegistration(tc.name, tc.email, tc.password); err != tc.want {
			t.Fatalf("case %d got %v, want %v", i, err, tc.want)
		}
	}
}

func TestSigned(t *testing.T) {
	in := Transaction{Type: Income, Amount: 100}
	out := Transaction{Type: Expense, Amount: 40}
	if in.Signed() != 100 || out.Signed() != -40 {
		t.Fatalf("signed values wrong: %v %v", in.Signed(), out.Signed())
	}
}
