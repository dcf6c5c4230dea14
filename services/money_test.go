package services

import (
	"errors"
	"testing"
	"time"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"two places", "25.50", "25.50", false},
		{"one place padded", "25.5", "25.50", false},
		{"integer", "14", "14.00", false},
		{"half rounds up", "0.125", "0.13", false},
		{"below half rounds down", "0.124", "0.12", false},
		{"surrounding spaces", "  3.10 ", "3.10", false},
		{"zero", "0", "0.00", false},
		{"negative zero", "-0", "0.00", false},
		{"negative zero with places", "-0.00", "0.00", false},
		{"negative", "-1.00", "", true},
		{"empty", "", "", true},
		{"blank", "   ", "", true},
		{"not a number", "abc", "", true},
		{"currency symbol", "$25", "", true},
		{"exponent", "1e3", "", true},
		{"huge exponent", "1e9999999", "", true},
		{"huge negative exponent", "1e-9999999", "", true},
		{"upper case exponent", "2.5E2", "", true},
		{"longest accepted", "99999999999999999.99", "99999999999999999.99", false},
		{"too many digits", "999999999999999999.99", "", true},
		{"too many places", "0.0000000000000000001", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseAmount(%q) = %s, want error", tt.in, got)
				}
				if !errors.Is(err, ErrValidation) {
					t.Errorf("ParseAmount(%q) error = %v, want ErrValidation", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) error = %v", tt.in, err)
			}
			if s := FormatAmount(got); s != tt.want {
				t.Errorf("ParseAmount(%q) = %q, want %q", tt.in, s, tt.want)
			}
		})
	}
}

func TestParseAmount_ErrorField(t *testing.T) {
	_, err := ParseAmount("-5")

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if !ve.Has("amount") {
		t.Errorf("expected amount field error, got %v", ve.Fields)
	}
}

func TestLedgerAdd_RejectsOversizedAmountQuickly(t *testing.T) {
	l := NewLedger()

	start := time.Now()
	_, err := l.Add("Charger", "1e999999999")
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Add took %v, want it rejected immediately", elapsed)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Add() error = %v, want ErrValidation", err)
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
}
