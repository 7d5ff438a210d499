package domain

import (
	"testing"
)

func TestTransactionTypeValid(t *testing.T) {
	tests := []struct {
		name  string
		typ   TransactionType
		valid bool
	}{
		{"income", TransactionTypeIncome, true},
		{"expense", TransactionTypeExpense, true},
		{"empty", TransactionType(""), false},
		{"unknown", TransactionType("transfer"), false},
		{"case sensitive", TransactionType("Income"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.Valid(); got != tt.valid {
				t.Errorf("TransactionType(%q).Valid() = %v, want %v", tt.typ, got, tt.valid)
			}
		})
	}
}
