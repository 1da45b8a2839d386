package domain

import (
	"encoding/json"
	"testing"
)

func TestNewDecimalFromString(t *testing.T) {
	testCases := []struct {
		name        string
		value       string
		expectError bool
		expected    string
	}{
		{"whole hryvnias", "1500", false, "1500"},
		{"with kopecks", "1500.50", false, "1500.50"},
		{"keeps scale", "8000.00", false, "8000.00"},
		{"letters", "п'ятсот", true, ""},
		{"empty", "", true, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := NewDecimalFromString(tc.value)
			if tc.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.String() != tc.expected {
				t.Errorf("expected %s, got %s", tc.expected, d.String())
			}
		})
	}
}

func TestDecimal_CmpIgnoresScale(t *testing.T) {
	if mustDecimal("1500.00").Cmp(mustDecimal("1500")) != 0 {
		t.Error("1500.00 and 1500 must compare equal")
	}
	if mustDecimal("1499.99").Cmp(mustDecimal("1500")) >= 0 {
		t.Error("1499.99 must be lower than 1500")
	}
	if Zero.Cmp(mustDecimal("0.00")) != 0 {
		t.Error("Zero must equal 0.00")
	}
}

func TestDecimal_MarshalJSONAsNumber(t *testing.T) {
	data, err := json.Marshal(struct {
		Price Decimal `json:"price"`
	}{Price: mustDecimal("2500.00")})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"price":2500.00}` {
		t.Errorf("unexpected JSON %s", data)
	}
}

func TestMustDecimal_PanicsOnBadLiteral(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	mustDecimal("1,500")
}
