package utils

import (
	"testing"
)

func TestHashKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Export URL", "https://docs.google.com/spreadsheets/d/abc/gviz/tq?tqx=out:json"},
		{"Empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HashKey(tt.input)
			if len(got) != 64 {
				t.Errorf("HashKey() length = %v, want 64", len(got))
			}
			if got2 := HashKey(tt.input); got != got2 {
				t.Errorf("HashKey() not deterministic: %v != %v", got, got2)
			}
		})
	}
}

func TestHashKey_Uniqueness(t *testing.T) {
	a := HashKey("https://docs.google.com/spreadsheets/d/abc/gviz/tq?tqx=out:json")
	b := HashKey("https://docs.google.com/spreadsheets/d/abd/gviz/tq?tqx=out:json")
	if a == b {
		t.Error("Different inputs produced same hash")
	}
}
