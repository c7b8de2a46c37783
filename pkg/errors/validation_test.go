package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "cloud", false},
		{"with dot", "Vue.js", false},
		{"with space", "hello world", false},
		{"unicode", "Grüße", false},
		{"max length", strings.Repeat("a", MaxWordLength), false},

		{"empty", "", true},
		{"only spaces", "   ", true},
		{"tab only", "\t", true},
		{"too long", strings.Repeat("a", MaxWordLength+1), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateText(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateText(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeValidation) {
				t.Errorf("ValidateText(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeValidation)
			}
		})
	}
}

func TestValidateWeight(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"positive int", 10, false},
		{"fraction", 0.5, false},
		{"large", 1e9, false},

		{"zero", 0, true},
		{"negative", -3, true},
		{"NaN", math.NaN(), true},
		{"+Inf", math.Inf(1), true},
		{"-Inf", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWeight(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWeight(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateIndex(t *testing.T) {
	tests := []struct {
		i, n    int
		wantErr bool
	}{
		{0, 3, false},
		{2, 3, false},
		{3, 3, true},
		{5, 3, true},
		{-1, 3, true},
		{0, 0, true},
	}
	for _, tt := range tests {
		err := ValidateIndex(tt.i, tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateIndex(%d, %d) error = %v, wantErr %v", tt.i, tt.n, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeIndexOutOfRange) {
			t.Errorf("ValidateIndex(%d, %d) code = %v", tt.i, tt.n, GetCode(err))
		}
	}
}
