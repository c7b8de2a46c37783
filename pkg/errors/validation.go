package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxWordLength bounds a single word so one entry cannot swamp the canvas.
const MaxWordLength = 64

// ValidateWord checks the text and weight of a word entry.
//
// The rules:
//   - text must contain at least one non-space character
//   - text must not contain control characters
//   - text is at most MaxWordLength runes
//   - weight must be a finite number greater than zero
func ValidateWord(text string, weight float64) error {
	if err := ValidateText(text); err != nil {
		return err
	}
	return ValidateWeight(weight)
}

// ValidateText checks a word's display text.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return New(ErrCodeValidation, "word cannot be empty")
	}

	n := 0
	for _, r := range text {
		if unicode.IsControl(r) {
			return New(ErrCodeValidation, "word contains invalid control characters")
		}
		n++
	}
	if n > MaxWordLength {
		return New(ErrCodeValidation, "word too long (max %d characters)", MaxWordLength)
	}
	return nil
}

// ValidateWeight checks a word's weight.
func ValidateWeight(weight float64) error {
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return New(ErrCodeValidation, "weight must be a number")
	}
	if weight <= 0 {
		return New(ErrCodeValidation, "weight must be positive, got %g", weight)
	}
	return nil
}

// ValidateIndex checks that i addresses an element of a list of length n.
func ValidateIndex(i, n int) error {
	if i < 0 || i >= n {
		return New(ErrCodeIndexOutOfRange, "index %d out of range [0, %d)", i, n)
	}
	return nil
}
