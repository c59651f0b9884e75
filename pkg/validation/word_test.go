package validation

import (
	"errors"
	"testing"
)

func TestValidateWord(t *testing.T) {
	tests := []struct {
		name    string
		word    string
		wantErr bool
	}{
		// Valid words
		{"simple", "happy", false},
		{"single char", "a", false},
		{"uppercase", "Happy", false},
		{"accented", "café", false},
		{"non latin", "слово", false},

		// Invalid words
		{"empty", "", true},
		{"digits", "123abc", true},
		{"trailing digit", "abc1", true},
		{"apostrophe", "don't", true},
		{"hyphen", "well-known", true},
		{"space", "two words", true},
		{"leading space", " happy", true},
		{"punctuation", "happy!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWord(tt.word)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWord(%q) error = %v, wantErr %v", tt.word, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidWord) {
				t.Errorf("ValidateWord(%q) error = %v, want wrapped ErrInvalidWord", tt.word, err)
			}
		})
	}
}

func TestNormalizeWord(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Happy", "happy"},
		{"  UnHappy \n", "unhappy"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := NormalizeWord(tt.input); got != tt.want {
			t.Errorf("NormalizeWord(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSanitizeWord(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"trim and lower", "  HAPPY  ", "happy", false},
		{"already clean", "kindness", "kindness", false},
		{"whitespace only", "   ", "", true},
		{"digits", "123abc", "", true},
		{"inner space", " two words ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeWord(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("SanitizeWord(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("SanitizeWord(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
