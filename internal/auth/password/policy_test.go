package password

import (
	"strings"
	"testing"
)

func TestCheckRequirements(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     Requirements
	}{
		{
			name:     "empty",
			password: "",
			want:     Requirements{},
		},
		{
			name:     "lowercase only, short",
			password: "abc",
			want:     Requirements{Lowercase: true},
		},
		{
			name:     "all classes, long enough",
			password: "Abcdefg1!",
			want:     Requirements{MinLength: true, Uppercase: true, Lowercase: true, Digit: true, Special: true},
		},
		{
			name:     "all classes, too short",
			password: "Ab1!",
			want:     Requirements{Uppercase: true, Lowercase: true, Digit: true, Special: true},
		},
		{
			name:     "space counts as special",
			password: "abc def1",
			want:     Requirements{MinLength: true, Lowercase: true, Digit: true, Special: true},
		},
		{
			name:     "multibyte runes counted once each",
			password: "пароль1",
			want:     Requirements{Lowercase: true, Digit: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckRequirements(tt.password)
			if got != tt.want {
				t.Errorf("CheckRequirements(%q) = %+v, want %+v", tt.password, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     Strength
	}{
		{"empty", "", Weak},
		{"too short lowercase", "abc", Weak},
		{"too short all four classes", "Ab1!", Weak},
		{"long but single class", "aaaaaaaaaaaa", Weak},
		{"long two classes", "abcdefgh1234", Weak},
		{"exactly three classes", "Abcdefg1", Moderate},
		{"three classes very long", "Abcdefg1" + strings.Repeat("x", 100), Moderate},
		{"all four classes", "Abcdefg1!", Strong},
		{"boundary length eight with four classes", "Abcde1!x", Strong},
		{"seven runes four classes", "Abcd1!x", Weak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.password); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestClassifyLengthIsHardGate(t *testing.T) {
	// Four classes present but one rune short of the minimum: still weak.
	if got := Classify("Abcde1!"); got != Weak {
		t.Errorf("length gate not enforced, got %v", got)
	}
}

func TestRequirementsMet(t *testing.T) {
	req := Requirements{Uppercase: true, Lowercase: true, Digit: true}
	if got := req.Met(); got != 3 {
		t.Errorf("Met() = %d, want 3", got)
	}

	// MinLength must not contribute to the class count.
	req.MinLength = true
	if got := req.Met(); got != 3 {
		t.Errorf("Met() with MinLength = %d, want 3", got)
	}
}
