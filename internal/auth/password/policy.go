package password

import (
	"unicode"
	"unicode/utf8"
)

// MinLength is the hard lower bound on password length, counted in runes.
const MinLength = 8

type Strength string

const (
	Weak     Strength = "WEAK"
	Moderate Strength = "MODERATE"
	Strong   Strength = "STRONG"
)

// Requirements holds the five independent facts checked against a
// candidate password. All five are always computed so callers can render
// a per-requirement checklist.
type Requirements struct {
	MinLength bool `json:"min_length"`
	Uppercase bool `json:"uppercase"`
	Lowercase bool `json:"lowercase"`
	Digit     bool `json:"digit"`
	Special   bool `json:"special"`
}

// Met reports how many of the four character classes are present.
// Length is deliberately excluded: it gates the tier, it does not blend
// into the class count.
func (r Requirements) Met() int {
	count := 0
	for _, ok := range []bool{r.Uppercase, r.Lowercase, r.Digit, r.Special} {
		if ok {
			count++
		}
	}
	return count
}

func CheckRequirements(candidate string) Requirements {
	req := Requirements{
		MinLength: utf8.RuneCountInString(candidate) >= MinLength,
	}

	for _, r := range candidate {
		switch {
		case unicode.IsUpper(r):
			req.Uppercase = true
		case unicode.IsLower(r):
			req.Lowercase = true
		case unicode.IsDigit(r):
			req.Digit = true
		default:
			req.Special = true
		}
	}

	return req
}

// Classify maps a candidate password to a coarse strength tier. A
// password below MinLength is always WEAK no matter how many classes it
// hits; with length satisfied, three classes rate MODERATE and all four
// rate STRONG.
func Classify(candidate string) Strength {
	req := CheckRequirements(candidate)
	classes := req.Met()

	switch {
	case !req.MinLength || classes < 3:
		return Weak
	case classes == 3:
		return Moderate
	default:
		return Strong
	}
}
