package key

import (
	"fmt"
	"strings"
)

// Sequence is an ordered run of key codes.
// Examples: "G A M E", "M O U S E", "R G B"
type Sequence struct {
	// Codes contains the codes in the order they were typed.
	Codes []Code
}

// NewSequence creates an empty key sequence.
func NewSequence() *Sequence {
	return &Sequence{
		Codes: make([]Code, 0, 5), // Leader sequences top out at five keys
	}
}

// NewSequenceFrom creates a sequence from the given codes.
func NewSequenceFrom(codes ...Code) *Sequence {
	return &Sequence{
		Codes: codes,
	}
}

// Len returns the number of codes in the sequence.
func (s *Sequence) Len() int {
	return len(s.Codes)
}

// IsEmpty returns true if the sequence has no codes.
func (s *Sequence) IsEmpty() bool {
	return len(s.Codes) == 0
}

// Add appends a code to the sequence.
func (s *Sequence) Add(code Code) {
	s.Codes = append(s.Codes, code)
}

// Clear removes all codes from the sequence.
func (s *Sequence) Clear() {
	s.Codes = s.Codes[:0]
}

// Last returns the last code, or KeyNone if empty.
func (s *Sequence) Last() Code {
	if len(s.Codes) == 0 {
		return KeyNone
	}
	return s.Codes[len(s.Codes)-1]
}

// At returns the code at the given index, or KeyNone if out of bounds.
func (s *Sequence) At(index int) Code {
	if index < 0 || index >= len(s.Codes) {
		return KeyNone
	}
	return s.Codes[index]
}

// String returns a space-separated representation using short names.
// Examples: "G A M E", "R G B"
func (s *Sequence) String() string {
	if s == nil || len(s.Codes) == 0 {
		return ""
	}

	parts := make([]string, len(s.Codes))
	for i, c := range s.Codes {
		parts[i] = strings.TrimPrefix(c.String(), "KC_")
	}
	return strings.Join(parts, " ")
}

// Equals returns true if two sequences hold the same codes in the same order.
func (s *Sequence) Equals(other *Sequence) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.Codes) != len(other.Codes) {
		return false
	}
	for i, c := range s.Codes {
		if c != other.Codes[i] {
			return false
		}
	}
	return true
}

// HasPrefix returns true if this sequence starts with the given prefix.
func (s *Sequence) HasPrefix(prefix *Sequence) bool {
	if prefix == nil || prefix.IsEmpty() {
		return true
	}
	if len(prefix.Codes) > len(s.Codes) {
		return false
	}
	for i, c := range prefix.Codes {
		if c != s.Codes[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the sequence.
func (s *Sequence) Clone() *Sequence {
	if s == nil {
		return nil
	}
	codes := make([]Code, len(s.Codes))
	copy(codes, s.Codes)
	return &Sequence{Codes: codes}
}

// ParseSequence parses a sequence string into a Sequence.
// The string can contain space-separated names or a continuous run of
// single-character names.
// Examples: "G A M E", "KC_R KC_G KC_B", "kiddo"
func ParseSequence(s string) (*Sequence, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NewSequence(), nil
	}

	seq := NewSequence()

	// Check for space-separated format first
	if strings.ContainsAny(s, " \t") {
		for _, part := range strings.Fields(s) {
			code, ok := CodeFromName(part)
			if !ok {
				return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, part)
			}
			seq.Add(code)
		}
		return seq, nil
	}

	// Parse as a continuous run of characters
	for _, r := range s {
		code, ok := CodeFromName(string(r))
		if !ok {
			return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, string(r))
		}
		seq.Add(code)
	}

	return seq, nil
}

// MustParseSequence parses a sequence string and panics on error.
// Use only for known-valid sequences in initialization code.
func MustParseSequence(s string) *Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic("invalid key sequence: " + s + ": " + err.Error())
	}
	return seq
}
