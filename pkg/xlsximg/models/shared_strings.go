package models

import "fmt"

// SharedStrings maps a shared-string index to its text.
type SharedStrings map[int]string

// Lookup returns the text at index i, or a placeholder when the index is unknown.
func (s SharedStrings) Lookup(i int) string {
	if text, ok := s[i]; ok {
		return text
	}
	return fmt.Sprintf("unknown string %d", i)
}
