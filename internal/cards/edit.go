package cards

import (
	"errors"
	"fmt"
)

// ErrNoCard is returned when an edit addresses a position outside the list.
var ErrNoCard = errors.New("no such card")

// The edits below never modify their input slice; they return a new,
// renumbered list.

// Renumber assigns page indexes 1..n in list order.
func Renumber(cs []Card) []Card {
	out := make([]Card, len(cs))
	for i, c := range cs {
		c.PageIndex = i + 1
		out[i] = c
	}
	return out
}

// Append adds c as the last page.
func Append(cs []Card, c Card) []Card {
	out := make([]Card, 0, len(cs)+1)
	out = append(out, cs...)
	return Renumber(append(out, c))
}

// Remove drops the card at position i (0-based).
func Remove(cs []Card, i int) ([]Card, error) {
	if i < 0 || i >= len(cs) {
		return nil, fmt.Errorf("%w: position %d of %d", ErrNoCard, i, len(cs))
	}
	out := make([]Card, 0, len(cs)-1)
	out = append(out, cs[:i]...)
	out = append(out, cs[i+1:]...)
	return Renumber(out), nil
}

// Update replaces the text of the card at position i.
func Update(cs []Card, i int, title, content string) ([]Card, error) {
	if i < 0 || i >= len(cs) {
		return nil, fmt.Errorf("%w: position %d of %d", ErrNoCard, i, len(cs))
	}
	out := Renumber(cs)
	out[i].Title, out[i].Content = title, content
	return out, nil
}
