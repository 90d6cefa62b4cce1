package game

import "strings"

// HasGuessed reports whether r is among the guessed letters.
func (v View) HasGuessed(r rune) bool {
	for _, x := range v.Guessed {
		if x == r {
			return true
		}
	}
	return false
}

// InWord reports whether r occurs in the target word.
func (v View) InWord(r rune) bool { return strings.ContainsRune(v.Word, r) }

// State reports a coarse string representation of the view.
func (v View) State() string {
	switch {
	case v.IsWon:
		return StateWon
	case v.IsLost:
		return StateLost
	default:
		return StatePlaying
	}
}
