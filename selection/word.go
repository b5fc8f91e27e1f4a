// Package selection implements the document-order text selection model:
// granularity modes, hit testing, caret navigation and copy serialization
// over the line boxes layout produced.
package selection

import (
	"unicode"
	"unicode/utf8"
)

// =============================================================================
// WORD BOUNDARIES
// Whitespace is always a boundary. An apostrophe between two letters is
// not: "don't" is one word. Other punctuation is a boundary.
// =============================================================================

// isApostrophe matches the straight quote and U+2019.
func isApostrophe(r rune) bool {
	return r == '\'' || r == '’'
}

// isWordBoundaryAt reports whether the rune starting at byte i breaks a
// word.
func isWordBoundaryAt(text string, i int) bool {
	r, size := utf8.DecodeRuneInString(text[i:])
	if size == 0 {
		return true
	}
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return false
	}
	if isApostrophe(r) {
		// Not a boundary when a letter sits on both sides.
		prev, prevSize := utf8.DecodeLastRuneInString(text[:i])
		next, nextSize := utf8.DecodeRuneInString(text[i+size:])
		if prevSize > 0 && nextSize > 0 && unicode.IsLetter(prev) && unicode.IsLetter(next) {
			return false
		}
	}
	return true
}

// FindWordBoundaries returns the byte range [start, end) of the word that
// contains byte index i. If i sits on a boundary character, the word is
// that character alone.
func FindWordBoundaries(text string, i int) (int, int) {
	if len(text) == 0 {
		return 0, 0
	}
	if i >= len(text) {
		i = len(text) - 1
	}
	// Snap back to the rune start.
	for i > 0 && !utf8.RuneStart(text[i]) {
		i--
	}

	if isWordBoundaryAt(text, i) {
		_, size := utf8.DecodeRuneInString(text[i:])
		return i, i + size
	}

	start := i
	for start > 0 {
		prev := start
		for prev > 0 && !utf8.RuneStart(text[prev-1]) {
			prev--
		}
		prev--
		if isWordBoundaryAt(text, prev) {
			break
		}
		start = prev
	}

	end := i
	for end < len(text) && !isWordBoundaryAt(text, end) {
		_, size := utf8.DecodeRuneInString(text[end:])
		end += size
	}

	return start, end
}

// nextWordEnd returns the end of the next word at or after byte i within
// the line, for word-wise caret movement.
func nextWordEnd(text string, i int) int {
	// Skip any boundary run first.
	for i < len(text) && isWordBoundaryAt(text, i) {
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	for i < len(text) && !isWordBoundaryAt(text, i) {
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return i
}

// prevWordStart returns the start of the previous word before byte i.
func prevWordStart(text string, i int) int {
	back := func(j int) int {
		for j > 0 && !utf8.RuneStart(text[j-1]) {
			j--
		}
		return j - 1
	}
	for i > 0 {
		p := back(i)
		if !isWordBoundaryAt(text, p) {
			i = p
			break
		}
		i = p
	}
	for i > 0 {
		p := back(i)
		if isWordBoundaryAt(text, p) {
			break
		}
		i = p
	}
	return i
}
