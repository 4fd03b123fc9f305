package point

import (
	"unicode"

	"github.com/ether/padformat/lib/dom"
)

type CharType int

const (
	Unknown CharType = iota
	Char
	Punctuation
	Space
)

func (c CharType) String() string {
	switch c {
	case Char:
		return "char"
	case Punctuation:
		return "punctuation"
	case Space:
		return "space"
	}
	return "unknown"
}

// IsWord reports whether c belongs to a word. Punctuation counts unless
// stopAtPunctuation is set.
func (c CharType) IsWord(stopAtPunctuation bool) bool {
	if c == Char {
		return true
	}
	return c == Punctuation && !stopAtPunctuation
}

// Classify returns the class of a single rune.
func Classify(r rune) CharType {
	switch {
	case r == '\uFEFF' || r == '\u200B':
		return Unknown
	case r == ' ' || unicode.IsSpace(r):
		return Space
	case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '_':
		return Char
	case unicode.IsPunct(r) || unicode.IsSymbol(r):
		return Punctuation
	}
	return Unknown
}

// CharTypeAt classifies the rune right before p. Points outside text or at
// the start of a text node are Unknown.
func CharTypeAt(p Point) CharType {
	if !dom.IsText(p.Node) || p.Offset <= 0 {
		return Unknown
	}
	runes := []rune(p.Node.Data)
	if p.Offset > len(runes) {
		return Unknown
	}
	return Classify(runes[p.Offset-1])
}

// CharTypeAfter classifies the rune right after p.
func CharTypeAfter(p Point) CharType {
	if !dom.IsText(p.Node) || p.Offset < 0 {
		return Unknown
	}
	runes := []rune(p.Node.Data)
	if p.Offset >= len(runes) {
		return Unknown
	}
	return Classify(runes[p.Offset])
}
