package selection

import (
	"github.com/ether/padformat/lib/point"
)

type WordOptions struct {
	// StopAtPunctuation ends the word at punctuation instead of treating it
	// as part of the word.
	StopAtPunctuation bool
	// FindAfter also extends the range forwards to the end of the word.
	FindAfter bool
}

// WordRange returns the range of the word touching the end boundary. When
// the rune before the end is not a word rune the range is returned as is.
func (r Range) WordRange(opts WordOptions) Range {
	end := r.End
	wordBefore := func(p point.Point) bool {
		return point.CharTypeAt(p).IsWord(opts.StopAtPunctuation)
	}
	if !wordBefore(end) {
		return r
	}
	start, ok := point.PrevUntil(end, func(p point.Point) bool { return !wordBefore(p) })
	if !ok {
		return r
	}
	if opts.FindAfter {
		if after, found := point.NextUntil(end, func(p point.Point) bool {
			return !point.CharTypeAfter(p).IsWord(opts.StopAtPunctuation)
		}); found {
			end = after
		}
	}
	return New(start, end)
}

// InsideWord reports whether p sits strictly between two word runes.
func InsideWord(p point.Point, stopAtPunctuation bool) bool {
	return point.CharTypeAt(p).IsWord(stopAtPunctuation) && point.CharTypeAfter(p).IsWord(stopAtPunctuation)
}
