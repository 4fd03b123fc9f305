package events

import "golang.org/x/net/html"

// FormatEvent is the context of the formatApply and formatRemove hooks.
type FormatEvent struct {
	Name string
	Vars map[string]string
	// Target is the node the caller passed, nil for selection based calls.
	Target *html.Node
	Root   *html.Node
}
