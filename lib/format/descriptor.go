package format

import (
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/ether/padformat/lib/dom"
	"golang.org/x/net/html"
)

// AnyTag in Inline or Block matches every inline or block element.
const AnyTag = "*"

type Kind int

const (
	KindInline Kind = iota + 1
	KindBlock
	KindSelector
	KindMixed
)

func (k Kind) String() string {
	switch k {
	case KindInline:
		return "inline"
	case KindBlock:
		return "block"
	case KindSelector:
		return "selector"
	case KindMixed:
		return "mixed"
	}
	return "unknown"
}

type RemovePolicy string

const (
	RemoveDefault RemovePolicy = ""
	RemoveAll     RemovePolicy = "all"
	RemoveNone    RemovePolicy = "none"
	RemoveEmpty   RemovePolicy = "empty"
)

// Item names the attribute family a match is being run against.
type Item string

const (
	ItemStyles     Item = "styles"
	ItemAttributes Item = "attributes"
)

// Vars feed %name placeholders in style, attribute and class values.
type Vars map[string]string

// Hooks lets a descriptor take over matching or decorate created elements.
type Hooks struct {
	// OnMatch replaces the style and attribute comparison when set.
	OnMatch func(n *html.Node, d *Descriptor, item Item) bool
	// OnFormat runs on every element the descriptor is applied to.
	OnFormat func(n *html.Node, d *Descriptor, vars Vars)
}

// Descriptor is one shape a named format can take in the tree.
type Descriptor struct {
	Inline   string
	Block    string
	Selector string

	Styles         map[string]string
	StyleNames     []string
	Attributes     map[string]string
	AttributeNames []string
	Classes        []string

	// Compound requires both styles and classes to match when both are
	// declared; otherwise either one is enough.
	Compound bool
	Exact    bool
	Toggle   *bool
	Remove   RemovePolicy
	Deep     *bool
	Split    *bool
	Group    string
	Wrapper  bool
	Expand   *bool

	BlockExpand      bool
	MergeSiblings    *bool
	MergeWithParents bool
	ClearChildStyles bool
	Links            bool

	PreserveAttributes []string
	RemoveSimilar      bool
	// Uninherited selector formats stop the ancestor search of Match.
	Uninherited bool
	// Collapsed restricts a selector descriptor to collapsed or expanded
	// selections.
	Collapsed       *bool
	CeFalseOverride bool
	DefaultBlock    string

	Hooks *Hooks

	mixed    bool
	selector cascadia.Selector
}

func Bool(v bool) *bool {
	return &v
}

func (d *Descriptor) Kind() Kind {
	switch {
	case d.Selector != "" && d.Inline != "":
		return KindMixed
	case d.Selector != "":
		return KindSelector
	case d.Block != "":
		return KindBlock
	case d.Inline != "":
		return KindInline
	}
	return 0
}

func (d *Descriptor) IsInline() bool {
	return d.Inline != ""
}

func (d *Descriptor) IsBlock() bool {
	return d.Block != ""
}

func (d *Descriptor) IsSelector() bool {
	return d.Selector != ""
}

func (d *Descriptor) IsMixed() bool {
	return d.mixed
}

func (d *Descriptor) IsWrappingBlock() bool {
	return d.IsBlock() && d.Wrapper
}

func (d *Descriptor) IsNonWrappingBlock() bool {
	return d.IsBlock() && !d.Wrapper
}

func (d *Descriptor) CanToggle() bool {
	return d.Toggle == nil || *d.Toggle
}

func (d *Descriptor) IsDeep() bool {
	return d.Deep != nil && *d.Deep
}

func (d *Descriptor) CanSplit() bool {
	return d.Split == nil || *d.Split
}

func (d *Descriptor) MergesSiblings() bool {
	return d.MergeSiblings == nil || *d.MergeSiblings
}

func (d *Descriptor) expandsToSelector() bool {
	return d.IsSelector() && (d.Expand == nil || *d.Expand) && !d.IsInline()
}

func (d *Descriptor) allowsCollapsed(collapsed bool) bool {
	return d.Collapsed == nil || *d.Collapsed == collapsed
}

// wrapName is the tag new wrappers are created with, or "" when the
// descriptor never creates elements.
func (d *Descriptor) wrapName() string {
	name := d.Inline
	if name == "" {
		name = d.Block
	}
	if name == AnyTag {
		return ""
	}
	return name
}

func (d *Descriptor) matchesSelector(n *html.Node) bool {
	if d.selector == nil || !dom.IsElement(n) {
		return false
	}
	return d.selector.Match(n)
}

// applyDefaults fills the policy flags left unset at registration.
func (d *Descriptor) applyDefaults() error {
	if d.Deep == nil {
		d.Deep = Bool(!d.IsSelector())
	}
	if d.Split == nil {
		d.Split = Bool(!d.IsSelector() || d.IsInline())
	}
	if d.Remove == RemoveDefault && d.IsSelector() && !d.IsInline() {
		d.Remove = RemoveNone
	}
	if d.IsSelector() && d.IsInline() {
		d.mixed = true
		d.BlockExpand = true
	}
	d.Inline = strings.ToLower(d.Inline)
	d.Block = strings.ToLower(d.Block)
	if d.IsSelector() {
		sel, err := cascadia.Compile(d.Selector)
		if err != nil {
			return err
		}
		d.selector = sel
	}
	styles := make(map[string]string, len(d.Styles))
	for name, value := range d.Styles {
		styles[dom.NormalizeProperty(name)] = value
	}
	d.Styles = styles
	names := make([]string, 0, len(d.StyleNames))
	for _, name := range d.StyleNames {
		names = append(names, dom.NormalizeProperty(name))
	}
	d.StyleNames = names
	return nil
}

var varPattern = regexp.MustCompile(`%(\w+)`)

// ReplaceVars substitutes %name placeholders. Unknown names are kept as is.
func ReplaceVars(value string, vars Vars) string {
	if len(vars) == 0 || !strings.Contains(value, "%") {
		return value
	}
	return varPattern.ReplaceAllStringFunc(value, func(m string) string {
		if v, ok := vars[m[1:]]; ok && v != "" {
			return v
		}
		return m
	})
}
