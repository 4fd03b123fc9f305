package format

import (
	"slices"

	"github.com/ether/padformat/lib/dom"
	"github.com/ether/padformat/lib/exception"
	"github.com/ether/padformat/lib/hooks"
	"github.com/ether/padformat/lib/hooks/events"
	"github.com/ether/padformat/lib/point"
	"github.com/ether/padformat/lib/selection"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

type Options struct {
	// ForcedRootBlock wraps content left directly below the root when a
	// block format is removed. Empty disables the wrapping.
	ForcedRootBlock string
	// ExpandCaretToWord formats the whole word when the caret sits inside
	// one.
	ExpandCaretToWord bool
	MergeSiblings     bool
	// TableCell tells the remove engine which elements must never end up
	// inside a wrapper.
	TableCell func(*html.Node) bool
}

func DefaultOptions() Options {
	return Options{
		ForcedRootBlock:   "p",
		ExpandCaretToWord: true,
		MergeSiblings:     true,
		TableCell:         IsTableCellOrRow,
	}
}

func IsTableCellOrRow(n *html.Node) bool {
	return dom.IsTag(n, "td", "th", "tr")
}

// Formatter applies, removes and matches named formats inside one editing
// root. It is not safe for concurrent use.
type Formatter struct {
	root     *html.Node
	host     selection.Host
	registry *Registry
	hook     *hooks.Hook
	logger   *zap.SugaredLogger
	options  Options

	caret   *html.Node
	scanned bool
}

func NewFormatter(root *html.Node, host selection.Host, registry *Registry, hook *hooks.Hook, logger *zap.SugaredLogger, options Options) *Formatter {
	if registry == nil {
		registry = NewDefaultRegistry()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if host == nil {
		host = selection.NewStatic(selection.Collapsed(point.Start(root)))
	}
	return &Formatter{
		root:     root,
		host:     host,
		registry: registry,
		hook:     hook,
		logger:   logger,
		options:  options,
	}
}

func (f *Formatter) Root() *html.Node {
	return f.root
}

func (f *Formatter) Registry() *Registry {
	return f.registry
}

func (f *Formatter) Host() selection.Host {
	return f.host
}

func (f *Formatter) lookup(name string) ([]*Descriptor, error) {
	list, ok := f.registry.Get(name)
	if !ok {
		f.logger.Warnw("unknown format", "name", name)
		return nil, exception.NewFormatNotFoundError(name)
	}
	return list, nil
}

func (f *Formatter) fire(key, name string, vars Vars, target *html.Node) {
	if f.hook == nil {
		return
	}
	f.hook.ExecuteHooks(key, &events.FormatEvent{
		Name:   name,
		Vars:   vars,
		Target: target,
		Root:   f.root,
	})
}

// preserveSelection runs action on the normalized selection and restores
// the selection afterwards, whatever action did to the tree.
func (f *Formatter) preserveSelection(action func(r selection.Range)) {
	r := f.host.Range().Ordered().Normalize()
	b := selection.NewMarkerBookmark(r)
	defer func() {
		if restored, ok := b.Resolve(f.root); ok {
			f.host.SetRange(restored)
		}
	}()
	action(b.Range())
}

// onRange runs action on r while keeping track of where r ends up.
func (f *Formatter) onRange(r selection.Range, action func(r selection.Range)) selection.Range {
	b := selection.NewMarkerBookmark(r.Ordered())
	restored := r
	func() {
		defer func() {
			if resolved, ok := b.Resolve(f.root); ok {
				restored = resolved
			}
		}()
		action(b.Range())
	}()
	return restored
}

// Apply formats the current selection.
func (f *Formatter) Apply(name string, vars Vars) error {
	list, err := f.lookup(name)
	if err != nil {
		return err
	}
	f.removeStaleCarets()
	r := f.host.Range()
	if r.IsZero() {
		return nil
	}
	f.logger.Debugw("apply format", "name", name)

	if node := selectedNode(r); dom.IsContentEditableFalse(node) {
		op := newOperation(name, list, vars, Exact)
		for _, d := range list {
			if d.CeFalseOverride && d.IsSelector() && d.matchesSelector(node) {
				f.setElementFormat(op, node, d)
				break
			}
		}
		f.fire(hooks.FormatApplyHook, name, vars, nil)
		return nil
	}

	for _, other := range f.registry.Group(name) {
		if f.Match(other, nil, Similar) != nil {
			f.remove(newOperation(other, f.mustGet(other), nil, Similar))
		}
	}

	op := newOperation(name, list, vars, Exact)
	op.collapsed = f.host.Range().IsCollapsed()
	if op.collapsed && op.format.IsInline() {
		f.applyCaretFormat(op)
	} else {
		f.preserveSelection(func(r selection.Range) {
			f.applyRangeStyle(op, f.expandRange(r, list, false))
		})
		f.postProcess(name)
	}
	f.fire(hooks.FormatApplyHook, name, vars, nil)
	return nil
}

func (f *Formatter) mustGet(name string) []*Descriptor {
	list, _ := f.registry.Get(name)
	return list
}

// ApplyToNode formats n itself, or the content it spans when the format
// cannot style n in place.
func (f *Formatter) ApplyToNode(name string, vars Vars, n *html.Node) error {
	list, err := f.lookup(name)
	if err != nil {
		return err
	}
	op := newOperation(name, list, vars, Exact)
	op.nodeSpecific = true
	if !f.applyNodeStyle(op, n) {
		f.onRange(selection.SelectNode(n), func(r selection.Range) {
			f.applyRangeStyle(op, f.expandRange(r, list, false))
		})
	}
	f.fire(hooks.FormatApplyHook, name, vars, n)
	return nil
}

// ApplyToRange formats exactly r, without expanding it, and returns the
// range covering the same content afterwards.
func (f *Formatter) ApplyToRange(name string, vars Vars, r selection.Range) (selection.Range, error) {
	list, err := f.lookup(name)
	if err != nil {
		return r, err
	}
	op := newOperation(name, list, vars, Exact)
	op.nodeSpecific = true
	restored := f.onRange(r, func(r selection.Range) {
		f.applyRangeStyle(op, r)
	})
	f.fire(hooks.FormatApplyHook, name, vars, nil)
	return restored, nil
}

// Remove takes the format off the current selection.
func (f *Formatter) Remove(name string, vars Vars, mode MatchMode) error {
	list, err := f.lookup(name)
	if err != nil {
		return err
	}
	f.removeStaleCarets()
	if f.host.Range().IsZero() {
		return nil
	}
	f.logger.Debugw("remove format", "name", name)
	f.remove(newOperation(name, list, vars, mode))
	f.fire(hooks.FormatRemoveHook, name, vars, nil)
	return nil
}

func (f *Formatter) remove(op *operation) {
	r := f.host.Range()
	op.collapsed = r.IsCollapsed()
	if op.collapsed && op.format.IsInline() {
		f.removeCaretFormat(op)
		return
	}
	f.preserveSelection(func(r selection.Range) {
		f.removeRangeStyle(op, r)
	})
}

// RemoveFromNode takes the format off n and everything inside it.
func (f *Formatter) RemoveFromNode(name string, vars Vars, n *html.Node, mode MatchMode) error {
	list, err := f.lookup(name)
	if err != nil {
		return err
	}
	op := newOperation(name, list, vars, mode)
	op.nodeSpecific = true
	f.onRange(selection.SelectNode(n), func(r selection.Range) {
		f.removeRangeStyle(op, r)
	})
	f.fire(hooks.FormatRemoveHook, name, vars, n)
	return nil
}

// RemoveFromRange takes the format off r and returns the range covering the
// same content afterwards.
func (f *Formatter) RemoveFromRange(name string, vars Vars, r selection.Range, mode MatchMode) (selection.Range, error) {
	list, err := f.lookup(name)
	if err != nil {
		return r, err
	}
	op := newOperation(name, list, vars, mode)
	op.nodeSpecific = true
	restored := f.onRange(r, func(r selection.Range) {
		f.removeRangeStyle(op, r)
	})
	f.fire(hooks.FormatRemoveHook, name, vars, nil)
	return restored, nil
}

// Toggle removes the format when the selection carries it and the format
// allows toggling, and applies it otherwise.
func (f *Formatter) Toggle(name string, vars Vars) error {
	list, err := f.lookup(name)
	if err != nil {
		return err
	}
	if f.Match(name, vars, Exact) != nil && list[0].CanToggle() {
		return f.Remove(name, vars, Exact)
	}
	return f.Apply(name, vars)
}

func (f *Formatter) ToggleNode(name string, vars Vars, n *html.Node) error {
	list, err := f.lookup(name)
	if err != nil {
		return err
	}
	if f.MatchNode(name, vars, n, Exact) != nil && list[0].CanToggle() {
		return f.RemoveFromNode(name, vars, n, Exact)
	}
	return f.ApplyToNode(name, vars, n)
}

// CanApply reports whether the selection start sits where the format can
// take effect. Only selector formats are restricted.
func (f *Formatter) CanApply(name string) bool {
	list, ok := f.registry.Get(name)
	r := f.host.Range()
	if !ok || r.IsZero() {
		return false
	}
	start := startNode(r)
	if !dom.IsEditable(start, f.root) {
		return false
	}
	for i := len(list) - 1; i >= 0; i-- {
		d := list[i]
		if !d.IsSelector() {
			return true
		}
		for e := start; e != nil && e != f.root; e = e.Parent {
			if d.matchesSelector(e) {
				return true
			}
		}
	}
	return false
}

// CreateBookmark marks the current selection so it survives restructuring.
func (f *Formatter) CreateBookmark() *selection.MarkerBookmark {
	return selection.NewMarkerBookmark(f.host.Range())
}

// MoveToBookmark selects the range marked by b and removes its markers.
func (f *Formatter) MoveToBookmark(b *selection.MarkerBookmark) bool {
	r, ok := b.Resolve(f.root)
	if ok {
		f.host.SetRange(r)
	}
	return ok
}

// postProcess runs the fixups some formats need after a range apply.
func (f *Formatter) postProcess(name string) {
	if name != "pre" {
		return
	}
	r := f.host.Range().Ordered()
	if r.IsZero() || r.IsCollapsed() {
		return
	}
	selected := dom.FindAll(f.root, func(n *html.Node) bool {
		return dom.IsTag(n, "pre") &&
			point.Compare(point.End(n), r.Start) > 0 && point.Compare(point.Start(n), r.End) < 0
	})
	for _, pre := range selected {
		prev := pre.PrevSibling
		if !dom.IsTag(prev, "pre") || !slices.Contains(selected, prev) || pre.Parent == nil {
			continue
		}
		dom.Detach(pre)
		prev.AppendChild(dom.NewElement("br"))
		prev.AppendChild(dom.NewElement("br"))
		for _, c := range dom.Children(pre) {
			dom.Append(prev, c)
		}
	}
}
