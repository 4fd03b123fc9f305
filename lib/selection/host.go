package selection

// Host gives access to the live selection of the surrounding editor.
type Host interface {
	Range() Range
	SetRange(Range)
}

// Static is an in-memory Host.
type Static struct {
	current Range
}

func NewStatic(r Range) *Static {
	return &Static{current: r}
}

func (s *Static) Range() Range {
	return s.current
}

func (s *Static) SetRange(r Range) {
	s.current = r
}
