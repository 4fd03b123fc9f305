package selection

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/ether/padformat/lib/dom"
	"github.com/ether/padformat/lib/point"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestFromTextOffsets(t *testing.T) {
	root := dom.MustParseFragment(`<p>hello <strong>world</strong></p>`)
	hello := root.FirstChild.FirstChild
	world := root.FirstChild.LastChild.FirstChild

	r, ok := FromTextOffsets(root, 6, 11)
	require.True(t, ok)
	assert.Equal(t, point.New(world, 0), r.Start)
	assert.Equal(t, point.New(world, 5), r.End)
	assert.Equal(t, "world", r.Text())

	r, ok = FromTextOffsets(root, 6, 6)
	require.True(t, ok)
	assert.True(t, r.IsCollapsed())
	assert.Equal(t, point.New(hello, 6), r.Start)

	_, ok = FromTextOffsets(root, 0, 50)
	assert.False(t, ok)
}

func TestOrderedAndCollapse(t *testing.T) {
	root := dom.MustParseFragment(`abcdef`)
	text := root.FirstChild
	r := New(point.New(text, 4), point.New(text, 1))
	ordered := r.Ordered()
	assert.Equal(t, 1, ordered.Start.Offset)
	assert.Equal(t, 4, ordered.End.Offset)
	assert.Equal(t, "bcd", r.Text())
	assert.True(t, ordered.Collapse(true).IsCollapsed())
	assert.Equal(t, 4, ordered.Collapse(false).Start.Offset)
}

func TestExpand(t *testing.T) {
	root := dom.MustParseFragment(`<p>ab<b>cd</b></p>`)
	cd := root.FirstChild.LastChild.FirstChild
	r := Collapsed(point.New(cd, 1)).Expand(func(n *html.Node) bool { return dom.IsTag(n, "p") })
	assert.Equal(t, point.New(root.FirstChild, 0), r.Start)
	assert.Equal(t, point.New(root.FirstChild, 2), r.End)
}

func TestNormalize(t *testing.T) {
	root := dom.MustParseFragment(`<p>ab</p><p>cd</p>`)
	p1 := root.FirstChild
	ab := p1.FirstChild
	cd := root.LastChild.FirstChild

	r := New(point.New(root, 1), point.New(root, 1)).Normalize()
	assert.Equal(t, point.New(ab, 2), r.End)
	assert.True(t, r.IsCollapsed())

	r = New(point.New(p1, 0), point.New(cd, 1)).Normalize()
	assert.Equal(t, point.New(ab, 0), r.Start)
	assert.Equal(t, point.New(cd, 1), r.End)
}

func TestWordRange(t *testing.T) {
	root := dom.MustParseFragment(`one two three`)
	text := root.FirstChild

	r := Collapsed(point.New(text, 7)).WordRange(WordOptions{FindAfter: true})
	assert.Equal(t, "two", r.Text())

	r = Collapsed(point.New(text, 6)).WordRange(WordOptions{FindAfter: true})
	assert.Equal(t, "two", r.Text())

	r = Collapsed(point.New(text, 6)).WordRange(WordOptions{})
	assert.Equal(t, "tw", r.Text())

	r = Collapsed(point.New(text, 4)).WordRange(WordOptions{FindAfter: true})
	assert.True(t, r.IsCollapsed())
}

func TestWordRange_Punctuation(t *testing.T) {
	root := dom.MustParseFragment(`say it's`)
	text := root.FirstChild
	r := Collapsed(point.New(text, 8)).WordRange(WordOptions{})
	assert.Equal(t, "it's", r.Text())
	r = Collapsed(point.New(text, 8)).WordRange(WordOptions{StopAtPunctuation: true})
	assert.Equal(t, "s", r.Text())
}

func TestInsideWord(t *testing.T) {
	root := dom.MustParseFragment(`abcd ef`)
	text := root.FirstChild
	assert.True(t, InsideWord(point.New(text, 2), false))
	assert.False(t, InsideWord(point.New(text, 4), false))
	assert.False(t, InsideWord(point.New(text, 0), false))
}

func TestSplitText(t *testing.T) {
	root := dom.MustParseFragment(`<p>abcdef</p>`)
	text := root.FirstChild.FirstChild
	r := New(point.New(text, 2), point.New(text, 4)).SplitText()

	assert.Equal(t, "cd", r.Start.Node.Data)
	assert.Equal(t, 0, r.Start.Offset)
	assert.Equal(t, r.Start.Node, r.End.Node)
	assert.Equal(t, 2, r.End.Offset)
	assert.Equal(t, 3, dom.ChildCount(root.FirstChild))
}

func TestSplitText_GraphemeSafe(t *testing.T) {
	root := dom.MustParseFragment("<p>ae\u0301b</p>")
	text := root.FirstChild.FirstChild
	r := New(point.New(text, 2), point.New(text, 4)).SplitText()
	assert.Equal(t, "e\u0301b", r.Start.Node.Data)
	assert.Equal(t, "a", text.Data)
}

func TestNodes(t *testing.T) {
	root := dom.MustParseFragment(`<p>ab<b>cd</b>ef</p>`)
	p := root.FirstChild
	ab := p.FirstChild
	ef := p.LastChild

	r := New(point.New(ab, 1), point.New(ef, 1))
	texts := r.Nodes(dom.IsText, NodesOptions{})
	require.Len(t, texts, 3)

	full := r.Nodes(dom.IsElement, NodesOptions{FullyContains: true})
	require.Len(t, full, 1)
	assert.True(t, dom.IsTag(full[0], "b"))

	blocks := r.Nodes(dom.IsBlock, NodesOptions{IncludeAncestor: true})
	assert.Equal(t, []*html.Node{p}, blocks)
}

func TestWalk_SameContainer(t *testing.T) {
	root := dom.MustParseFragment(`abc`)
	text := root.FirstChild
	var runs [][]*html.Node
	New(point.New(text, 1), point.New(text, 2)).Walk(func(nodes []*html.Node) {
		runs = append(runs, nodes)
	})
	assert.Equal(t, [][]*html.Node{{text}}, runs)
}

func TestWalk_Runs(t *testing.T) {
	root := dom.MustParseFragment(`<p>ab<b>cd</b>ef</p><p>gh<i>ij</i></p>`)
	p1, p2 := root.FirstChild, root.LastChild
	ab := p1.FirstChild
	ij := p2.LastChild.FirstChild

	var runs [][]*html.Node
	New(point.New(ab, 1), point.New(ij, 1)).Walk(func(nodes []*html.Node) {
		runs = append(runs, nodes)
	})
	expected := [][]*html.Node{
		{ab, p1.FirstChild.NextSibling, p1.LastChild},
		{ij},
		{p2.FirstChild},
	}
	if diff := cmp.Diff(names(expected), names(runs)); diff != "" {
		t.Fatalf("runs mismatch (-want +got):\n%s", diff)
	}
}

func TestWalk_CoversNodes(t *testing.T) {
	for i := 0; i < 10; i++ {
		markup := "<p>" + gofakeit.Word() + "<b>" + gofakeit.Word() + "</b></p><p><i>" + gofakeit.Word() + "</i>" + gofakeit.Word() + "</p>"
		root := dom.MustParseFragment(markup)
		texts := dom.FindAll(root, dom.IsText)
		first, last := texts[0], texts[len(texts)-1]
		r := New(point.New(first, dom.Len(first)/2), point.New(last, (dom.Len(last)+1)/2))

		covered := make([]*html.Node, 0)
		r.Walk(func(nodes []*html.Node) {
			for _, n := range nodes {
				covered = append(covered, dom.FindAll(n, dom.IsText)...)
			}
		})
		assert.ElementsMatch(t, r.Nodes(dom.IsText, NodesOptions{}), covered)
	}
}

func names(runs [][]*html.Node) [][]string {
	out := make([][]string, 0, len(runs))
	for _, run := range runs {
		row := make([]string, 0, len(run))
		for _, n := range run {
			row = append(row, dom.Name(n)+":"+dom.Text(n))
		}
		out = append(out, row)
	}
	return out
}

func TestPathBookmark(t *testing.T) {
	root := dom.MustParseFragment(`<p>ab<b>cd</b></p>`)
	cd := root.FirstChild.LastChild.FirstChild
	r := New(point.New(root.FirstChild.FirstChild, 1), point.New(cd, 2))

	b, ok := NewPathBookmark(root, r)
	require.True(t, ok)
	assert.Equal(t, []int{0, 0, 1}, b.Start)
	assert.Equal(t, []int{0, 1, 0, 2}, b.End)

	resolved, ok := b.Resolve(root)
	require.True(t, ok)
	assert.Equal(t, r, resolved)
}

func TestMarkerBookmark_RoundTrip(t *testing.T) {
	root := dom.MustParseFragment(`<p>abcdef</p>`)
	text := root.FirstChild.FirstChild
	b := NewMarkerBookmark(New(point.New(text, 1), point.New(text, 4)))

	assert.Len(t, dom.FindAll(root, dom.IsBookmark), 2)
	assert.Equal(t, "abcdef", dom.Text(root))

	r, ok := b.Resolve(root)
	require.True(t, ok)
	assert.Empty(t, dom.FindAll(root, dom.IsBookmark))
	assert.Equal(t, 1, dom.ChildCount(root.FirstChild))
	assert.Equal(t, "bcd", r.Text())
}

func TestMarkerBookmark_SurvivesRestructuring(t *testing.T) {
	root := dom.MustParseFragment(`<p>abcdef</p>`)
	text := root.FirstChild.FirstChild
	b := NewMarkerBookmark(New(point.New(text, 2), point.New(text, 4)))

	strong := dom.NewElement("strong")
	dom.Wrap(b.Start.NextSibling, strong)
	dom.Append(strong, b.End)
	// a stray copy of the start marker must not survive
	dom.Append(root.FirstChild, dom.CloneDeep(b.Start))

	r, ok := b.Resolve(root)
	require.True(t, ok)
	assert.Empty(t, dom.FindAll(root, dom.IsBookmark))
	assert.Equal(t, "cd", r.Text())
	assert.Equal(t, `<p>ab<strong>cd</strong>ef</p>`, dom.InnerHTML(root))
}

func TestMarkerBookmark_Collapsed(t *testing.T) {
	root := dom.MustParseFragment(`abcd`)
	b := NewMarkerBookmark(Collapsed(point.New(root.FirstChild, 2)))
	assert.Nil(t, b.End)
	r, ok := b.Resolve(root)
	require.True(t, ok)
	assert.True(t, r.IsCollapsed())
	assert.Equal(t, point.New(root.FirstChild, 2), r.Start)
}

func TestStaticHost(t *testing.T) {
	root := dom.MustParseFragment(`abcd`)
	r := Collapsed(point.New(root.FirstChild, 1))
	host := NewStatic(r)
	assert.Equal(t, r, host.Range())
	host.SetRange(FromNode(root))
	assert.Equal(t, 1, host.Range().End.Offset)
}
