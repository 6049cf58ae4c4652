package gtf

import "strings"

// Child is anything a ParentNode can hold: a leaf Record or another node.
type Child interface {
	Span() (start, end int64)
	ToRecord() *Record
	FormatGTF() string
}

// NodeKind configures a ParentNode: its feature label, the attribute key
// substrings that belong to deeper levels, and whether children are keyed.
type NodeKind struct {
	Feature string
	Strip   []string
	Keyed   bool
}

var (
	// GeneKind describes gene nodes, keyed by transcript id.
	GeneKind = NodeKind{Feature: "gene", Strip: []string{"transcript", "exon"}, Keyed: true}

	// TranscriptKind describes transcript nodes holding leaf records.
	TranscriptKind = NodeKind{Feature: "transcript", Strip: []string{"exon"}}
)

// ParentNode is an ordered container of children with an aggregated span.
//
// Seqname, source, strand and frame come from the base record when one was
// given, otherwise from the first child. Start and End are the running
// min/max of every span added with extension enabled.
type ParentNode[T Child] struct {
	kind     NodeKind
	base     *Record
	children []T
	index    map[string]int

	start, end int64
	hasSpan    bool
}

func newParentNode[T Child](kind NodeKind, base *Record) ParentNode[T] {
	n := ParentNode[T]{kind: kind, base: base}
	if kind.Keyed {
		n.index = make(map[string]int)
	}
	if base != nil {
		n.ExpandSpan(base.Start, base.End)
	}
	return n
}

// Kind returns the node configuration.
func (n *ParentNode[T]) Kind() NodeKind {
	return n.kind
}

// Children returns the children in insertion order.
func (n *ParentNode[T]) Children() []T {
	return n.children
}

// Len returns the number of children.
func (n *ParentNode[T]) Len() int {
	return len(n.children)
}

// Child returns the child stored under key in a keyed node.
func (n *ParentNode[T]) Child(key string) (T, bool) {
	i, ok := n.index[key]
	if !ok {
		var zero T
		return zero, false
	}
	return n.children[i], true
}

// AddChild appends child and widens the span to cover it.
func (n *ParentNode[T]) AddChild(child T) {
	n.add(child, true)
}

// AddChildNoExtend appends child without touching the span.
func (n *ParentNode[T]) AddChildNoExtend(child T) {
	n.add(child, false)
}

// AddKeyedChild appends child under key. A key already present returns a
// *DuplicateKeyError and leaves the node unchanged.
func (n *ParentNode[T]) AddKeyedChild(key string, child T, extendSpan bool) error {
	if n.index == nil {
		n.index = make(map[string]int)
	}
	if _, ok := n.index[key]; ok {
		return &DuplicateKeyError{Parent: n.kind.Feature, Key: key}
	}
	n.index[key] = len(n.children)
	n.add(child, extendSpan)
	return nil
}

func (n *ParentNode[T]) add(child T, extendSpan bool) {
	n.children = append(n.children, child)
	if extendSpan {
		n.ExpandSpan(child.Span())
	}
}

// ExpandSpan widens the node span to cover [start, end].
func (n *ParentNode[T]) ExpandSpan(start, end int64) {
	if !n.hasSpan {
		n.start, n.end, n.hasSpan = start, end, true
		return
	}
	n.start = min(n.start, start)
	n.end = max(n.end, end)
}

// Span returns the aggregated coordinates.
func (n *ParentNode[T]) Span() (start, end int64) {
	return n.start, n.end
}

// Start returns the smallest start covered by the node.
func (n *ParentNode[T]) Start() int64 { return n.start }

// End returns the largest end covered by the node.
func (n *ParentNode[T]) End() int64 { return n.end }

// seed is the record the derived fields and attributes are copied from.
func (n *ParentNode[T]) seed() *Record {
	if n.base != nil {
		return n.base
	}
	if len(n.children) > 0 {
		return n.children[0].ToRecord()
	}
	return nil
}

// Seqname returns the sequence name of the node.
func (n *ParentNode[T]) Seqname() string {
	if s := n.seed(); s != nil {
		return s.Seqname
	}
	return ""
}

// Source returns the source column of the node.
func (n *ParentNode[T]) Source() string {
	if s := n.seed(); s != nil {
		return s.Source
	}
	return ""
}

// Strand returns the strand of the node.
func (n *ParentNode[T]) Strand() Strand {
	if s := n.seed(); s != nil {
		return s.Strand
	}
	return StrandNone
}

// Frame returns the frame column of the node.
func (n *ParentNode[T]) Frame() string {
	if s := n.seed(); s != nil {
		return s.Frame
	}
	return "."
}

// Attr returns an attribute of the node's synthetic record.
func (n *ParentNode[T]) Attr(key string) (string, bool) {
	s := n.seed()
	if s == nil || s.Attributes == nil {
		return "", false
	}
	return s.Attributes.Get(key)
}

// ToRecord builds the flat record representing the node. Attribute keys
// matching the kind's Strip substrings are dropped.
func (n *ParentNode[T]) ToRecord() *Record {
	rec := &Record{
		Feature: n.kind.Feature,
		Start:   n.start,
		End:     n.end,
		Score:   ".",
		Strand:  StrandNone,
		Frame:   ".",
	}

	s := n.seed()
	if s == nil {
		rec.Attributes = NewAttributes()
		return rec
	}

	rec.Seqname = s.Seqname
	rec.Source = s.Source
	rec.Score = s.Score
	rec.Strand = s.Strand
	rec.Frame = s.Frame
	rec.Attributes = s.attrs().Clone()
	rec.Attributes.RemoveMatching(n.kind.Strip...)
	return rec
}

// FormatGTF renders the node line followed by every child, depth first.
func (n *ParentNode[T]) FormatGTF() string {
	lines := make([]string, 0, len(n.children)+1)
	lines = append(lines, n.ToRecord().String())
	for _, c := range n.children {
		lines = append(lines, c.FormatGTF())
	}
	return strings.Join(lines, "\n")
}
