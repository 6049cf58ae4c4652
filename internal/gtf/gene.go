package gtf

// Default attribute keys used to group leaf records.
const (
	GeneIDKey       = "gene_id"
	TranscriptIDKey = "transcript_id"
)

// Transcript groups leaf records (exons, CDS, UTRs...) in insertion order.
type Transcript struct {
	ParentNode[*Record]
}

// NewTranscript creates an empty transcript. base may be nil; when given it
// seeds the derived columns and attributes of the transcript line.
func NewTranscript(base *Record) *Transcript {
	return &Transcript{ParentNode: newParentNode[*Record](TranscriptKind, base)}
}

// ID returns the transcript_id attribute.
func (t *Transcript) ID() string {
	id, _ := t.Attr(TranscriptIDKey)
	return id
}

// GeneID returns the gene_id attribute.
func (t *Transcript) GeneID() string {
	id, _ := t.Attr(GeneIDKey)
	return id
}

// Exons returns every leaf record of the transcript. No filtering by feature
// is applied here.
func (t *Transcript) Exons() []*Record {
	return t.Children()
}

// Gene groups transcripts keyed by transcript id.
type Gene struct {
	ParentNode[*Transcript]
}

// NewGene creates an empty gene. base may be nil.
func NewGene(base *Record) *Gene {
	return &Gene{ParentNode: newParentNode[*Transcript](GeneKind, base)}
}

// ID returns the gene_id attribute.
func (g *Gene) ID() string {
	id, _ := g.Attr(GeneIDKey)
	return id
}

// AddTranscript attaches t under its transcript id and widens the gene span.
// A repeated id returns a *DuplicateKeyError.
func (g *Gene) AddTranscript(t *Transcript) error {
	return g.AddKeyedChild(t.ID(), t, true)
}

// MergeTranscript attaches t without touching the gene span and returns the
// transcript now holding that id. When the id is already present, the leaves
// of t are appended to the existing transcript, which is returned instead.
func (g *Gene) MergeTranscript(t *Transcript) *Transcript {
	existing, ok := g.Child(t.ID())
	if !ok {
		// The key is absent, so this cannot fail.
		_ = g.AddKeyedChild(t.ID(), t, false)
		return t
	}
	for _, r := range t.Children() {
		existing.AddChildNoExtend(r)
	}
	return existing
}

// Transcripts returns the transcripts in insertion order.
func (g *Gene) Transcripts() []*Transcript {
	return g.Children()
}

// Transcript returns the transcript with the given id.
func (g *Gene) Transcript(id string) (*Transcript, bool) {
	return g.Child(id)
}

// Exons returns the leaves of every transcript, in insertion order.
func (g *Gene) Exons() []*Record {
	var exons []*Record
	for _, t := range g.Children() {
		exons = append(exons, t.Exons()...)
	}
	return exons
}
