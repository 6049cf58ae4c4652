package gtf

import (
	"fmt"
	"strconv"
	"strings"
)

// Strand is the strand column of a GTF line.
type Strand byte

// Strand values. StrandAny is the zero value and is only used by filters.
const (
	StrandAny     Strand = 0
	StrandForward Strand = '+'
	StrandReverse Strand = '-'
	StrandNone    Strand = '.'
)

// ParseStrand converts a strand column to a Strand.
func ParseStrand(s string) (Strand, error) {
	switch s {
	case "+":
		return StrandForward, nil
	case "-":
		return StrandReverse, nil
	case ".":
		return StrandNone, nil
	}
	return StrandAny, fmt.Errorf("invalid strand %q", s)
}

func (s Strand) String() string {
	if s == StrandAny {
		return ""
	}
	return string(rune(s))
}

// Record is one GTF line.
type Record struct {
	Seqname    string
	Source     string
	Feature    string
	Start      int64 // 1-based
	End        int64 // 1-based, inclusive
	Score      string
	Strand     Strand
	Frame      string
	Attributes *Attributes
}

const numFields = 9

// ParseRecord parses a single GTF line. Comment lines are not recognised;
// callers skip them before calling.
func ParseRecord(line string) (*Record, error) {
	line = strings.TrimRight(line, "\r\n")
	fields := strings.Split(line, "\t")
	if len(fields) != numFields {
		return nil, &FormatError{Message: fmt.Sprintf("expected %d fields, got %d", numFields, len(fields))}
	}

	start, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return nil, &FormatError{Message: fmt.Sprintf("invalid start: %s", fields[3])}
	}

	end, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return nil, &FormatError{Message: fmt.Sprintf("invalid end: %s", fields[4])}
	}

	strand, err := ParseStrand(fields[6])
	if err != nil {
		return nil, &FormatError{Message: err.Error()}
	}

	attrs, err := ParseAttributes(fields[8])
	if err != nil {
		return nil, err
	}

	return &Record{
		Seqname:    fields[0],
		Source:     fields[1],
		Feature:    fields[2],
		Start:      start,
		End:        end,
		Score:      fields[5],
		Strand:     strand,
		Frame:      fields[7],
		Attributes: attrs,
	}, nil
}

// String returns the canonical nine-column line, without a newline.
func (r *Record) String() string {
	return strings.Join([]string{
		r.Seqname,
		r.Source,
		r.Feature,
		strconv.FormatInt(r.Start, 10),
		strconv.FormatInt(r.End, 10),
		r.Score,
		r.Strand.String(),
		r.Frame,
		r.attrs().String(),
	}, "\t")
}

// Len returns |End - Start|.
func (r *Record) Len() int64 {
	if r.End < r.Start {
		return r.Start - r.End
	}
	return r.End - r.Start
}

// OrderSpan swaps inverted coordinates so that Start <= End.
func (r *Record) OrderSpan() {
	if r.Start > r.End {
		r.Start, r.End = r.End, r.Start
	}
}

// Get returns the attribute value for key, or an error wrapping
// ErrKeyNotFound.
func (r *Record) Get(key string) (string, error) {
	v, ok := r.attrs().Get(key)
	if !ok {
		return "", keyNotFound(key)
	}
	return v, nil
}

// Set assigns an attribute.
func (r *Record) Set(key, value string) {
	r.attrs().Set(key, value)
}

// Has reports whether the attribute is present.
func (r *Record) Has(key string) bool {
	return r.attrs().Has(key)
}

// Delete removes an attribute, or returns an error wrapping ErrKeyNotFound.
func (r *Record) Delete(key string) error {
	if !r.attrs().Delete(key) {
		return keyNotFound(key)
	}
	return nil
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	c := *r
	c.Attributes = r.attrs().Clone()
	return &c
}

// Span implements Child.
func (r *Record) Span() (start, end int64) {
	return r.Start, r.End
}

// ToRecord implements Child. A leaf is its own record.
func (r *Record) ToRecord() *Record {
	return r
}

// FormatGTF implements Child.
func (r *Record) FormatGTF() string {
	return r.String()
}

func (r *Record) attrs() *Attributes {
	if r.Attributes == nil {
		r.Attributes = NewAttributes()
	}
	return r.Attributes
}
