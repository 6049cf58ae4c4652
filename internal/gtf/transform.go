package gtf

import (
	"bufio"
	"fmt"
	"io"
)

// Transform copies r to w, passing comment lines through unchanged and
// writing each record in canonical form after fn has edited it in place.
func Transform(r io.Reader, w io.Writer, fn func(*Record) error) error {
	bw := bufio.NewWriter(w)
	var writeErr error

	reader := NewReader(r)
	reader.SetCommentHandler(func(line string) {
		if writeErr == nil {
			_, writeErr = fmt.Fprintln(bw, line)
		}
	})

	for rec, err := range reader.Records() {
		if err != nil {
			return err
		}
		if writeErr != nil {
			return fmt.Errorf("write GTF: %w", writeErr)
		}
		if err := fn(rec); err != nil {
			return fmt.Errorf("line %d: %w", reader.LineNumber(), err)
		}
		if _, err := fmt.Fprintln(bw, rec.String()); err != nil {
			return fmt.Errorf("write GTF: %w", err)
		}
	}
	if writeErr != nil {
		return fmt.Errorf("write GTF: %w", writeErr)
	}

	return bw.Flush()
}
