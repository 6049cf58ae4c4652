package gtf

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

type readCloser struct {
	io.Reader
	close func() error
}

func (rc readCloser) Close() error {
	return rc.close()
}

// Open opens a GTF file for reading. "-" reads stdin. Gzipped input is
// detected from the magic bytes, not the file name.
func Open(path string) (io.ReadCloser, error) {
	var f *os.File
	if path == "-" {
		f = os.Stdin
	} else {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open GTF file: %w", err)
		}
	}

	closeFile := func() error {
		if f == os.Stdin {
			return nil
		}
		return f.Close()
	}

	br := bufio.NewReader(f)
	magic, err := br.Peek(2)
	if err != nil && err != io.EOF {
		closeFile()
		return nil, fmt.Errorf("read GTF header: %w", err)
	}

	// Check for gzip magic number (0x1f, 0x8b)
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			closeFile()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		return readCloser{
			Reader: gz,
			close: func() error {
				gzErr := gz.Close()
				if err := closeFile(); err != nil {
					return err
				}
				return gzErr
			},
		}, nil
	}

	return readCloser{Reader: br, close: closeFile}, nil
}
