package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/inodb/vibe-gtf/internal/gtf"
)

// inputPath returns the file argument, or "-" for stdin.
func inputPath(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

// openInput opens the GTF named by args. Reading an interactive terminal is
// refused since nothing would ever arrive.
func openInput(args []string) (io.ReadCloser, error) {
	path := inputPath(args)
	if path == "-" && stdinIsTerminal() {
		return nil, fmt.Errorf("no input file and stdin is a terminal: %w", gtf.ErrEmptyInput)
	}
	return gtf.Open(path)
}

func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// displayPath returns the absolute path of a file argument for reports.
func displayPath(path string) string {
	if path == "-" {
		return "stdin"
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// openOutput returns stdout (or the command's writer) or a created file,
// buffered. The returned func flushes and closes.
func openOutput(stdout io.Writer, path string) (*bufio.Writer, func() error, error) {
	if path == "" || path == "-" {
		w := bufio.NewWriter(stdout)
		return w, w.Flush, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	w := bufio.NewWriter(f)
	return w, func() error {
		if err := w.Flush(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}, nil
}
