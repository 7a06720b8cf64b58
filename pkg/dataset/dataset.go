/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: dataset.go
Description: Tab-separated dataset I/O for recombination. Reads "x<TAB>y" rows with
line-numbered parse errors, normalizes logical forms through a preprocessor and writes
original plus augmented rows back out.
*/

package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kleascm/recomb/pkg/interfaces"
)

// ErrMalformedRow is matched by ParseError.
var ErrMalformedRow = errors.New("malformed dataset row")

// ParseError names the offending line of a dataset file.
type ParseError struct {
	Path    string
	Line    int
	Columns int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v: want 2 tab-separated columns, got %d", e.Path, e.Line, ErrMalformedRow, e.Columns)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformedRow
}

// Preprocessor normalizes a raw logical form. Nil means identity.
type Preprocessor func(y string) string

// Read parses examples from r. Lines are trimmed and blank lines skipped;
// name is used in error messages.
func Read(r io.Reader, name string, preprocess Preprocessor) ([]interfaces.Example, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var examples []interfaces.Example
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) != 2 {
			return nil, &ParseError{Path: name, Line: lineNo, Columns: len(cols)}
		}
		y := cols[1]
		if preprocess != nil {
			y = preprocess(y)
		}
		examples = append(examples, interfaces.Example{X: cols[0], Y: y})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return examples, nil
}

// ReadFile reads a dataset file.
func ReadFile(path string, preprocess Preprocessor) ([]interfaces.Example, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()
	return Read(file, path, preprocess)
}

// Write writes every example of every set as "x<TAB>y" lines, in order.
func Write(w io.Writer, sets ...[]interfaces.Example) error {
	bw := bufio.NewWriter(w)
	for _, set := range sets {
		for _, ex := range set {
			if _, err := fmt.Fprintf(bw, "%s\t%s\n", ex.X, ex.Y); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// WriteFile creates path (and its directory) and writes sets to it.
func WriteFile(path string, sets ...[]interfaces.Example) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := Write(file, sets...); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}

// Set returns the examples as a membership set.
func Set(examples []interfaces.Example) map[interfaces.Example]struct{} {
	set := make(map[interfaces.Example]struct{}, len(examples))
	for _, ex := range examples {
		set[ex] = struct{}{}
	}
	return set
}
