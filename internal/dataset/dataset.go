// Package dataset reads training cases from plain-text files.
//
// Each non-blank line holds one case: the input values followed by the
// expected output values, separated by whitespace or commas. Lines starting
// with '#' are comments.
//
//	# xor
//	0 0   0
//	0 1   1
//	1 0   1
//	1 1   0
//
// Case order in the file is preserved; training depends on it.
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/mlp/internal/mlp"
)

// Common errors.
var (
	ErrMalformed     = errors.New("malformed training case")
	ErrCountMismatch = errors.New("training case count mismatch")
)

// ParseError reports the line a malformed case was found on.
type ParseError struct {
	Line int
	Msg  string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Unwrap returns ErrMalformed.
func (e *ParseError) Unwrap() error {
	return ErrMalformed
}

// Load reads cases for topo from a file.
func Load(path string, topo mlp.Topology) ([]mlp.TrainingCase, error) {
	//nolint:gosec // G304: dataset path comes from the config file
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	cases, err := Read(f, topo)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cases, nil
}

// Read parses cases for topo from r.
func Read(r io.Reader, topo mlp.Topology) ([]mlp.TrainingCase, error) {
	width := topo.Input + topo.Output
	var cases []mlp.TrainingCase

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(fields) != width {
			return nil, &ParseError{
				Line: line,
				Msg:  fmt.Sprintf("got %d values, want %d inputs + %d outputs", len(fields), topo.Input, topo.Output),
			}
		}

		values := make([]float64, width)
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &ParseError{Line: line, Msg: fmt.Sprintf("value %d: %q is not a number", i+1, f)}
			}
			values[i] = v
		}

		cases = append(cases, mlp.TrainingCase{
			Input:    values[:topo.Input:topo.Input],
			Expected: values[topo.Input:],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	return cases, nil
}

// CheckCount verifies the number of cases matches the declared count.
func CheckCount(cases []mlp.TrainingCase, want int) error {
	if len(cases) != want {
		return fmt.Errorf("%w: file has %d cases, config declares %d", ErrCountMismatch, len(cases), want)
	}
	return nil
}
