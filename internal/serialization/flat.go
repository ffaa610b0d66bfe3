package serialization

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteFlat writes one value per line using the shortest representation
// that parses back to the identical float64.
func WriteFlat(out io.Writer, values []float64) error {
	bw := bufio.NewWriter(out)
	for _, v := range values {
		if _, err := bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadFlat reads values written by WriteFlat. Blank lines and lines
// starting with '#' are ignored.
func ReadFlat(in io.Reader) ([]float64, error) {
	var values []float64
	sc := bufio.NewScanner(in)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		values = append(values, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return values, nil
}
