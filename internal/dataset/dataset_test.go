package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/mlp/internal/mlp"
)

var xorTopo = mlp.Topology{Input: 2, Hidden1: 2, Hidden2: 2, Output: 1}

func TestReadXOR(t *testing.T) {
	src := `# xor truth table
0 0   0
0,1,1

1	0	1
1, 1, 0
`
	cases, err := Read(strings.NewReader(src), xorTopo)
	require.NoError(t, err)
	require.Len(t, cases, 4)

	assert.Equal(t, []float64{0, 1}, cases[1].Input)
	assert.Equal(t, []float64{1}, cases[1].Expected)
	assert.Equal(t, []float64{1, 1}, cases[3].Input)
	assert.Equal(t, []float64{0}, cases[3].Expected)
	require.NoError(t, CheckCount(cases, 4))
}

func TestReadInputSliceIsCapped(t *testing.T) {
	cases, err := Read(strings.NewReader("0.5 0.25 1\n"), xorTopo)
	require.NoError(t, err)
	in := cases[0].Input
	assert.Equal(t, 2, cap(in))

	// Appending to the input must not clobber the expected values.
	_ = append(in, 99)
	assert.Equal(t, []float64{1}, cases[0].Expected)
}

func TestReadErrorsCarryLineNumbers(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"too few values", "0 0 0\n0 1\n", 2},
		{"too many values", "# c\n\n0 0 0 0\n", 3},
		{"not a number", "0 0 0\n1 x 1\n", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.src), xorTopo)
			require.ErrorIs(t, err, ErrMalformed)
			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.line, perr.Line)
		})
	}
}

func TestCheckCount(t *testing.T) {
	err := CheckCount(make([]mlp.TrainingCase, 3), 4)
	assert.ErrorIs(t, err, ErrCountMismatch)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 2 3\n"), 0o600))

	cases, err := Load(path, xorTopo)
	require.NoError(t, err)
	require.Len(t, cases, 1)
	require.NoError(t, cases[0].Check(xorTopo))

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"), xorTopo)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
