// Package report renders a training result as a human-readable table.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/mlp/internal/mlp"
)

// Write prints one row per case followed by a summary block.
func Write(w io.Writer, topo mlp.Topology, result *mlp.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "CASE\tINPUT\tEXPECTED\tOUTPUT\tERROR\n")
	for n, c := range result.Cases {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.6g\n",
			n, vector(c.Input), vector(c.Expected), vector(c.Output), c.Error)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	caseErrors := make([]float64, len(result.Cases))
	for n, c := range result.Cases {
		caseErrors[n] = c.Error
	}

	_, err := fmt.Fprintf(w, "\ntopology:       %s\niterations:     %d\naverage error:  %.6g\ntermination:    %s\n",
		topo, result.Iterations, result.AverageError, result.Reason)
	if err != nil {
		return err
	}
	if len(caseErrors) > 0 {
		_, err = fmt.Fprintf(w, "worst case:     %d (error %.6g)\n", floats.MaxIdx(caseErrors), floats.Max(caseErrors))
	}
	return err
}

func vector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'f', 4, 64)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
