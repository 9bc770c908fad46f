// Package expression parses expression matrices and turns them into
// transcription factor activity scores and normalised heats.
package expression

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-sigpath/pkg/network"
	"github.com/dd0wney/cluso-sigpath/pkg/sif"
)

var (
	// ErrRaggedRow is returned when a row has more values than the header
	// has column IDs.
	ErrRaggedRow = errors.New("row has more values than header columns")
	// ErrZeroTotal is returned when normalising values whose absolute sum
	// is zero.
	ErrZeroTotal = errors.New("absolute values sum to zero")
)

// Matrix is a two-level index: outer ID -> inner ID -> value. By default
// the outer key is the sample (column) and the inner key the gene (row).
type Matrix map[string]map[string]float64

func (m Matrix) set(outer, inner string, v float64) {
	row, ok := m[outer]
	if !ok {
		row = make(map[string]float64)
		m[outer] = row
	}
	row[inner] = v
}

// MatrixOptions controls ParseMatrix.
type MatrixOptions struct {
	// Restrict keeps only these column IDs when non-empty.
	Restrict network.NodeSet
	// Threshold drops values with |v| below it.
	Threshold float64
	// Transpose indexes by row then column.
	Transpose bool
}

// ParseMatrix reads a tab-separated matrix whose first line holds the column
// IDs (its first cell is ignored) and whose other lines start with a row ID.
// Cells that are not numbers are skipped.
func ParseMatrix(r io.Reader, opts MatrixOptions) (Matrix, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16<<20)

	data := make(Matrix)
	var columns []string
	header := true
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimRight(sc.Text(), " \t\r\n")
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		rowID, vals := parts[0], parts[1:]
		if header {
			columns = vals
			header = false
			continue
		}
		if len(vals) > len(columns) {
			return nil, &sif.ParseError{Line: n, Cause: fmt.Errorf("%w: %d > %d", ErrRaggedRow, len(vals), len(columns))}
		}

		for i, cell := range vals {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				continue
			}
			column := columns[i]
			if len(opts.Restrict) > 0 && !opts.Restrict.Has(column) {
				continue
			}
			if math.Abs(v) < opts.Threshold {
				continue
			}
			if opts.Transpose {
				data.set(rowID, column, v)
			} else {
				data.set(column, rowID, v)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return data, nil
}

// Transpose returns the matrix indexed the other way round.
func (m Matrix) Transpose() Matrix {
	out := make(Matrix)
	for outer, row := range m {
		for inner, v := range row {
			out.set(inner, outer, v)
		}
	}
	return out
}
