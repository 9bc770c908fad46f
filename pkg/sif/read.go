// Package sif reads and writes the tab-separated text formats used by
// pathway analyses: simple interaction format networks, node heat files,
// plain lists and node attribute files.
//
// Network files whose name ends in ".sz" are snappy framed streams;
// everything else is read through a read-only memory map.
package sif

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-sigpath/pkg/logging"
	"github.com/dd0wney/cluso-sigpath/pkg/network"
	"github.com/dd0wney/cluso-sigpath/pkg/sign"
)

const maxLineSize = 1 << 20

// lines calls fn with every non-blank line, trailing whitespace removed,
// and its 1-based line number.
func lines(r io.Reader, fn func(n int, line string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimRight(sc.Text(), " \t\r\n")
		if line == "" {
			continue
		}
		if err := fn(n, line); err != nil {
			return err
		}
	}
	return sc.Err()
}

// ReadNetwork parses "source<TAB>label<TAB>target" lines into an index.
// Edges with an endpoint outside a non-empty restrictTo set are dropped.
func ReadNetwork(r io.Reader, restrictTo network.NodeSet) (*network.Network, error) {
	net := network.New()
	err := lines(r, func(n int, line string) error {
		parts := strings.Split(line, "\t")
		if len(parts) < 3 {
			return &ParseError{Line: n, Cause: fmt.Errorf("%w: want source, label and target, got %d fields", ErrMalformedLine, len(parts))}
		}
		source, label, target := parts[0], parts[1], parts[2]
		if len(restrictTo) > 0 && (!restrictTo.Has(source) || !restrictTo.Has(target)) {
			return nil
		}
		net.Add(source, label, target)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return net, nil
}

// Heats holds a parsed heat file. Order keeps the first-seen file order of
// genes, which is the order sources are searched in.
type Heats struct {
	Order  []string
	Values map[string]float64
	Signs  map[string]sign.Sign // genes from two-field lines have no entry
}

// NewHeats returns an empty heat set.
func NewHeats() *Heats {
	return &Heats{Values: make(map[string]float64), Signs: make(map[string]sign.Sign)}
}

func (h *Heats) set(gene string, heat float64) {
	if _, ok := h.Values[gene]; !ok {
		h.Order = append(h.Order, gene)
	}
	h.Values[gene] = heat
}

// Len returns the number of genes with a heat.
func (h *Heats) Len() int {
	return len(h.Order)
}

// Genes returns genes in file order.
func (h *Heats) Genes() []string {
	return append([]string(nil), h.Order...)
}

// ReadHeats parses "gene<TAB>heat<TAB>sign" lines. Signed genes absent from
// a non-empty networkNodes set are skipped with a warning. Two-field lines
// record a heat without a sign.
func ReadHeats(r io.Reader, networkNodes network.NodeSet, logger logging.Logger) (*Heats, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	heats := NewHeats()
	err := lines(r, func(n int, line string) error {
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			return &ParseError{Line: n, Cause: fmt.Errorf("%w: want gene and heat", ErrMalformedLine)}
		}
		gene := parts[0]

		if len(parts) > 2 && len(networkNodes) > 0 && !networkNodes.Has(gene) {
			logger.Warn("input heat node not in the network, ignored", logging.Gene(gene), logging.Line(n))
			return nil
		}

		heat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return &ParseError{Line: n, Cause: fmt.Errorf("%w: gene %s: %q", ErrInvalidHeat, gene, parts[1])}
		}

		if len(parts) > 2 {
			s, err := parseHeatSign(parts[2])
			if err != nil {
				return &ParseError{Line: n, Cause: fmt.Errorf("gene %s: %w", gene, err)}
			}
			heats.Signs[gene] = s
		}
		heats.set(gene, heat)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return heats, nil
}

func parseHeatSign(s string) (sign.Sign, error) {
	v, err := sign.Parse(s)
	if err != nil {
		return sign.None, fmt.Errorf("%w: %w", ErrInvalidSign, err)
	}
	return v, nil
}

// ReadList returns one item per non-blank line, in file order.
func ReadList(r io.Reader) ([]string, error) {
	var items []string
	err := lines(r, func(_ int, line string) error {
		items = append(items, line)
		return nil
	})
	return items, err
}
