package sif

import (
	"bufio"
	"io"
	"sort"
	"strconv"

	"github.com/dd0wney/cluso-sigpath/pkg/network"
)

// WriteNetwork writes every edge of net in its deterministic order.
func WriteNetwork(w io.Writer, net *network.Network) error {
	return WriteEdges(w, net.Edges())
}

// WriteEdges writes "source<TAB>label<TAB>target" lines.
func WriteEdges(w io.Writer, edges []network.Edge) error {
	bw := bufio.NewWriter(w)
	for _, e := range edges {
		if _, err := bw.WriteString(e.Source + "\t" + e.Label + "\t" + e.Target + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteNodeAttributes writes a node attribute file: the attribute name on
// the first line, then "key = value" lines in sorted key order.
func WriteNodeAttributes(w io.Writer, attr string, values map[string]float64) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(attr + "\n"); err != nil {
		return err
	}
	for _, k := range sortedKeys(values) {
		if _, err := bw.WriteString(k + " = " + formatFloat(values[k]) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteHeats writes "key<TAB>value" lines in sorted key order.
func WriteHeats(w io.Writer, values map[string]float64) error {
	bw := bufio.NewWriter(w)
	for _, k := range sortedKeys(values) {
		if _, err := bw.WriteString(k + "\t" + formatFloat(values[k]) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
