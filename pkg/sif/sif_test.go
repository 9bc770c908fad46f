package sif

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-sigpath/pkg/logging"
	"github.com/dd0wney/cluso-sigpath/pkg/network"
	"github.com/dd0wney/cluso-sigpath/pkg/sign"
)

const pathway = "S1\t-a>\tT1\n" +
	"S1\t-a>\tT1\n" +
	"\n" +
	"T1\t-t|\tT2  \n" +
	"S2\tcomponent>\tT3\r\n"

func TestReadNetwork(t *testing.T) {
	net, err := ReadNetwork(strings.NewReader(pathway), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, net.Len(), "duplicate lines collapse")
	assert.Equal(t, []string{"S1", "T1", "S2"}, net.Sources())
	assert.True(t, net.Has("T1", "-t|", "T2"), "trailing whitespace trimmed")
	assert.True(t, net.Has("S2", "component>", "T3"))
}

func TestReadNetwork_Restricted(t *testing.T) {
	net, err := ReadNetwork(strings.NewReader(pathway), network.NewNodeSet("S1", "T1", "T2"))
	require.NoError(t, err)
	assert.Equal(t, 2, net.Len())
	assert.False(t, net.HasSource("S2"))

	all, err := ReadNetwork(strings.NewReader(pathway), network.NewNodeSet())
	require.NoError(t, err)
	assert.Equal(t, 3, all.Len(), "empty restriction set means no restriction")
}

func TestReadNetwork_Malformed(t *testing.T) {
	_, err := ReadNetwork(strings.NewReader("A\t-a>\tB\nA\tB\n"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedLine)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Line)
	assert.Equal(t, "line 2: ", pe.Error()[:len("line 2: ")])
}

func TestReadHeats(t *testing.T) {
	input := "EGFR\t2.5\t+\n" +
		"ghost\t1.0\t+\n" +
		"TP53\t-1.5\t-\n" +
		"MYC\t0.3\n" +
		"EGFR\t3.0\t+\n"

	var logs bytes.Buffer
	logger := logging.NewJSONLogger(&logs, logging.WarnLevel)
	heats, err := ReadHeats(strings.NewReader(input), network.NewNodeSet("EGFR", "TP53", "MYC"), logger)
	require.NoError(t, err)

	assert.Equal(t, []string{"EGFR", "TP53", "MYC"}, heats.Genes())
	assert.Equal(t, 3, heats.Len())
	assert.Equal(t, 3.0, heats.Values["EGFR"], "later lines overwrite the value but keep the position")
	assert.Equal(t, -1.5, heats.Values["TP53"])
	assert.Equal(t, sign.Positive, heats.Signs["EGFR"])
	assert.Equal(t, sign.Negative, heats.Signs["TP53"])
	_, signed := heats.Signs["MYC"]
	assert.False(t, signed)

	assert.Contains(t, logs.String(), `"gene":"ghost"`)
	assert.Contains(t, logs.String(), "not in the network")
}

func TestReadHeats_NoNetworkFilter(t *testing.T) {
	heats, err := ReadHeats(strings.NewReader("ghost\t1\t+\n"), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"ghost"}, heats.Genes())
}

func TestReadHeats_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
		line  int
	}{
		{"non numeric heat", "A\t1\t+\nB\thot\t+\n", ErrInvalidHeat, 2},
		{"bad sign", "A\t1\t*\n", ErrInvalidSign, 1},
		{"single field", "\nA\n", ErrMalformedLine, 2},
		{"two field bad heat", "A\tx\n", ErrInvalidHeat, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadHeats(strings.NewReader(tt.input), nil, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.line, pe.Line)
		})
	}
}

func TestReadHeats_SignErrorNamesValue(t *testing.T) {
	_, err := ReadHeats(strings.NewReader("EGFR\t2.5\t+1\n"), nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSign)
	assert.Contains(t, err.Error(), "gene EGFR")
	assert.Contains(t, err.Error(), `"+1"`)
}

func TestReadList(t *testing.T) {
	items, err := ReadList(strings.NewReader("B\n\nA  \nC\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C"}, items)
}

func TestWriteNetwork_RoundTrip(t *testing.T) {
	net, err := ReadNetwork(strings.NewReader(pathway), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteNetwork(&buf, net))
	assert.Equal(t, "S1\t-a>\tT1\nT1\t-t|\tT2\nS2\tcomponent>\tT3\n", buf.String())

	again, err := ReadNetwork(&buf, nil)
	require.NoError(t, err)
	assert.Equal(t, net.Edges(), again.Edges())
}

func TestWriteNodeAttributes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteNodeAttributes(&buf, "heat", map[string]float64{"B": 0.5, "A": 2}))
	assert.Equal(t, "heat\nA = 2\nB = 0.5\n", buf.String())
}

func TestWriteHeats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHeats(&buf, map[string]float64{"TP53": 1e-10, "EGFR": 0.25}))
	assert.Equal(t, "EGFR\t0.25\nTP53\t1e-10\n", buf.String())
}

const snappyStreamID = "\xff\x06\x00\x00sNaPpY"

func TestFiles_PlainAndCompressed(t *testing.T) {
	src, err := ReadNetwork(strings.NewReader(pathway), nil)
	require.NoError(t, err)

	for _, name := range []string{"net.sif", "net.sif.sz"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, CreateNetworkFile(path, src))

			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			if Compressed(path) {
				assert.True(t, strings.HasPrefix(string(raw), snappyStreamID), "file should start with the snappy stream identifier")
			} else {
				assert.Contains(t, string(raw), "S1\t-a>\tT1")
			}

			got, err := OpenNetwork(path, nil)
			require.NoError(t, err)
			assert.Equal(t, src.Edges(), got.Edges())
		})
	}
}

func TestFiles_CompressedLargeNetwork(t *testing.T) {
	var edges []network.Edge
	for i := 0; i < 2000; i++ {
		edges = append(edges, network.Edge{Source: "EGFR", Label: "-a>", Target: fmt.Sprintf("GENE%04d", i)})
	}
	path := filepath.Join(t.TempDir(), "large.sif.sz")
	require.NoError(t, CreateEdgesFile(path, edges))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), snappyStreamID))
	assert.NotContains(t, string(raw), "EGFR\t-a>\tGENE1999", "repetitive payload should be compressed")

	var plain bytes.Buffer
	require.NoError(t, WriteEdges(&plain, edges))
	assert.Less(t, len(raw), plain.Len())

	net, err := OpenNetwork(path, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, edges, net.Edges())
}

func TestCreateEdgesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edges.sif")
	edges := []network.Edge{{Source: "A", Label: "-a>", Target: "B"}}
	require.NoError(t, CreateEdgesFile(path, edges))

	net, err := OpenNetwork(path, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, edges, net.Edges())
}

func TestOpenHeatsAndLists(t *testing.T) {
	dir := t.TempDir()
	heatPath := filepath.Join(dir, "up.heats")
	listPath := filepath.Join(dir, "targets.txt")
	require.NoError(t, os.WriteFile(heatPath, []byte("A\t1\t+\nB\tx\t-\n"), 0o600))
	require.NoError(t, os.WriteFile(listPath, []byte("T1\nT2\n"), 0o600))

	_, err := OpenHeats(heatPath, nil, logging.NewNopLogger())
	require.Error(t, err)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, heatPath, pe.Path)
	assert.Contains(t, err.Error(), heatPath+":2:")

	set, err := OpenNodeSet(listPath)
	require.NoError(t, err)
	assert.True(t, set.Has("T1"))
	assert.True(t, set.Has("T2"))
}

func TestOpenNetwork_Missing(t *testing.T) {
	_, err := OpenNetwork(filepath.Join(t.TempDir(), "absent.sif"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = OpenNetwork(filepath.Join(t.TempDir(), "absent.sif.sz"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
