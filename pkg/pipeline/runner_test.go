package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-sigpath/pkg/config"
	"github.com/dd0wney/cluso-sigpath/pkg/logging"
	"github.com/dd0wney/cluso-sigpath/pkg/metrics"
	"github.com/dd0wney/cluso-sigpath/pkg/network"
	"github.com/dd0wney/cluso-sigpath/pkg/scoring"
)

const (
	testNetwork = "S1\t-a>\tT1\n" +
		"T1\t-a>\tT2\n" +
		"S2\t-a|\tG\n" +
		"T1\t-a>\tX\n" +
		"T2\t-a>\tT1\n"
	testUp   = "S1\t1.0\t+\nS2\t1.0\t+\nNOPE\t1.0\t+\n"
	testDown = "T2\t1.0\t+\nG\t1.0\t-\n"
)

func writeInputs(t *testing.T) (*config.Config, string) {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	cfg := config.Default()
	cfg.Network = write("pathway.sif", testNetwork)
	cfg.UpHeats = write("upstream.heats", testUp)
	cfg.DownHeats = write("downstream.heats", testDown)
	require.NoError(t, cfg.Validate())
	return cfg, dir
}

func counter(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

type stubSolver struct {
	pairs      []network.Pair
	err        error
	activities map[string]float64
	network    string
}

func (s *stubSolver) Solve(_ context.Context, activities map[string]float64, networkPath string) ([]network.Pair, error) {
	s.activities = activities
	s.network = networkPath
	return s.pairs, s.err
}

func TestRun(t *testing.T) {
	cfg, dir := writeInputs(t)
	cfg.Output.Network = filepath.Join(dir, "out.sif")
	cfg.Output.DOT = filepath.Join(dir, "out.dot")
	cfg.Output.Metrics = filepath.Join(dir, "sigpath.prom")

	var logs bytes.Buffer
	runner := New(cfg, WithLogger(logging.NewJSONLogger(&logs, logging.DebugLevel)))

	report, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 6, report.NetworkNodes)
	assert.Equal(t, 5, report.NetworkEdges)
	assert.Equal(t, []string{"S1", "S2"}, report.Sources, "genes outside the network are dropped")
	assert.Equal(t, 2, report.Targets)
	assert.Equal(t, []string{"T2"}, report.TruePaths)
	assert.Empty(t, report.FalsePaths)
	assert.Nil(t, report.Solution)

	assert.Equal(t, []network.Edge{
		{Source: "S1", Label: "-a>", Target: "T1"},
		{Source: "T1", Label: "-a>", Target: "T2"},
	}, report.Discovered.Edges())
	assert.Equal(t, 3, report.Subnetwork.Len(), "extraction adds T2->T1 among discovered nodes")

	sifOut, err := os.ReadFile(cfg.Output.Network)
	require.NoError(t, err)
	assert.Equal(t, "S1\t-a>\tT1\nT1\t-a>\tT2\nT2\t-a>\tT1\n", string(sifOut))

	dot, err := os.ReadFile(cfg.Output.DOT)
	require.NoError(t, err)
	assert.Contains(t, string(dot), "digraph paths {")

	prom, err := os.ReadFile(cfg.Output.Metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `sigpath_runs_total{status="success"} 1`)
	assert.Contains(t, string(prom), `sigpath_paths_total{kind="true"} 1`)

	assert.Contains(t, logs.String(), report.RunID)
	assert.Contains(t, logs.String(), `"gene":"NOPE"`)
}

func TestRun_ExplicitTargets(t *testing.T) {
	cfg, dir := writeInputs(t)
	cfg.Targets = filepath.Join(dir, "targets.txt")
	require.NoError(t, os.WriteFile(cfg.Targets, []byte("G\n"), 0o600))

	report, err := New(cfg, WithLogger(logging.NewNopLogger())).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Targets)
	assert.Empty(t, report.TruePaths)
	assert.Equal(t, 0, report.Discovered.Len())
}

func TestRun_InvalidTarget(t *testing.T) {
	cfg, dir := writeInputs(t)
	cfg.Targets = filepath.Join(dir, "targets.txt")
	require.NoError(t, os.WriteFile(cfg.Targets, []byte("T2\nbad gene\n"), 0o600))

	_, err := New(cfg, WithLogger(logging.NewNopLogger())).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load targets")
}

func TestRun_NegateInhibitory(t *testing.T) {
	cfg, _ := writeInputs(t)
	cfg.Search.NegateInhibitory = true

	report, err := New(cfg, WithLogger(logging.NewNopLogger())).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"T2", "G"}, report.TruePaths, "S2 -a| G now carries -1 to G")
}

func TestRun_ParallelMatchesSequential(t *testing.T) {
	cfg, _ := writeInputs(t)
	seq, err := New(cfg, WithLogger(logging.NewNopLogger())).Run(context.Background())
	require.NoError(t, err)

	cfg.Search.Workers = 4
	par, err := New(cfg, WithLogger(logging.NewNopLogger())).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, seq.TruePaths, par.TruePaths)
	assert.Equal(t, seq.Discovered.Edges(), par.Discovered.Edges())
	assert.Equal(t, seq.Visits, par.Visits)
}

func TestRun_Solver(t *testing.T) {
	cfg, dir := writeInputs(t)
	cfg.Output.Solution = filepath.Join(dir, "pcst.sif")
	solver := &stubSolver{pairs: []network.Pair{{Source: "T1", Target: "S1"}, {Source: "Q", Target: "R"}}}
	reg := metrics.NewRegistry()

	report, err := New(cfg, WithLogger(logging.NewNopLogger()), WithSolver(solver), WithMetrics(reg)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, cfg.Network, solver.network)
	assert.Equal(t, scoring.LinkerPValue, solver.activities["T1"], "T1 is a linker")
	assert.Contains(t, solver.activities, "S1")
	assert.Contains(t, solver.activities, "G")

	require.NotNil(t, report.Solution)
	assert.Equal(t, []network.Edge{{Source: "S1", Label: "-a>", Target: "T1"}}, report.Solution.Edges(),
		"reversed pair maps onto the directed edge; unknown pairs are dropped")

	out, err := os.ReadFile(cfg.Output.Solution)
	require.NoError(t, err)
	assert.Equal(t, "S1\t-a>\tT1\n", string(out))
	assert.Equal(t, 1.0, counter(t, reg.SolverInvocationsTotal.WithLabelValues(metrics.StatusSuccess)))
}

func TestRun_SolverFailure(t *testing.T) {
	cfg, _ := writeInputs(t)
	boom := errors.New("boom")
	reg := metrics.NewRegistry()

	report, err := New(cfg, WithLogger(logging.NewNopLogger()), WithSolver(&stubSolver{err: boom}), WithMetrics(reg)).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, report)
	assert.Equal(t, 1.0, counter(t, reg.SolverInvocationsTotal.WithLabelValues(metrics.StatusError)))
	assert.Equal(t, 1.0, counter(t, reg.RunsTotal.WithLabelValues(metrics.StatusError)))
}

func TestRun_SolverZeroHeat(t *testing.T) {
	cfg, _ := writeInputs(t)
	require.NoError(t, os.WriteFile(cfg.UpHeats, []byte("S1\t1.0\t+\nS2\t0\t+\n"), 0o600))
	solver := &stubSolver{}
	reg := metrics.NewRegistry()

	report, err := New(cfg, WithLogger(logging.NewNopLogger()), WithSolver(solver), WithMetrics(reg)).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, scoring.ErrNonPositiveHeat)
	assert.Nil(t, report)
	assert.Nil(t, solver.activities, "solver must not run on unscaled heats")
	assert.Equal(t, 1.0, counter(t, reg.RunsTotal.WithLabelValues(metrics.StatusError)))
}

func TestRun_MissingNetwork(t *testing.T) {
	cfg, dir := writeInputs(t)
	cfg.Network = filepath.Join(dir, "absent.sif")
	reg := metrics.NewRegistry()

	_, err := New(cfg, WithLogger(logging.NewNopLogger()), WithMetrics(reg)).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.True(t, strings.HasPrefix(err.Error(), "load network"))
	assert.Equal(t, 1.0, counter(t, reg.RunsTotal.WithLabelValues(metrics.StatusError)))
}

func TestRun_Cancelled(t *testing.T) {
	cfg, _ := writeInputs(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(cfg, WithLogger(logging.NewNopLogger())).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_Restricted(t *testing.T) {
	cfg, dir := writeInputs(t)
	cfg.Restrict = filepath.Join(dir, "universe.txt")
	require.NoError(t, os.WriteFile(cfg.Restrict, []byte("S1\nT1\n"), 0o600))

	report, err := New(cfg, WithLogger(logging.NewNopLogger())).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.NetworkEdges)
	assert.Empty(t, report.TruePaths)
}
