// Package pipeline runs one end-to-end discovery: load the network and
// heats, unify gene states, search for sign-consistent paths, extract the
// connected subnetwork and write the requested outputs.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-sigpath/pkg/config"
	"github.com/dd0wney/cluso-sigpath/pkg/logging"
	"github.com/dd0wney/cluso-sigpath/pkg/metrics"
	"github.com/dd0wney/cluso-sigpath/pkg/network"
	"github.com/dd0wney/cluso-sigpath/pkg/pathfind"
	"github.com/dd0wney/cluso-sigpath/pkg/scoring"
	"github.com/dd0wney/cluso-sigpath/pkg/sif"
	"github.com/dd0wney/cluso-sigpath/pkg/state"
	"github.com/dd0wney/cluso-sigpath/pkg/subnetwork"
	"github.com/dd0wney/cluso-sigpath/pkg/validation"
)

// DOTGraphName is the graph ID used for DOT output.
const DOTGraphName = "paths"

// Report summarises a finished run.
type Report struct {
	RunID string

	NetworkNodes int
	NetworkEdges int
	Sources      []string // upstream genes searched from, in file order
	Targets      int

	TruePaths  []string
	FalsePaths []string
	Visits     int

	// Discovered holds exactly the edges committed by the search.
	Discovered *network.Network
	// Subnetwork is every network edge among the discovered nodes.
	Subnetwork *network.Network
	// Solution is the solver's tree mapped onto the network, nil when no
	// solver ran.
	Solution *network.Network

	Duration time.Duration
}

// Runner executes runs for one configuration.
type Runner struct {
	cfg       *config.Config
	logger    logging.Logger
	metrics   *metrics.Registry
	solver    scoring.Solver
	extractor *subnetwork.Extractor
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger. The default is logging.DefaultLogger().
func WithLogger(l logging.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithMetrics sets the registry runs are recorded in.
func WithMetrics(m *metrics.Registry) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithSolver overrides the solver built from the solver config section.
func WithSolver(s scoring.Solver) Option {
	return func(r *Runner) { r.solver = s }
}

// WithConnectivity overrides the connectivity check used for extraction.
func WithConnectivity(c subnetwork.Connectivity) Option {
	return func(r *Runner) { r.extractor = subnetwork.NewExtractor(c) }
}

// New creates a Runner. cfg must already be validated.
func New(cfg *config.Config, opts ...Option) *Runner {
	r := &Runner{cfg: cfg}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.DefaultLogger()
	}
	if r.metrics == nil {
		r.metrics = metrics.NewRegistry()
	}
	if r.extractor == nil {
		r.extractor = subnetwork.NewExtractor(nil)
	}
	if r.solver == nil && cfg.Solver.Script != "" {
		r.solver = scoring.NewProcessSolver(cfg.Solver.Script, cfg.Solver.Timeout, r.logger.With(logging.Component("solver")))
	}
	return r
}

// Metrics returns the registry the runner records into.
func (r *Runner) Metrics() *metrics.Registry {
	return r.metrics
}

// Run performs one discovery run.
func (r *Runner) Run(ctx context.Context) (report *Report, err error) {
	start := time.Now()
	report = &Report{RunID: uuid.NewString()}
	logger := r.logger.With(logging.RunID(report.RunID))
	op := logging.StartTimer(logger, "discovery run", logging.Path(r.cfg.Network))

	defer func() {
		report.Duration = time.Since(start)
		status := metrics.StatusSuccess
		if err != nil {
			status = metrics.StatusError
			op.EndError(err)
		} else {
			op.End(logging.Count(len(report.TruePaths) + len(report.FalsePaths)))
		}
		r.metrics.RecordRun(status, report.Duration)
		if path := r.cfg.Output.Metrics; path != "" {
			if werr := r.metrics.WriteTextfile(path); werr != nil {
				logger.Error("failed to write metrics", logging.Error(werr))
				err = errors.Join(err, werr)
			}
		}
		if err != nil {
			report = nil
		}
	}()

	in, err := r.load(logger)
	if err != nil {
		return report, err
	}
	report.NetworkNodes = len(in.net.Nodes())
	report.NetworkEdges = in.net.Len()
	report.Sources = in.up.Genes()
	report.Targets = len(in.targets)
	r.metrics.RecordNetwork(report.NetworkNodes, report.NetworkEdges)

	if err := ctx.Err(); err != nil {
		return report, err
	}

	states := state.Unify(in.up.Signs, in.down.Signs)
	result, err := pathfind.Discover(in.net, report.Sources, in.targets, states.Combined, pathfind.Options{
		MaxDepth:         r.cfg.Search.MaxDepth,
		Workers:          r.cfg.Search.Workers,
		NegateInhibitory: r.cfg.Search.NegateInhibitory,
	})
	if err != nil {
		return report, fmt.Errorf("discover paths: %w", err)
	}
	report.TruePaths = result.TruePaths
	report.FalsePaths = result.FalsePaths
	report.Visits = result.Visits
	report.Discovered = result.Discovered.Network()
	r.metrics.RecordDiscovery(len(result.TruePaths), len(result.FalsePaths), result.Discovered.Len(), result.Visits)

	report.Subnetwork = r.extractor.Subnetwork(in.net, result.Discovered.Nodes())
	logger.Info("paths discovered",
		logging.Int("true_paths", len(report.TruePaths)),
		logging.Int("false_paths", len(report.FalsePaths)),
		logging.Edges(report.Subnetwork.Len()),
		logging.Int("visits", report.Visits),
	)

	if r.solver != nil {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Solution, err = r.solve(ctx, logger, in, report.Subnetwork)
		if err != nil {
			return report, err
		}
	}

	if err := r.writeOutputs(report); err != nil {
		return report, err
	}
	return report, nil
}

type inputs struct {
	net     *network.Network
	up      *sif.Heats
	down    *sif.Heats
	targets network.NodeSet
}

func (r *Runner) load(logger logging.Logger) (*inputs, error) {
	var restrict network.NodeSet
	if r.cfg.Restrict != "" {
		var err error
		if restrict, err = sif.OpenNodeSet(r.cfg.Restrict); err != nil {
			return nil, fmt.Errorf("load restriction list: %w", err)
		}
	}

	net, err := sif.OpenNetwork(r.cfg.Network, restrict)
	if err != nil {
		return nil, fmt.Errorf("load network: %w", err)
	}
	nodes := net.Nodes()
	logger.Info("network loaded", logging.Path(r.cfg.Network), logging.Nodes(len(nodes)), logging.Edges(net.Len()))

	in := &inputs{net: net}
	if in.up, err = sif.OpenHeats(r.cfg.UpHeats, nodes, logger); err != nil {
		return nil, fmt.Errorf("load upstream heats: %w", err)
	}
	if r.cfg.DownHeats != "" {
		if in.down, err = sif.OpenHeats(r.cfg.DownHeats, nodes, logger); err != nil {
			return nil, fmt.Errorf("load downstream heats: %w", err)
		}
	} else {
		in.down = sif.NewHeats()
	}

	if r.cfg.Targets != "" {
		items, err := sif.OpenList(r.cfg.Targets)
		if err != nil {
			return nil, fmt.Errorf("load targets: %w", err)
		}
		for _, item := range items {
			if err := validation.GeneName(item); err != nil {
				return nil, fmt.Errorf("load targets: %w", err)
			}
		}
		in.targets = network.NewNodeSet(items...)
	} else {
		in.targets = network.NewNodeSet(in.down.Genes()...)
	}

	logger.Debug("inputs loaded",
		logging.Int("upstream", in.up.Len()),
		logging.Int("downstream", in.down.Len()),
		logging.Int("targets", len(in.targets)),
	)
	return in, nil
}

func (r *Runner) solve(ctx context.Context, logger logging.Logger, in *inputs, sub *network.Network) (*network.Network, error) {
	var linkers []string
	for _, node := range sub.OrderedNodes() {
		_, up := in.up.Values[node]
		_, down := in.down.Values[node]
		if !up && !down {
			linkers = append(linkers, node)
		}
	}
	activities, err := scoring.Activities(in.up.Values, in.down.Values, linkers)
	if err != nil {
		return nil, fmt.Errorf("scoring activities: %w", err)
	}

	start := time.Now()
	pairs, err := r.solver.Solve(ctx, activities, r.cfg.Network)
	if err != nil {
		r.metrics.RecordSolver(metrics.StatusError, time.Since(start))
		return nil, err
	}
	r.metrics.RecordSolver(metrics.StatusSuccess, time.Since(start))

	solution := subnetwork.MapEdgesToNetwork(pairs, in.net)
	logger.Info("solver finished", logging.Int("linkers", len(linkers)), logging.Edges(solution.Len()))
	return solution, nil
}

func (r *Runner) writeOutputs(report *Report) error {
	out := r.cfg.Output
	if out.Network != "" {
		if err := sif.CreateNetworkFile(out.Network, report.Subnetwork); err != nil {
			return err
		}
	}
	if out.Solution != "" && report.Solution != nil {
		if err := sif.CreateNetworkFile(out.Solution, report.Solution); err != nil {
			return err
		}
	}
	if out.DOT != "" {
		data, err := subnetwork.ToGraph(report.Subnetwork, true).MarshalDOT(DOTGraphName)
		if err != nil {
			return fmt.Errorf("encode dot: %w", err)
		}
		if err := os.WriteFile(out.DOT, data, 0o644); err != nil {
			return fmt.Errorf("write dot: %w", err)
		}
	}
	return nil
}
