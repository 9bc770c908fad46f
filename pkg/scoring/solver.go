package scoring

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"time"

	"github.com/dd0wney/cluso-sigpath/pkg/logging"
	"github.com/dd0wney/cluso-sigpath/pkg/network"
	"github.com/dd0wney/cluso-sigpath/pkg/sif"
)

// ErrSolverFailed is returned when the solver process cannot be run or
// exits unsuccessfully.
var ErrSolverFailed = errors.New("steiner tree solver failed")

// Solver spans a subnetwork over scored nodes.
type Solver interface {
	Solve(ctx context.Context, activities map[string]float64, networkPath string) ([]network.Pair, error)
}

// solutionLine matches solver output lines like "[3] EGFR -- GRB2".
var solutionLine = regexp.MustCompile(`^\[\d+\]\s+(\S+)\s+--\s+(\S+)(\s|$)`)

const stderrTail = 2048

// ProcessSolver runs an external solver script as
// "<Script> --activities <file> --network <path>" and parses its stdout.
type ProcessSolver struct {
	Script  string
	Timeout time.Duration // zero means no timeout beyond ctx
	Logger  logging.Logger
}

// NewProcessSolver creates a solver for the given script.
func NewProcessSolver(script string, timeout time.Duration, logger logging.Logger) *ProcessSolver {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ProcessSolver{Script: script, Timeout: timeout, Logger: logger}
}

// Solve writes the activities to a temporary file, runs the script and
// returns the undirected edges it reports, in output order.
func (s *ProcessSolver) Solve(ctx context.Context, activities map[string]float64, networkPath string) ([]network.Pair, error) {
	tmp, err := os.CreateTemp("", "sigpath-activities-*.tab")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSolverFailed, err)
	}
	defer os.Remove(tmp.Name())

	if err := sif.WriteHeats(tmp, activities); err != nil {
		_ = tmp.Close()
		return nil, fmt.Errorf("%w: write activities: %v", ErrSolverFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSolverFailed, err)
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.Script, "--activities", tmp.Name(), "--network", networkPath)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	s.Logger.Debug("running solver", logging.Path(s.Script), logging.Count(len(activities)))
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, fmt.Errorf("%w: %s: %w: %s", ErrSolverFailed, s.Script, err, tail(stderr.Bytes()))
	}

	return ParseSolution(&stdout)
}

// ParseSolution extracts edge pairs from solver output. Lines that do not
// look like "[n] A -- B" are ignored.
func ParseSolution(r io.Reader) ([]network.Pair, error) {
	var pairs []network.Pair
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		m := solutionLine.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		pairs = append(pairs, network.Pair{Source: m[1], Target: m[2]})
	}
	return pairs, sc.Err()
}

func tail(b []byte) string {
	b = bytes.TrimSpace(b)
	if len(b) > stderrTail {
		b = b[len(b)-stderrTail:]
	}
	return string(b)
}
