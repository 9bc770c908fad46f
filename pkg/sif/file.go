package sif

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"
	"golang.org/x/exp/mmap"

	"github.com/dd0wney/cluso-sigpath/pkg/logging"
	"github.com/dd0wney/cluso-sigpath/pkg/network"
)

// CompressedSuffix marks snappy framed files.
const CompressedSuffix = ".sz"

// Compressed reports whether path names a snappy framed file.
func Compressed(path string) bool {
	return strings.HasSuffix(path, CompressedSuffix)
}

// open returns a reader over the decoded contents of path.
func open(path string) (io.Reader, io.Closer, error) {
	if Compressed(path) {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return snappy.NewReader(bufio.NewReader(f)), f, nil
	}

	m, err := mmap.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return io.NewSectionReader(m, 0, int64(m.Len())), m, nil
}

// OpenNetwork reads the network file at path.
func OpenNetwork(path string, restrictTo network.NodeSet) (*network.Network, error) {
	r, c, err := open(path)
	if err != nil {
		return nil, fmt.Errorf("open network: %w", err)
	}
	defer c.Close()

	net, err := ReadNetwork(r, restrictTo)
	if err != nil {
		return nil, withPath(err, path)
	}
	return net, nil
}

// OpenHeats reads the heat file at path.
func OpenHeats(path string, networkNodes network.NodeSet, logger logging.Logger) (*Heats, error) {
	r, c, err := open(path)
	if err != nil {
		return nil, fmt.Errorf("open heats: %w", err)
	}
	defer c.Close()

	if logger != nil {
		logger = logger.With(logging.Path(path))
	}
	heats, err := ReadHeats(r, networkNodes, logger)
	if err != nil {
		return nil, withPath(err, path)
	}
	return heats, nil
}

// OpenList reads the list file at path.
func OpenList(path string) ([]string, error) {
	r, c, err := open(path)
	if err != nil {
		return nil, fmt.Errorf("open list: %w", err)
	}
	defer c.Close()
	return ReadList(r)
}

// OpenNodeSet reads a list file into a set.
func OpenNodeSet(path string) (network.NodeSet, error) {
	items, err := OpenList(path)
	if err != nil {
		return nil, err
	}
	return network.NewNodeSet(items...), nil
}

// FileWriter is a buffered output file, snappy framed when its name ends
// in ".sz". Close flushes every layer.
type FileWriter struct {
	io.Writer
	file   *os.File
	buf    *bufio.Writer
	snappy *snappy.Writer
}

// Create opens path for writing, truncating any existing file.
func Create(path string) (*FileWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{file: f, buf: bufio.NewWriter(f)}
	fw.Writer = fw.buf
	if Compressed(path) {
		fw.snappy = snappy.NewBufferedWriter(fw.buf)
		fw.Writer = fw.snappy
	}
	return fw, nil
}

// Close flushes and closes the file.
func (w *FileWriter) Close() error {
	var firstErr error
	if w.snappy != nil {
		firstErr = w.snappy.Close()
	}
	if err := w.buf.Flush(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := w.file.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// CreateNetworkFile writes net to path.
func CreateNetworkFile(path string, net *network.Network) error {
	return createWith(path, func(w io.Writer) error { return WriteNetwork(w, net) })
}

// CreateEdgesFile writes edges to path.
func CreateEdgesFile(path string, edges []network.Edge) error {
	return createWith(path, func(w io.Writer) error { return WriteEdges(w, edges) })
}

func createWith(path string, write func(io.Writer) error) error {
	fw, err := Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(fw); err != nil {
		_ = fw.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
