package logging

import "time"

func String(key, value string) Field      { return Field{Key: key, Value: value} }
func Int(key string, value int) Field     { return Field{Key: key, Value: value} }
func Float64(key string, v float64) Field { return Field{Key: key, Value: v} }
func Bool(key string, value bool) Field   { return Field{Key: key, Value: value} }
func Any(key string, value any) Field     { return Field{Key: key, Value: value} }

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

// Error records err under "error"; a nil error is recorded as null.
func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Component(name string) Field   { return String("component", name) }
func Operation(op string) Field     { return String("operation", op) }
func Path(p string) Field           { return String("path", p) }
func Count(n int) Field             { return Int("count", n) }
func Latency(d time.Duration) Field { return Duration("latency", d) }

// Domain fields.
func Gene(name string) Field   { return String("gene", name) }
func Source(name string) Field { return String("source", name) }
func Depth(d int) Field        { return Int("max_depth", d) }
func RunID(id string) Field    { return String("run_id", id) }
func Line(n int) Field         { return Int("line", n) }
func Edges(n int) Field        { return Int("edges", n) }
func Nodes(n int) Field        { return Int("nodes", n) }
