package inspect

import (
	"strings"
	"time"

	"github.com/google/cel-go/cel"

	"github.com/catalogicsoftware/vstor-zfs/internal/diag"
)

// celFilter wraps a compiled CEL program evaluated against one log entry at
// a time. When disabled, Eval always returns true.
type celFilter struct {
	prog    cel.Program
	enabled bool
}

func newCELFilter(expr string) (celFilter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return celFilter{enabled: false}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("seq", cel.IntType),
		cel.Variable("file", cel.StringType),
		cel.Variable("fn", cel.StringType),
		cel.Variable("line", cel.IntType),
		cel.Variable("msg", cel.StringType),
		cel.Variable("ts_ms", cel.IntType),
		// Current time in ms for windowed filters
		cel.Variable("now_ms", cel.IntType),
	)
	if err != nil {
		return celFilter{}, err
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return celFilter{}, iss.Err()
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return celFilter{}, iss2.Err()
	}
	prog, err := env.Program(checked)
	if err != nil {
		return celFilter{}, err
	}
	return celFilter{prog: prog, enabled: true}, nil
}

// Eval evaluates the compiled expression against one entry. When disabled,
// returns true. Evaluation errors exclude the entry.
func (f celFilter) Eval(e diag.Entry) bool {
	if !f.enabled {
		return true
	}
	out, _, err := f.prog.Eval(map[string]any{
		"seq":    int64(e.Seq),
		"file":   e.File,
		"fn":     e.Func,
		"line":   int64(e.Line),
		"msg":    e.Msg,
		"ts_ms":  e.Time.UnixMilli(),
		"now_ms": time.Now().UnixMilli(),
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}

// Search returns the retained entries matching a CEL expression over the
// variables seq, file, fn, line, msg, ts_ms, and now_ms. An empty expression
// matches every entry.
func Search(f *diag.Facility, expr string) ([]diag.Entry, error) {
	filter, err := newCELFilter(expr)
	if err != nil {
		return nil, err
	}
	var out []diag.Entry
	for _, e := range f.SnapshotMsgLog() {
		if filter.Eval(e) {
			out = append(out, e)
		}
	}
	return out, nil
}
