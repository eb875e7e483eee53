// Package diagnostics implements the process-scoped-per-compile sink of
// spec §4.12: a position -> first diagnostic mapping, cleared per compile,
// that the Binder and Checker write into and never read back from (the
// single exception being deduplication).
//
// The Code/DiagnosticError split and the dedup-by-key pattern are grounded
// on the teacher's internal/analyzer walker.addError/getErrors (which keys
// on "line:col:code" and sorts by position before returning); spec §8
// requires that two diagnostics at the very same position collapse to one,
// so the sink here keys on position alone rather than position+code.
package diagnostics

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tyro-lang/tyro/internal/token"
)

// Code is a stable identifier for one diagnostic shape, independent of the
// rendered message text.
type Code string

const (
	ErrParse          Code = "parse-error"
	ErrRedeclare      Code = "redeclare"
	ErrCannotResolve  Code = "cannot-resolve"
	ErrCannotResolveT Code = "cannot-resolve-type"
	ErrAssignVar      Code = "assign-var"
	ErrAssignName     Code = "assign-name"
	ErrCannotCall     Code = "cannot-call"
	ErrArity          Code = "arity"
	ErrTypeArity      Code = "type-arity"
	ErrArgument       Code = "argument"
	ErrReturnMismatch Code = "return-mismatch"
)

// Diagnostic is one recorded (position, message) pair plus its stable code.
type Diagnostic struct {
	Pos     token.Pos
	Code    Code
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Pos, d.Message)
}

// positioned is implemented by ast.Node; kept local (rather than importing
// ast) so diagnostics stays a leaf package with no dependency on the data
// model it reports on.
type positioned interface {
	Pos() token.Pos
}

// Sink collects diagnostics for one compile unit.
type Sink struct {
	SessionID string
	byPos     map[token.Pos]Diagnostic
}

// NewSink creates an empty sink tagged with a fresh session id (spec §4.12
// "cleared per compile" — a fresh Sink is the clearing operation).
func NewSink() *Sink {
	return &Sink{SessionID: uuid.New().String(), byPos: make(map[token.Pos]Diagnostic)}
}

// Report records a diagnostic at n's position, unless a diagnostic is
// already recorded at that exact position (spec §4.12/§8: first wins).
func (s *Sink) Report(n positioned, code Code, format string, args ...any) {
	s.ReportAt(n.Pos(), code, format, args...)
}

// ReportAt is the raw-position form of Report.
func (s *Sink) ReportAt(pos token.Pos, code Code, format string, args ...any) {
	if _, exists := s.byPos[pos]; exists {
		return
	}
	s.byPos[pos] = Diagnostic{Pos: pos, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Diagnostics returns all recorded diagnostics in source-position order.
func (s *Sink) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, 0, len(s.byPos))
	for _, d := range s.byPos {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pos.Line != out[j].Pos.Line {
			return out[i].Pos.Line < out[j].Pos.Line
		}
		return out[i].Pos.Column < out[j].Pos.Column
	})
	return out
}

// ToProto renders the current diagnostic list as a *structpb.Struct. Used by
// cmd/tyro's -json flag (via protojson.Marshal) to give hosts a
// self-describing wire payload without hand-rolled JSON marshaling.
func (s *Sink) ToProto() (*structpb.Struct, error) {
	items := make([]any, 0, len(s.byPos))
	for _, d := range s.Diagnostics() {
		items = append(items, map[string]any{
			"line":    float64(d.Pos.Line),
			"column":  float64(d.Pos.Column),
			"code":    string(d.Code),
			"message": d.Message,
		})
	}
	return structpb.NewStruct(map[string]any{
		"sessionId":   s.SessionID,
		"diagnostics": items,
	})
}
