// Package pipeline chains the Scanner, Parser, Binder, Checker, Transform
// and Emitter stages behind one Processor interface, grounded on the
// teacher's internal/pipeline package: a short Processor/Pipeline/Context
// trio where a Pipeline runs its Processors in order and a later stage can
// still run after an earlier one reports an error, since diagnostics (as
// opposed to internal errors) are not fatal to the compile.
package pipeline

import (
	"fmt"

	"github.com/tyro-lang/tyro/internal/ast"
	"github.com/tyro-lang/tyro/internal/binder"
	"github.com/tyro-lang/tyro/internal/checker"
	"github.com/tyro-lang/tyro/internal/diagnostics"
	"github.com/tyro-lang/tyro/internal/emitter"
	"github.com/tyro-lang/tyro/internal/ice"
	"github.com/tyro-lang/tyro/internal/parser"
	"github.com/tyro-lang/tyro/internal/scanner"
	"github.com/tyro-lang/tyro/internal/transform"
)

// Context carries one compile unit's state through the Pipeline. Stages
// read and write it directly rather than threading return values, matching
// the teacher's Context shape.
type Context struct {
	Filename string
	Source   string

	Sink   *diagnostics.Sink
	Module *ast.Module
	Types  []ast.Type
	Output string

	// InternalErr records a recovered internal compiler error (ice.Error),
	// distinct from ordinary diagnostics in Sink.
	InternalErr error
}

// NewContext creates a Context ready to run a Pipeline over source.
func NewContext(filename, source string) *Context {
	return &Context{Filename: filename, Source: source, Sink: diagnostics.NewSink()}
}

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *Context) error
}

// Pipeline runs its Processors in order over a Context.
type Pipeline struct {
	Processors []Processor
}

// Standard returns the full Scan -> Parse -> Bind -> Check -> Transform ->
// Emit pipeline.
func Standard() *Pipeline {
	return &Pipeline{Processors: []Processor{
		ParseStage{},
		BindStage{},
		CheckStage{},
		TransformStage{},
		EmitStage{},
	}}
}

// Run executes every stage, continuing past a stage that returns an error
// so later stages still get a chance to run (diagnostics already recorded
// in ctx.Sink are the primary signal; Run's error return only reports
// internal invariant failures, recovered here at each stage's boundary).
func (p *Pipeline) Run(ctx *Context) error {
	var firstErr error
	for _, proc := range p.Processors {
		if err := runStage(proc, ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func runStage(proc Processor, ctx *Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if iceErr, ok := r.(*ice.Error); ok {
				ctx.InternalErr = iceErr
				err = iceErr
				return
			}
			panic(r)
		}
	}()
	return proc.Process(ctx)
}

// ParseStage scans and parses ctx.Source into ctx.Module.
type ParseStage struct{}

func (ParseStage) Process(ctx *Context) error {
	sc := scanner.New(ctx.Source)
	p := parser.New(sc, ctx.Sink)
	ctx.Module = p.ParseModule()
	return nil
}

// BindStage runs the binder over ctx.Module.
type BindStage struct{}

func (BindStage) Process(ctx *Context) error {
	binder.Bind(ctx.Module, ctx.Sink)
	return nil
}

// CheckStage runs the checker over ctx.Module, recording ctx.Types.
type CheckStage struct{}

func (CheckStage) Process(ctx *Context) error {
	ctx.Types = checker.New(ctx.Sink).Check(ctx.Module)
	return nil
}

// TransformStage strips type annotations from ctx.Module.
type TransformStage struct{}

func (TransformStage) Process(ctx *Context) error {
	ctx.Module = transform.Strip(ctx.Module)
	return nil
}

// EmitStage renders ctx.Module to ctx.Output.
type EmitStage struct{}

func (EmitStage) Process(ctx *Context) error {
	ctx.Output = emitter.Emit(ctx.Module)
	return nil
}

// Result is a compact summary of one Run, convenient for CLI reporting.
type Result struct {
	Filename    string
	Diagnostics []diagnostics.Diagnostic
	Output      string
	InternalErr error

	// Sink is the Context's diagnostic sink, kept around so callers that
	// need more than the flattened Diagnostics slice (e.g. the CLI's -json
	// flag, via Sink.ToProto) don't have to re-run the pipeline.
	Sink *diagnostics.Sink
}

// Compile runs the Standard pipeline over source and returns a Result.
func Compile(filename, source string) Result {
	ctx := NewContext(filename, source)
	Standard().Run(ctx)
	return Result{
		Filename:    filename,
		Diagnostics: ctx.Sink.Diagnostics(),
		Output:      ctx.Output,
		InternalErr: ctx.InternalErr,
		Sink:        ctx.Sink,
	}
}

func (r Result) String() string {
	if r.InternalErr != nil {
		return fmt.Sprintf("%s: internal error: %s", r.Filename, r.InternalErr)
	}
	if len(r.Diagnostics) == 0 {
		return fmt.Sprintf("%s: ok", r.Filename)
	}
	return fmt.Sprintf("%s: %d diagnostic(s)", r.Filename, len(r.Diagnostics))
}
