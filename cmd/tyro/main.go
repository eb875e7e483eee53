// Command tyro compiles a directory of .ty source files: for each file it
// runs the full Scan/Parse/Bind/Check/Transform/Emit pipeline, reports
// diagnostics, and (unless -check is given) writes the emitted,
// type-stripped output next to the source, as NAME.js beside NAME.ty.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/tyro-lang/tyro/internal/cache"
	"github.com/tyro-lang/tyro/internal/config"
	"github.com/tyro-lang/tyro/internal/diagnostics"
	"github.com/tyro-lang/tyro/internal/pipeline"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("tyro", flag.ContinueOnError)
	checkOnly := fs.Bool("check", false, "report diagnostics only; do not write emitted output")
	verbose := fs.Bool("v", false, "print a per-run summary")
	noColor := fs.Bool("no-color", false, "disable colored diagnostic output")
	cachePath := fs.String("cache", "", "path to a sqlite diagnostics cache (default: disabled)")
	jsonOut := fs.Bool("json", false, "print each file's diagnostics as a JSON object on stdout, for LSP/RPC hosts")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	roots := fs.Args()
	if len(roots) == 0 {
		roots = []string{"."}
	}

	cfg, err := config.Load(config.FileName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tyro: loading tyro.yaml:", err)
		return 1
	}

	color := isatty.IsTerminal(os.Stdout.Fd()) && !*noColor
	if cfg.Color != nil {
		color = *cfg.Color && !*noColor
	}

	var diskCache *cache.Cache
	if *cachePath != "" {
		diskCache, err = cache.Open(*cachePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "tyro:", err)
			return 1
		}
		defer diskCache.Close()
	}

	files, err := collectSources(roots, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tyro:", err)
		return 1
	}

	start := time.Now()
	results, failed := compileAll(files, diskCache)

	for _, r := range results {
		if *jsonOut {
			printResultJSON(r)
			continue
		}
		printResult(r, color)
	}
	if *verbose {
		fmt.Fprintf(os.Stderr, "tyro: compiled %s in %s\n",
			humanize.Comma(int64(len(files))), time.Since(start).Round(time.Millisecond))
	}

	if !*checkOnly {
		for i, r := range results {
			if r.InternalErr == nil && len(r.Diagnostics) == 0 {
				outPath := strings.TrimSuffix(files[i], config.SourceExt) + ".js"
				if err := os.WriteFile(outPath, []byte(r.Output), 0o644); err != nil {
					fmt.Fprintln(os.Stderr, "tyro: writing", outPath, err)
					failed = true
				}
			}
		}
	}

	if failed {
		return 1
	}
	return 0
}

// collectSources walks each root, gathering every config.SourceExt file not
// matched by cfg.Exclude.
func collectSources(roots []string, cfg *config.Config) ([]string, error) {
	var files []string
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || filepath.Ext(path) != config.SourceExt {
				return nil
			}
			for _, pat := range cfg.Exclude {
				if ok, _ := filepath.Match(pat, filepath.Base(path)); ok {
					return nil
				}
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// compileAll runs the pipeline over every file concurrently, one goroutine
// per file, bounded by errgroup's default unlimited concurrency (file
// counts here are small enough that per-file goroutines, not a worker
// pool, are the right granularity).
func compileAll(files []string, diskCache *cache.Cache) ([]pipeline.Result, bool) {
	results := make([]pipeline.Result, len(files))
	var failed atomicBool

	g, _ := errgroup.WithContext(context.Background())
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			results[i] = compileOne(f, diskCache)
			if results[i].InternalErr != nil || len(results[i].Diagnostics) > 0 {
				failed.set(true)
			}
			return nil
		})
	}
	_ = g.Wait() // compileOne never returns an error; internal errors are recorded in Result
	return results, failed.get()
}

func compileOne(path string, diskCache *cache.Cache) pipeline.Result {
	src, err := os.ReadFile(path)
	if err != nil {
		return pipeline.Result{Filename: path, InternalErr: err}
	}

	var hash string
	if diskCache != nil {
		hash = cache.Hash(string(src))
		if entry, ok, _ := diskCache.Get(hash); ok {
			sink := diagnostics.NewSink()
			for _, d := range entry.Diagnostics {
				sink.ReportAt(d.Pos, d.Code, "%s", d.Message)
			}
			return pipeline.Result{Filename: path, Diagnostics: entry.Diagnostics, Output: entry.Output, Sink: sink}
		}
	}

	r := pipeline.Compile(path, string(src))

	if diskCache != nil && r.InternalErr == nil {
		_ = diskCache.Put(hash, cache.Entry{Diagnostics: r.Diagnostics, Output: r.Output})
	}
	return r
}

func printResult(r pipeline.Result, color bool) {
	if r.InternalErr != nil {
		fmt.Fprintln(os.Stderr, colorize(color, "31", fmt.Sprintf("%s: internal error: %s", r.Filename, r.InternalErr)))
		return
	}
	for _, d := range r.Diagnostics {
		fmt.Fprintln(os.Stderr, colorize(color, "33", fmt.Sprintf("%s:%s: %s", r.Filename, d.Pos, d.Message)))
	}
}

// printResultJSON renders r's diagnostics via Sink.ToProto and protojson,
// one line of JSON per file, for hosts that want structured output instead
// of the colorized human-readable form.
func printResultJSON(r pipeline.Result) {
	if r.InternalErr != nil {
		fmt.Fprintf(os.Stderr, "tyro: %s: internal error: %s\n", r.Filename, r.InternalErr)
		return
	}
	pb, err := r.Sink.ToProto()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tyro: %s: encoding diagnostics: %s\n", r.Filename, err)
		return
	}
	line, err := protojson.Marshal(pb)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tyro: %s: marshaling diagnostics: %s\n", r.Filename, err)
		return
	}
	fmt.Println(string(line))
}

func colorize(on bool, code, s string) string {
	if !on {
		return s
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}

type atomicBool struct {
	mu  sync.Mutex
	val bool
}

func (b *atomicBool) set(v bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.val = b.val || v
}

func (b *atomicBool) get() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.val
}
