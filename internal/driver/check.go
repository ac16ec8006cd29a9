package driver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"cymbol/internal/ast"
	"cymbol/internal/diag"
	"cymbol/internal/observ"
	"cymbol/internal/project"
	"cymbol/internal/sema"
	"cymbol/internal/source"
	"cymbol/internal/trace"
)

// CheckOptions configure Check and CheckDir.
type CheckOptions struct {
	MaxDiagnostics int
	WarnShadowing  bool
	EnableTimings  bool
	// Cache, when set, serves files whose content and options were
	// already checked. A cached result carries diagnostics only.
	Cache *DiskCache
	// NeedSemantics bypasses the cache so that Sema is always filled.
	NeedSemantics bool
	Progress      ProgressSink
}

// fingerprint describes every option that changes the diagnostics.
func (o CheckOptions) fingerprint() string {
	return fmt.Sprintf("schema=%d max=%d shadow=%t", diskCacheSchemaVersion, o.MaxDiagnostics, o.WarnShadowing)
}

type CheckResult struct {
	FileSet *source.FileSet
	File    *source.File
	FileID  ast.FileID
	Builder *ast.Builder
	Bag     *diag.Bag
	// Sema is nil when the file had syntax errors or came from the cache.
	Sema   *sema.Result
	Cached bool
	Timing *observ.Report
}

// Check загружает файл и прогоняет его через лексер, парсер и, если нет
// синтаксических ошибок, через оба семантических прохода.
func Check(ctx context.Context, path string, opts CheckOptions) (*CheckResult, error) {
	return check(ctx, path, opts, func(fs *source.FileSet) (source.FileID, error) {
		return fs.Load(path)
	})
}

// CheckSource checks in-memory content under name, e.g. "<stdin>".
func CheckSource(ctx context.Context, name string, content []byte, opts CheckOptions) (*CheckResult, error) {
	return check(ctx, name, opts, func(fs *source.FileSet) (source.FileID, error) {
		return fs.AddVirtual(name, content), nil
	})
}

func check(ctx context.Context, name string, opts CheckOptions, load func(*source.FileSet) (source.FileID, error)) (*CheckResult, error) {
	fs := source.NewFileSet()
	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.CatFile, "check.file", trace.ParentOf(ctx)).
		WithExtra("path", name)

	loadSpan := trace.Begin(tracer, trace.CatPass, "load", span.ID())
	idx := timer.Begin(string(StageLoad))
	fileID, err := load(fs)
	timer.End(idx, "")
	loadSpan.End("")
	if err != nil {
		span.End("load failed")
		return nil, err
	}

	res, err := checkLoaded(trace.WithParent(ctx, span.ID()), fs, fileID, opts, timer)
	if res != nil {
		span.WithExtra("diagnostics", strconv.Itoa(res.Bag.Len()))
		if timer != nil {
			report := timer.Report()
			res.Timing = &report
		}
	}
	span.End("")
	return res, err
}

// checkLoaded checks a file already present in fs. fs is only read, so
// directory workers share it, as they share timer.
func checkLoaded(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts CheckOptions, timer *observ.Timer) (*CheckResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tracer := trace.FromContext(ctx)
	parent := trace.ParentOf(ctx)
	file := fs.Get(fileID)
	res := &CheckResult{FileSet: fs, File: file, Bag: diag.NewBag(opts.MaxDiagnostics)}

	var key project.Digest
	if opts.Cache != nil && !opts.NeedSemantics {
		key = project.Combine(file.Hash, project.DigestString(opts.fingerprint()))
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err != nil {
			res.Bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: fileID}, "cache read failed: "+err.Error()))
		} else if hit && payload.restore(fileID, res.Bag) {
			res.Cached = true
			trace.Point(tracer, trace.CatPass, "cache.hit", parent, file.Path)
			emit(opts.Progress, Event{File: file.Path, Stage: StageSema, Status: StatusCached})
			return res, nil
		}
	}

	start := time.Now()
	stage := func(st Stage, fn func() string) {
		emit(opts.Progress, Event{File: file.Path, Stage: st, Status: StatusWorking})
		span := trace.Begin(tracer, trace.CatPass, string(st), parent)
		idx := timer.Begin(string(st))
		note := fn()
		timer.End(idx, note)
		span.End(note)
	}

	stage(StageTokenize, func() string {
		tokens := tokenizeFile(file, res.Bag)
		return "tokens=" + strconv.Itoa(len(tokens))
	})

	var parseErr error
	stage(StageParse, func() string {
		res.Builder, res.FileID, parseErr = parseFile(fs, file, res.Bag, opts.MaxDiagnostics)
		if parseErr != nil || res.Builder == nil {
			return ""
		}
		if f := res.Builder.Files.Get(res.FileID); f != nil {
			return "items=" + strconv.Itoa(len(f.Items))
		}
		return ""
	})
	if parseErr != nil {
		return nil, parseErr
	}

	if !res.Bag.HasErrors() {
		stage(StageSema, func() string {
			sr := sema.Analyze(res.Builder, res.FileID, sema.Options{
				Reporter:      diag.NewDedupReporter(&diag.BagReporter{Bag: res.Bag}),
				WarnShadowing: opts.WarnShadowing,
				Tracer:        tracer,
				ParentSpan:    parent,
			})
			res.Sema = &sr
			return "scopes=" + strconv.Itoa(sr.Table.Scopes.Len())
		})
	}

	res.Bag.Sort()
	status := StatusDone
	if res.Bag.HasErrors() {
		status = StatusError
	}
	emit(opts.Progress, Event{File: file.Path, Stage: StageSema, Status: status, Elapsed: time.Since(start)})

	if opts.Cache != nil && !opts.NeedSemantics {
		if err := opts.Cache.Put(key, newDiskPayload(file, res.Bag)); err != nil {
			trace.Point(tracer, trace.CatPass, "cache.error", parent, err.Error())
		}
	}
	return res, nil
}
