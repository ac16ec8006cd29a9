package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"cymbol/internal/diag"
	"cymbol/internal/observ"
	"cymbol/internal/source"
	"cymbol/internal/trace"
)

// SourceExt is the extension of Cymbol source files.
const SourceExt = ".cym"

// CheckDirResult содержит результат проверки одного файла каталога.
type CheckDirResult struct {
	Path   string
	FileID source.FileID
	// Result is nil when the file could not be loaded; Bag then holds
	// the IO diagnostic, located in an empty placeholder file.
	Result *CheckResult
	Bag    *diag.Bag
}

// ListSourceFiles возвращает отсортированный список всех *.cym файлов в директории.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CheckDir checks every source file under dir with at most jobs workers
// (0 means GOMAXPROCS). Each file gets its own AST, table and bag;
// results keep the sorted file order regardless of completion order.
// The returned report aggregates phase timings when enabled.
func CheckDir(ctx context.Context, dir string, opts CheckOptions, jobs int) (*source.FileSet, []CheckDirResult, *observ.Report, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil, nil
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.CatRun, "check.dir", trace.ParentOf(ctx)).
		WithExtra("files", strconv.Itoa(len(files)))
	defer span.End("")

	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}

	// Загрузка последовательная: дальше FileSet только читается
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	idx := timer.Begin(string(StageLoad))
	for _, p := range files {
		emit(opts.Progress, Event{File: p, Stage: StageLoad, Status: StatusQueued})
		id, loadErr := fileSet.Load(p)
		if loadErr != nil {
			// пустой виртуальный файл, чтобы диагностика указывала на путь
			id = fileSet.AddVirtual(p, nil)
			loadErrors[p] = loadErr
		}
		fileIDs[p] = id
	}
	timer.End(idx, "files="+strconv.Itoa(len(files)))

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]CheckDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: fileIDs[path]}, "failed to load file: "+loadErr.Error()))
				results[i] = CheckDirResult{Path: path, FileID: fileIDs[path], Bag: bag}
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}

			fileSpan := trace.Begin(tracer, trace.CatFile, "check.file", span.ID()).WithExtra("path", path)
			fctx := trace.WithParent(gctx, fileSpan.ID())
			res, checkErr := checkLoaded(fctx, fileSet, fileIDs[path], opts, timer)
			fileSpan.End("")
			if checkErr != nil {
				return checkErr
			}
			results[i] = CheckDirResult{Path: path, FileID: fileIDs[path], Result: res, Bag: res.Bag}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, nil, err
	}

	var report *observ.Report
	if timer != nil {
		r := timer.Report()
		report = &r
	}
	return fileSet, results, report, nil
}
