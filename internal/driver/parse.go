package driver

import (
	"fortio.org/safecast"

	"cymbol/internal/ast"
	"cymbol/internal/diag"
	"cymbol/internal/lexer"
	"cymbol/internal/parser"
	"cymbol/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
}

func Parse(filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	tokenizeFile(file, bag)
	builder, astFile, err := parseFile(fs, file, bag, maxDiagnostics)
	if err != nil {
		return nil, err
	}

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		FileID:  astFile,
		Bag:     bag,
	}, nil
}

// parseFile строит AST. Лексер здесь без reporter: его ошибки уже
// собрал tokenizeFile, а парсер пропускает Invalid токены молча.
func parseFile(fs *source.FileSet, file *source.File, bag *diag.Bag, maxDiagnostics int) (*ast.Builder, ast.FileID, error) {
	maxErrors, err := safecast.Conv[uint](max(maxDiagnostics, 0))
	if err != nil {
		return nil, ast.NoFileID, err
	}
	lx := lexer.New(file, lexer.Options{})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(fs, lx, builder, parser.Options{
		Reporter:  &diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	})
	return builder, res.File, nil
}
