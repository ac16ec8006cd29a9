// Package fuzztests houses Go fuzz harnesses that run arbitrary bytes
// through the Cymbol front end (source -> lexer -> parser -> sema) and
// guard against panics, hangs and broken symbol-table invariants.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер,
// парсер и оба семантических прохода.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.

package fuzztests
