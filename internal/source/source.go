// Package source loads employee rosters from the API export and the manual spreadsheet.
package source

import (
	"os"

	"github.com/verte-zerg/rosterdiff/internal/ident"
	"github.com/verte-zerg/rosterdiff/internal/model"
)

// Result is a loaded roster together with what was filtered out of it.
type Result struct {
	Roster        model.Collection
	OriginalCount int
	EmptyCount    int
	Duplicates    *model.DuplicateReport
}

// ReadFile reads an input file, mapping failures to model.IOError.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &model.IOError{Op: "read", Path: path, Err: err}
	}
	return data, nil
}

// finish drops empty identifiers, reports duplicates among the rest, then
// keeps the first occurrence of each identifier.
func finish(records []model.Record, columns []string, idField string) Result {
	kept, empty := ident.Clean(records, idField)
	dups := ident.DetectDuplicates(kept, idField)
	unique, _ := ident.Dedup(kept, idField)
	return Result{
		Roster: model.Collection{
			IDField: idField,
			Columns: columns,
			Records: unique,
		},
		OriginalCount: len(records),
		EmptyCount:    empty,
		Duplicates:    dups,
	}
}
