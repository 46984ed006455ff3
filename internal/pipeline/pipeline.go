// Package pipeline runs one reconciliation from input files to output document.
package pipeline

import (
	"errors"
	"strings"

	"github.com/verte-zerg/rosterdiff/internal/attendance"
	"github.com/verte-zerg/rosterdiff/internal/logging"
	"github.com/verte-zerg/rosterdiff/internal/model"
	"github.com/verte-zerg/rosterdiff/internal/reconcile"
	"github.com/verte-zerg/rosterdiff/internal/report"
	"github.com/verte-zerg/rosterdiff/internal/source"
)

// Validate checks that every path of cfg is set.
func Validate(cfg model.Config) error {
	var missing []string
	if cfg.APIPath == "" {
		missing = append(missing, "api")
	}
	if cfg.SheetPath == "" {
		missing = append(missing, "sheet")
	}
	if cfg.AttendancePath == "" {
		missing = append(missing, "attendance")
	}
	if cfg.OutputPath == "" {
		missing = append(missing, "out")
	}
	if len(missing) > 0 {
		return errors.New("missing required paths: " + strings.Join(missing, ", "))
	}
	return nil
}

// Run loads both rosters and the attendance feed, reconciles them and writes
// the output document. Nothing is written when any step fails.
func Run(cfg model.Config, logger logging.Logger) (report.Document, error) {
	if err := Validate(cfg); err != nil {
		return report.Document{}, err
	}

	logger.Info("loading api export", "path", cfg.APIPath)
	apiData, err := source.ReadFile(cfg.APIPath)
	if err != nil {
		return report.Document{}, err
	}
	api, err := source.LoadAPI(apiData, cfg.IDField)
	if err != nil {
		return report.Document{}, err
	}
	logLoad(logger, "api export", api)

	logger.Info("loading spreadsheet", "path", cfg.SheetPath, "sheet", cfg.SheetName)
	rows, err := source.ReadWorkbook(cfg.SheetPath, cfg.SheetName)
	if err != nil {
		return report.Document{}, err
	}
	sheet, err := source.LoadSheet(rows)
	if err != nil {
		return report.Document{}, err
	}
	logger.Info("using first column for ids", "column", sheet.Roster.IDField)
	logLoad(logger, "spreadsheet", sheet)

	logger.Info("loading attendance feed", "path", cfg.AttendancePath)
	attData, err := source.ReadFile(cfg.AttendancePath)
	if err != nil {
		return report.Document{}, err
	}
	att, err := attendance.Load(attData)
	if err != nil {
		return report.Document{}, err
	}
	logger.Info("aggregated attendance", "employees", len(att.Employees), "punches", att.Punches)
	if att.Invalid > 0 {
		logger.Warn("punches with unparsable times", "count", att.Invalid)
	}
	if att.Skipped > 0 {
		logger.Warn("punches without employee number skipped", "count", att.Skipped)
	}

	part := reconcile.Reconcile(api.Roster, sheet.Roster)
	doc := report.Assemble(report.Inputs{
		API:        api,
		Sheet:      sheet,
		Attendance: att,
		Partition:  part,
	})
	logger.Debug("verification",
		"compared", len(part.Matches)+part.LeftOnly.Len()+part.RightOnly.Len(),
		"api_unique", api.Roster.Len(),
		"sheet_unique", sheet.Roster.Len(),
		"both", len(part.Matches),
		"api_only", part.LeftOnly.Len(),
		"sheet_only", part.RightOnly.Len(),
	)

	if err := report.Write(cfg.OutputPath, doc); err != nil {
		return report.Document{}, err
	}
	logger.Info("wrote results", "path", cfg.OutputPath)
	return doc, nil
}

func logLoad(logger logging.Logger, name string, res source.Result) {
	logger.Info("loaded "+name, "rows", res.OriginalCount, "unique", res.Roster.Len())
	if res.EmptyCount > 0 {
		logger.Warn("removed empty ids", "source", name, "count", res.EmptyCount)
	}
	if dup := res.Duplicates; dup != nil {
		for _, id := range dup.IDs {
			logger.Warn("duplicate id", "source", name, "id", id, "count", dup.Counts[id])
		}
	}
}
