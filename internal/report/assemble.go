// Package report assembles, renders and writes the reconciliation document.
package report

import (
	"github.com/verte-zerg/rosterdiff/internal/attendance"
	"github.com/verte-zerg/rosterdiff/internal/ident"
	"github.com/verte-zerg/rosterdiff/internal/model"
	"github.com/verte-zerg/rosterdiff/internal/reconcile"
	"github.com/verte-zerg/rosterdiff/internal/source"
)

// Columns added to every group.
const (
	ShiftsColumn       = "number_of_shifts"
	AverageHoursColumn = "average_shift_hours"
)

const (
	employeeField    = "employee_number"
	bankAccountField = "bank_account"
)

// Inputs are the loaded sources and their partition.
type Inputs struct {
	API        source.Result
	Sheet      source.Result
	Attendance attendance.Summary
	Partition  reconcile.Partition
}

// Document is the output of a run.
type Document struct {
	Summary           Summary        `json:"summary"`
	AttendanceSummary GroupSummaries `json:"attendance_summary"`
	MatchingIDs       []model.Record `json:"matching_ids"`
	JSONOnly          []model.Record `json:"json_only"`
	ExcelOnly         []model.Record `json:"excel_only"`
}

// Summary holds the run counters.
type Summary struct {
	MatchingIDsCount   int                    `json:"matching_ids_count"`
	JSONOnlyCount      int                    `json:"json_only_count"`
	ExcelOnlyCount     int                    `json:"excel_only_count"`
	TotalJSON          int                    `json:"total_json"`
	TotalExcel         int                    `json:"total_excel"`
	EmptyIDsJSON       int                    `json:"empty_ids_json"`
	EmptyIDsExcel      int                    `json:"empty_ids_excel"`
	OriginalCountJSON  int                    `json:"original_count_json"`
	OriginalCountExcel int                    `json:"original_count_excel"`
	DuplicatesJSON     *model.DuplicateReport `json:"duplicates_json"`
	DuplicatesExcel    *model.DuplicateReport `json:"duplicates_excel"`
}

// GroupSummaries holds attendance figures for each partition.
type GroupSummaries struct {
	Matches   GroupStats `json:"matches"`
	JSONOnly  GroupStats `json:"json_only"`
	ExcelOnly GroupStats `json:"excel_only"`
}

// GroupStats aggregates the attendance columns of one partition. Means skip
// employees without a value, are 0 when no employee has one and are not
// rounded; only per-employee averages are.
type GroupStats struct {
	TotalShifts              float64 `json:"total_shifts"`
	AvgShiftsPerEmployee     float64 `json:"avg_shifts_per_employee"`
	AvgHoursPerShift         float64 `json:"avg_hours_per_shift"`
	EmployeesWithBankAccount *int    `json:"employees_with_bank_account,omitempty"`
	TotalEmployees           int     `json:"total_employees"`
	EmployeesWithShifts      int     `json:"employees_with_shifts"`
}

type group struct {
	columns []string
	records []model.Record
}

// Assemble joins attendance statistics onto each partition and computes the
// summary counters. Spreadsheet-only employees carry no employee number and
// get null attendance values.
func Assemble(in Inputs) Document {
	part := in.Partition

	matches := withShifts(part.Merged, func(i int) any {
		v, _ := part.Matches[i].Left.Get(employeeField)
		return v
	}, in.Attendance)
	jsonOnly := withShifts(part.LeftOnly, func(i int) any {
		v, _ := part.LeftOnly.Records[i].Get(employeeField)
		return v
	}, in.Attendance)
	excelOnly := withShifts(part.RightOnly, nil, in.Attendance)

	return Document{
		Summary: Summary{
			MatchingIDsCount:   len(matches.records),
			JSONOnlyCount:      len(jsonOnly.records),
			ExcelOnlyCount:     len(excelOnly.records),
			TotalJSON:          in.API.Roster.Len(),
			TotalExcel:         in.Sheet.Roster.Len(),
			EmptyIDsJSON:       in.API.EmptyCount,
			EmptyIDsExcel:      in.Sheet.EmptyCount,
			OriginalCountJSON:  in.API.OriginalCount,
			OriginalCountExcel: in.Sheet.OriginalCount,
			DuplicatesJSON:     in.API.Duplicates,
			DuplicatesExcel:    in.Sheet.Duplicates,
		},
		AttendanceSummary: GroupSummaries{
			Matches:   matches.stats(),
			JSONOnly:  jsonOnly.stats(),
			ExcelOnly: excelOnly.stats(),
		},
		MatchingIDs: matches.records,
		JSONOnly:    jsonOnly.records,
		ExcelOnly:   excelOnly.records,
	}
}

// withShifts projects every record onto the collection columns plus the
// attendance columns. employeeOf may be nil when the group cannot be joined.
func withShifts(c model.Collection, employeeOf func(i int) any, att attendance.Summary) group {
	var cols model.ColumnSet
	for _, name := range c.Columns {
		cols.AddName(name)
	}
	cols.AddName(ShiftsColumn)
	cols.AddName(AverageHoursColumn)

	g := group{columns: cols.Names(), records: make([]model.Record, 0, len(c.Records))}
	for i, rec := range c.Records {
		rec = rec.Clone()
		var shifts, avg any
		if employeeOf != nil {
			if stat, ok := att.Lookup(employeeOf(i)); ok {
				shifts = stat.Shifts
				if stat.AverageHours != nil {
					avg = *stat.AverageHours
				}
			}
		}
		rec.Set(ShiftsColumn, shifts)
		rec.Set(AverageHoursColumn, avg)
		g.records = append(g.records, rec.Project(g.columns))
	}
	return g
}

func (g group) stats() GroupStats {
	var (
		st         GroupStats
		shiftCount int
		hoursSum   float64
		hoursCount int
	)
	st.TotalEmployees = len(g.records)
	for _, rec := range g.records {
		if v, _ := rec.Get(ShiftsColumn); v != nil {
			n, _ := v.(int)
			st.TotalShifts += float64(n)
			shiftCount++
			if n > 0 {
				st.EmployeesWithShifts++
			}
		}
		if v, ok := rec.Get(AverageHoursColumn); ok {
			if hours, ok := v.(float64); ok {
				hoursSum += hours
				hoursCount++
			}
		}
	}
	if shiftCount > 0 {
		st.AvgShiftsPerEmployee = st.TotalShifts / float64(shiftCount)
	}
	if hoursCount > 0 {
		st.AvgHoursPerShift = hoursSum / float64(hoursCount)
	}
	if g.hasColumn(bankAccountField) {
		n := 0
		for _, rec := range g.records {
			v, _ := rec.Get(bankAccountField)
			if _, ok := ident.Normalize(v); ok {
				n++
			}
		}
		st.EmployeesWithBankAccount = &n
	}
	return st
}

func (g group) hasColumn(name string) bool {
	for _, c := range g.columns {
		if c == name {
			return true
		}
	}
	return false
}
