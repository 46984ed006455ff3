package report

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/rosterdiff/internal/attendance"
	"github.com/verte-zerg/rosterdiff/internal/model"
	"github.com/verte-zerg/rosterdiff/internal/reconcile"
	"github.com/verte-zerg/rosterdiff/internal/source"
)

func testInputs(t *testing.T) Inputs {
	t.Helper()
	api, err := source.LoadAPI([]byte(`{"data": [
		{"id_number": "1", "employee_number": 10, "bank_account": "11-1"},
		{"id_number": "2", "employee_number": 20, "bank_account": ""},
		{"id_number": "3", "employee_number": 30},
		{"id_number": "3", "employee_number": 31},
		{"id_number": "", "employee_number": 40}
	]}`), "")
	if err != nil {
		t.Fatalf("LoadAPI: %v", err)
	}
	sheet, err := source.LoadSheet([][]string{
		{"title"},
		{"ת.ז", "שם"},
		{"2", "דנה"},
		{"3", "רון"},
		{"4", "גל"},
	})
	if err != nil {
		t.Fatalf("LoadSheet: %v", err)
	}
	att, err := attendance.Load([]byte(`{"data": [
		{"employee_number": "10", "t_start": "09:00", "t_end": "17:00"},
		{"employee_number": "30", "t_start": "09:00", "t_end": "17:00"},
		{"employee_number": "30", "t_start": "10:00", "t_end": "14:30"}
	]}`))
	if err != nil {
		t.Fatalf("attendance.Load: %v", err)
	}
	return Inputs{
		API:        api,
		Sheet:      sheet,
		Attendance: att,
		Partition:  reconcile.Reconcile(api.Roster, sheet.Roster),
	}
}

func TestAssembleSummary(t *testing.T) {
	doc := Assemble(testInputs(t))
	s := doc.Summary
	if s.MatchingIDsCount != 2 || s.JSONOnlyCount != 1 || s.ExcelOnlyCount != 1 {
		t.Fatalf("unexpected partition counts: %+v", s)
	}
	if s.TotalJSON != 3 || s.TotalExcel != 3 || s.OriginalCountJSON != 5 || s.EmptyIDsJSON != 1 {
		t.Fatalf("unexpected source counts: %+v", s)
	}
	if s.DuplicatesJSON == nil || s.DuplicatesJSON.Counts["3"] != 2 || s.DuplicatesExcel != nil {
		t.Fatalf("unexpected duplicates: %+v / %+v", s.DuplicatesJSON, s.DuplicatesExcel)
	}
}

func TestAssembleAttendance(t *testing.T) {
	doc := Assemble(testInputs(t))

	matches := doc.AttendanceSummary.Matches
	bank := 0
	want := GroupStats{
		TotalShifts:              2,
		AvgShiftsPerEmployee:     2,
		AvgHoursPerShift:         6.25,
		EmployeesWithBankAccount: &bank,
		TotalEmployees:           2,
		EmployeesWithShifts:      1,
	}
	if diff := cmp.Diff(want, matches); diff != "" {
		t.Fatalf("unexpected matches stats (-want +got):\n%s", diff)
	}

	jsonOnly := doc.AttendanceSummary.JSONOnly
	if jsonOnly.TotalShifts != 1 || jsonOnly.AvgHoursPerShift != 8 || *jsonOnly.EmployeesWithBankAccount != 1 {
		t.Fatalf("unexpected json-only stats: %+v", jsonOnly)
	}

	excelOnly := doc.AttendanceSummary.ExcelOnly
	if excelOnly.TotalEmployees != 1 || excelOnly.EmployeesWithShifts != 0 || excelOnly.EmployeesWithBankAccount != nil {
		t.Fatalf("unexpected excel-only stats: %+v", excelOnly)
	}
}

func TestGroupStatsMeansAreNotRounded(t *testing.T) {
	g := group{columns: []string{"id", ShiftsColumn, AverageHoursColumn}}
	for _, v := range []struct {
		shifts int
		hours  float64
	}{{1, 8}, {1, 7}, {2, 7}} {
		g.records = append(g.records, model.NewRecord(
			model.Field{Name: "id", Value: "x"},
			model.Field{Name: ShiftsColumn, Value: v.shifts},
			model.Field{Name: AverageHoursColumn, Value: v.hours},
		))
	}
	st := g.stats()
	if st.AvgShiftsPerEmployee != 4.0/3 {
		t.Fatalf("expected unrounded shift mean, got %v", st.AvgShiftsPerEmployee)
	}
	if st.AvgHoursPerShift != 22.0/3 {
		t.Fatalf("expected unrounded hours mean, got %v", st.AvgHoursPerShift)
	}
}

func TestAssembleRecords(t *testing.T) {
	doc := Assemble(testInputs(t))

	first := doc.MatchingIDs[0]
	var names []string
	for _, f := range first.Fields() {
		names = append(names, f.Name)
	}
	wantCols := []string{"id_number", "employee_number", "bank_account", "ת.ז", "שם", ShiftsColumn, AverageHoursColumn}
	if diff := cmp.Diff(wantCols, names); diff != "" {
		t.Fatalf("unexpected match columns (-want +got):\n%s", diff)
	}
	if v, _ := first.Get(ShiftsColumn); v != nil {
		t.Fatalf("expected no shifts for employee 20, got %v", v)
	}

	second := doc.MatchingIDs[1]
	if v, _ := second.Get(ShiftsColumn); v != 2 {
		t.Fatalf("expected 2 shifts for employee 30, got %v", v)
	}
	if v, ok := second.Get("bank_account"); !ok || v != nil {
		t.Fatalf("expected null bank_account column, got %v (present=%v)", v, ok)
	}

	excel := doc.ExcelOnly[0]
	if v, _ := excel.Get("ת.ז"); v != "4" {
		t.Fatalf("unexpected excel-only record: %+v", excel.Fields())
	}
	if v, ok := excel.Get(AverageHoursColumn); !ok || v != nil {
		t.Fatalf("expected null average for excel-only record")
	}
}

func TestAssembleEmptyGroupsEncodeAsArrays(t *testing.T) {
	doc := Assemble(Inputs{})
	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"matching_ids", "json_only", "excel_only"} {
		if _, ok := decoded[key].([]any); !ok {
			t.Fatalf("expected %s to be an array, got %#v", key, decoded[key])
		}
	}
}
