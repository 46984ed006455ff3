package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/verte-zerg/rosterdiff/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// RenderSummary prints the counters and attendance tables of a document.
func RenderSummary(w io.Writer, doc Document, useColor bool) error {
	title := func(s string) string {
		if useColor {
			return titleStyle.Render(s)
		}
		return s
	}
	warn := func(s string) string {
		if useColor {
			return warnStyle.Render(s)
		}
		return s
	}

	s := doc.Summary
	lines := []string{
		title("Comparison Results"),
		fmt.Sprintf("Matching IDs: %d", s.MatchingIDsCount),
		fmt.Sprintf("Only in JSON (API): %d", s.JSONOnlyCount),
		fmt.Sprintf("Only in Excel (Manual): %d", s.ExcelOnlyCount),
		"",
		title("Sources"),
	}
	sourceRows := [][]string{
		sourceRow("JSON (API)", s.OriginalCountJSON, s.EmptyIDsJSON, s.DuplicatesJSON, s.TotalJSON),
		sourceRow("Excel (Manual)", s.OriginalCountExcel, s.EmptyIDsExcel, s.DuplicatesExcel, s.TotalExcel),
	}
	lines = append(lines, formatTable(
		[]string{"Source", "Total rows", "Empty IDs", "Duplicate IDs", "Final unique"},
		sourceRows,
		map[int]bool{1: true, 2: true, 3: true, 4: true},
	)...)
	for _, d := range []struct {
		name string
		dup  *model.DuplicateReport
	}{{"JSON (API)", s.DuplicatesJSON}, {"Excel (Manual)", s.DuplicatesExcel}} {
		if d.dup == nil {
			continue
		}
		lines = append(lines, warn(fmt.Sprintf("%s duplicates: %s (max %d appearances)",
			d.name, strings.Join(d.dup.IDs, ", "), d.dup.Appearances)))
	}

	a := doc.AttendanceSummary
	lines = append(lines, "", title("Attendance"))
	lines = append(lines, formatTable(
		[]string{"Group", "Employees", "With shifts", "Total shifts", "Avg shifts", "Avg hours", "Bank account"},
		[][]string{
			groupRow("Matches", a.Matches),
			groupRow("JSON (API) only", a.JSONOnly),
			groupRow("Excel (Manual) only", a.ExcelOnly),
		},
		map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true},
	)...)
	lines = append(lines, "")

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func sourceRow(name string, total, empty int, dup *model.DuplicateReport, unique int) []string {
	dups := 0
	if dup != nil {
		dups = dup.Count
	}
	return []string{
		name,
		fmt.Sprintf("%d", total),
		fmt.Sprintf("%d", empty),
		fmt.Sprintf("%d", dups),
		fmt.Sprintf("%d", unique),
	}
}

func groupRow(name string, st GroupStats) []string {
	bank := "-"
	if st.EmployeesWithBankAccount != nil {
		bank = fmt.Sprintf("%d", *st.EmployeesWithBankAccount)
	}
	return []string{
		name,
		fmt.Sprintf("%d", st.TotalEmployees),
		fmt.Sprintf("%d", st.EmployeesWithShifts),
		fmt.Sprintf("%.0f", st.TotalShifts),
		fmt.Sprintf("%.2f", st.AvgShiftsPerEmployee),
		fmt.Sprintf("%.2f", st.AvgHoursPerShift),
		bank,
	}
}

// ShouldUseColor reports whether w is a terminal and NO_COLOR is unset.
func ShouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
