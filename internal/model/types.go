// Package model defines shared data structures.
package model

// Config defines the inputs and output of a reconciliation run.
type Config struct {
	APIPath        string
	SheetPath      string
	SheetName      string
	AttendancePath string
	IDField        string
	OutputPath     string
}

// Collection is a normalized set of records sharing one identifier field.
type Collection struct {
	IDField string
	Columns []string
	Records []Record
}

// Len returns the number of records.
func (c Collection) Len() int {
	return len(c.Records)
}

// HasColumn reports whether name is one of the collection columns.
func (c Collection) HasColumn(name string) bool {
	for _, col := range c.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// DuplicateReport describes identifiers seen more than once before de-duplication.
type DuplicateReport struct {
	Count       int            `json:"count"`
	IDs         []string       `json:"ids"`
	Counts      map[string]int `json:"counts"`
	Appearances int            `json:"appearances"`
}

// ShiftStat summarizes attendance punches for one employee.
type ShiftStat struct {
	EmployeeNumber string
	Shifts         int
	Measured       int
	AverageHours   *float64
}
