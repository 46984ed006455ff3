package attendance

import (
	"github.com/shopspring/decimal"

	"github.com/verte-zerg/rosterdiff/internal/ident"
	"github.com/verte-zerg/rosterdiff/internal/model"
	"github.com/verte-zerg/rosterdiff/internal/source"
)

// Summary holds shift statistics keyed by employee number.
type Summary struct {
	Stats     map[string]model.ShiftStat
	Employees []string
	Punches   int
	Invalid   int
	Skipped   int
}

// Load aggregates the punches of an attendance feed document. A document
// without "data" yields an empty summary.
func Load(data []byte) (Summary, error) {
	punches, _, err := source.DecodeDocument(data, "attendance feed")
	if err != nil {
		return Summary{}, err
	}
	return Aggregate(punches), nil
}

// Aggregate groups punches by employee number. Every punch of an employee is
// counted in Shifts; only punches with a valid duration count toward Measured
// and the average. Punches without an employee number are skipped.
func Aggregate(punches []model.Record) Summary {
	sum := Summary{Stats: map[string]model.ShiftStat{}}
	totals := map[string]float64{}
	for _, punch := range punches {
		sum.Punches++
		shift := ShiftOf(punch)
		if shift.Employee == "" {
			sum.Skipped++
			continue
		}
		stat, ok := sum.Stats[shift.Employee]
		if !ok {
			stat.EmployeeNumber = shift.Employee
			sum.Employees = append(sum.Employees, shift.Employee)
		}
		stat.Shifts++
		if shift.Valid() {
			stat.Measured++
			totals[shift.Employee] += shift.Hours
		} else {
			sum.Invalid++
		}
		sum.Stats[shift.Employee] = stat
	}

	for id, stat := range sum.Stats {
		if stat.Measured == 0 {
			continue
		}
		avg := Round2(totals[id] / float64(stat.Measured))
		stat.AverageHours = &avg
		sum.Stats[id] = stat
	}
	return sum
}

// Lookup returns the statistic for an employee number of any primitive type.
func (s Summary) Lookup(employee any) (model.ShiftStat, bool) {
	id, ok := ident.Normalize(employee)
	if !ok {
		return model.ShiftStat{}, false
	}
	stat, ok := s.Stats[id]
	return stat, ok
}

// Round2 rounds to two decimal places, halves away from zero.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
