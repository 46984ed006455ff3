// Package attendance aggregates time punches into per-employee shift statistics.
package attendance

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/verte-zerg/rosterdiff/internal/ident"
	"github.com/verte-zerg/rosterdiff/internal/model"
)

// ErrBadClock is returned for values that are not a valid "HH:MM" time of day.
var ErrBadClock = errors.New("invalid clock value")

const hoursPerDay = 24.0

// ParseClock converts an "HH:MM" time of day to fractional hours.
// Hours take one or two digits (0-23), minutes exactly two (00-59).
func ParseClock(v any) (float64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrBadClock, v)
	}
	s = strings.TrimSpace(s)
	hh, mm, found := strings.Cut(s, ":")
	if !found || len(hh) < 1 || len(hh) > 2 || len(mm) != 2 || !digits(hh) || !digits(mm) {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	return float64(h) + float64(m)/60, nil
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Shift is the outcome of one punch: a duration in hours, or the reason it
// could not be measured.
type Shift struct {
	Employee string
	Hours    float64
	Err      error
}

// Valid reports whether the shift has a measured duration.
func (s Shift) Valid() bool {
	return s.Err == nil
}

// ShiftOf measures a punch record. An end earlier than the start is a shift
// crossing midnight.
func ShiftOf(punch model.Record) Shift {
	v, _ := punch.Get("employee_number")
	employee, _ := ident.Normalize(v)
	shift := Shift{Employee: employee}

	rawStart, _ := punch.Get("t_start")
	start, err := ParseClock(rawStart)
	if err != nil {
		shift.Err = fmt.Errorf("t_start: %w", err)
		return shift
	}
	rawEnd, _ := punch.Get("t_end")
	end, err := ParseClock(rawEnd)
	if err != nil {
		shift.Err = fmt.Errorf("t_end: %w", err)
		return shift
	}
	shift.Hours = Duration(start, end)
	return shift
}

// Duration returns end-start in hours, wrapping across midnight.
func Duration(start, end float64) float64 {
	d := end - start
	if d < 0 {
		d += hoursPerDay
	}
	return d
}
