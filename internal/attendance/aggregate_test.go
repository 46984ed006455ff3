package attendance

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/verte-zerg/rosterdiff/internal/model"
)

func TestAggregate(t *testing.T) {
	sum := Aggregate([]model.Record{
		punch("42", "09:00", "17:00"),
		punch(json.Number("7"), "08:00", "12:00"),
		punch("42", "10:00", "14:30"),
		punch(nil, "10:00", "11:00"),
		punch("7", "bad", "12:00"),
	})
	if sum.Punches != 5 || sum.Skipped != 1 || sum.Invalid != 1 {
		t.Fatalf("unexpected counters: %+v", sum)
	}
	if len(sum.Employees) != 2 || sum.Employees[0] != "42" || sum.Employees[1] != "7" {
		t.Fatalf("unexpected employee order: %v", sum.Employees)
	}

	stat := sum.Stats["42"]
	if stat.Shifts != 2 || stat.Measured != 2 || stat.AverageHours == nil || *stat.AverageHours != 6.25 {
		t.Fatalf("unexpected stat for 42: %+v", stat)
	}

	seven, ok := sum.Lookup(7)
	if !ok {
		t.Fatalf("expected lookup by integer employee number")
	}
	if seven.Shifts != 2 || seven.Measured != 1 || *seven.AverageHours != 4 {
		t.Fatalf("unexpected stat for 7: %+v", seven)
	}
}

func TestAggregateNoValidDuration(t *testing.T) {
	sum := Aggregate([]model.Record{punch("1", "", "")})
	stat := sum.Stats["1"]
	if stat.Shifts != 1 || stat.Measured != 0 || stat.AverageHours != nil {
		t.Fatalf("expected counted shift without average, got %+v", stat)
	}
}

func TestRound2(t *testing.T) {
	cases := map[float64]float64{
		6.25:      6.25,
		1.0 / 3.0: 0.33,
		2.675:     2.68,
		7.005:     7.01,
		-1.005:    -1.01,
	}
	for in, want := range cases {
		if got := Round2(in); got != want {
			t.Fatalf("Round2(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestLoad(t *testing.T) {
	sum, err := Load([]byte(`{"data": [{"employee_number": 42, "t_start": "09:00", "t_end": "17:00"}]}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if stat, ok := sum.Lookup("42"); !ok || stat.Shifts != 1 {
		t.Fatalf("unexpected summary: %+v", sum)
	}

	empty, err := Load([]byte(`{}`))
	if err != nil || len(empty.Stats) != 0 {
		t.Fatalf("expected empty summary, got %+v, %v", empty, err)
	}

	_, err = Load([]byte(`{"data": [}`))
	var parseErr *model.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}
