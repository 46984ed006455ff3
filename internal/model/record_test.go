package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"testing"
)

func TestRecordMarshalKeepsOrderAndUnicode(t *testing.T) {
	rec := NewRecord(
		Field{Name: "שם", Value: "דנה <כהן>"},
		Field{Name: "id_number", Value: json.Number("123")},
		Field{Name: "bank_account", Value: nil},
	)
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `{"שם":"דנה <כהן>","id_number":123,"bank_account":null}` + "\n"
	if buf.String() != want {
		t.Fatalf("unexpected json:\n got %s\nwant %s", buf.String(), want)
	}
}

func TestRecordSetKeepsPosition(t *testing.T) {
	rec := NewRecord(Field{Name: "a", Value: 1}, Field{Name: "b", Value: 2})
	rec.Set("a", 3)
	rec.Set("c", 4)
	fields := rec.Fields()
	if len(fields) != 3 || fields[0].Name != "a" || fields[0].Value != 3 || fields[2].Name != "c" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestRecordProject(t *testing.T) {
	rec := NewRecord(Field{Name: "b", Value: "x"}, Field{Name: "z", Value: "drop"})
	got := rec.Project([]string{"a", "b"}).Fields()
	if len(got) != 2 || got[0].Name != "a" || got[0].Value != nil || got[1].Value != "x" {
		t.Fatalf("unexpected projection: %+v", got)
	}
}

func TestRecordCloneDoesNotAlias(t *testing.T) {
	rec := NewRecord(Field{Name: "a", Value: "1"})
	clone := rec.Clone()
	clone.Set("a", "2")
	if v, _ := rec.Get("a"); v != "1" {
		t.Fatalf("clone modified original: %v", v)
	}
}

func TestColumnSetFirstSeenOrder(t *testing.T) {
	var cols ColumnSet
	cols.Add(NewRecord(Field{Name: "b"}, Field{Name: "a"}))
	cols.Add(NewRecord(Field{Name: "a"}, Field{Name: "c"}))
	names := cols.Names()
	if len(names) != 3 || names[0] != "b" || names[1] != "a" || names[2] != "c" {
		t.Fatalf("unexpected columns: %v", names)
	}
}

func TestErrorsUnwrap(t *testing.T) {
	err := error(&IOError{Op: "read", Path: "x.json", Err: fs.ErrNotExist})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected IOError to unwrap to ErrNotExist")
	}
	var ioErr *IOError
	if !errors.As(err, &ioErr) || ioErr.Path != "x.json" {
		t.Fatalf("expected errors.As to find IOError")
	}
}
