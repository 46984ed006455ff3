package model

import (
	"bytes"
	"encoding/json"
)

// Field is one named value of a Record.
type Field struct {
	Name  string
	Value any
}

// Record is an ordered mapping from field name to value.
// Values are nil, string, bool, json.Number, json.RawMessage or a Go number.
type Record struct {
	fields []Field
}

// NewRecord builds a record from fields; later duplicates replace earlier ones.
func NewRecord(fields ...Field) Record {
	var r Record
	for _, f := range fields {
		r.Set(f.Name, f.Value)
	}
	return r
}

// Get returns the value stored under name.
func (r Record) Get(name string) (any, bool) {
	for _, f := range r.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Set stores value under name, keeping the original position of an existing field.
func (r *Record) Set(name string, value any) {
	for i := range r.fields {
		if r.fields[i].Name == name {
			r.fields[i].Value = value
			return
		}
	}
	r.fields = append(r.fields, Field{Name: name, Value: value})
}

// Fields returns a copy of the fields in order.
func (r Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.fields)
}

// Clone returns a record that does not share storage with r.
func (r Record) Clone() Record {
	return Record{fields: r.Fields()}
}

// Project returns a record holding exactly columns, in order; absent fields are nil.
func (r Record) Project(columns []string) Record {
	out := Record{fields: make([]Field, 0, len(columns))}
	for _, col := range columns {
		v, _ := r.Get(col)
		out.fields = append(out.fields, Field{Name: col, Value: v})
	}
	return out
}

// MarshalJSON encodes the record as an object with fields in order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeJSON(&buf, f.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeJSON(&buf, f.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeJSON(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// ColumnSet accumulates column names in first-seen order.
type ColumnSet struct {
	names []string
	seen  map[string]struct{}
}

// Add records the names of every field in rec.
func (c *ColumnSet) Add(rec Record) {
	for _, f := range rec.fields {
		c.AddName(f.Name)
	}
}

// AddName records a single column name.
func (c *ColumnSet) AddName(name string) {
	if c.seen == nil {
		c.seen = map[string]struct{}{}
	}
	if _, ok := c.seen[name]; ok {
		return
	}
	c.seen[name] = struct{}{}
	c.names = append(c.names, name)
}

// Names returns the collected column names.
func (c *ColumnSet) Names() []string {
	return append([]string(nil), c.names...)
}
