// Package reconcile partitions two rosters by identifier.
package reconcile

import (
	"github.com/verte-zerg/rosterdiff/internal/ident"
	"github.com/verte-zerg/rosterdiff/internal/model"
)

// Suffixes added to a field name present on both sides of a match.
const (
	LeftSuffix  = "_x"
	RightSuffix = "_y"
)

// Match pairs the left and right records sharing an identifier.
type Match struct {
	ID    string
	Left  model.Record
	Right model.Record
}

// Partition is the three-way split of two rosters. Merged.Records[i] is the
// combined record of Matches[i].
type Partition struct {
	Matches   []Match
	Merged    model.Collection
	LeftOnly  model.Collection
	RightOnly model.Collection
}

// Reconcile joins left and right on their identifier fields using exact
// string equality of the normalized identifiers. Matches and LeftOnly follow
// left order, RightOnly follows right order. Both collections are expected to
// hold unique identifiers; records with an empty identifier never match.
func Reconcile(left, right model.Collection) Partition {
	rightByID := make(map[string]int, len(right.Records))
	for i, rec := range right.Records {
		id, ok := key(rec, right.IDField)
		if !ok {
			continue
		}
		if _, dup := rightByID[id]; !dup {
			rightByID[id] = i
		}
	}

	mergedCols, leftNames, rightNames := mergeColumns(left, right)
	part := Partition{
		Merged:    model.Collection{IDField: leftNames[left.IDField], Columns: mergedCols},
		LeftOnly:  model.Collection{IDField: left.IDField, Columns: left.Columns},
		RightOnly: model.Collection{IDField: right.IDField, Columns: right.Columns},
	}

	matched := make(map[string]struct{}, len(left.Records))
	for _, rec := range left.Records {
		id, ok := key(rec, left.IDField)
		j, found := rightByID[id]
		if !ok || !found {
			part.LeftOnly.Records = append(part.LeftOnly.Records, rec)
			continue
		}
		matched[id] = struct{}{}
		other := right.Records[j]
		part.Matches = append(part.Matches, Match{ID: id, Left: rec, Right: other})
		part.Merged.Records = append(part.Merged.Records, merge(rec, other, leftNames, rightNames))
	}

	for _, rec := range right.Records {
		id, ok := key(rec, right.IDField)
		if ok {
			if _, hit := matched[id]; hit {
				continue
			}
		}
		part.RightOnly.Records = append(part.RightOnly.Records, rec)
	}
	return part
}

func key(rec model.Record, field string) (string, bool) {
	v, _ := rec.Get(field)
	return ident.Normalize(v)
}

// mergeColumns lays out left columns then right columns. Names on both sides
// get suffixed, except a shared identifier field name which appears once.
// A suffixed name that is already taken gets the suffix again until it is
// free, so no field is overwritten. Right fields mapped to "" are dropped from
// merged records.
func mergeColumns(left, right model.Collection) ([]string, map[string]string, map[string]string) {
	sharedKey := left.IDField == right.IDField
	taken := make(map[string]struct{}, len(left.Columns)+len(right.Columns)+1)
	for _, c := range left.Columns {
		taken[c] = struct{}{}
	}
	taken[left.IDField] = struct{}{}
	overlap := map[string]struct{}{}
	for _, c := range right.Columns {
		if _, ok := taken[c]; ok && !(sharedKey && c == left.IDField) {
			overlap[c] = struct{}{}
		}
	}
	for _, c := range right.Columns {
		taken[c] = struct{}{}
	}

	leftNames := make(map[string]string, len(left.Columns)+1)
	rightNames := make(map[string]string, len(right.Columns)+1)
	var cols model.ColumnSet
	rename := func(names map[string]string, c, suffix string) {
		name := c
		if _, ok := overlap[c]; ok {
			name = c + suffix
			for {
				if _, used := taken[name]; !used {
					break
				}
				name += suffix
			}
			taken[name] = struct{}{}
		}
		names[c] = name
		cols.AddName(name)
	}
	for _, c := range left.Columns {
		rename(leftNames, c, LeftSuffix)
	}
	if _, ok := leftNames[left.IDField]; !ok {
		rename(leftNames, left.IDField, LeftSuffix)
	}
	for _, c := range right.Columns {
		if sharedKey && c == right.IDField {
			rightNames[c] = ""
			continue
		}
		rename(rightNames, c, RightSuffix)
	}
	return cols.Names(), leftNames, rightNames
}

func merge(left, right model.Record, leftNames, rightNames map[string]string) model.Record {
	var out model.Record
	for _, f := range left.Fields() {
		out.Set(renamed(leftNames, f.Name), f.Value)
	}
	for _, f := range right.Fields() {
		name := renamed(rightNames, f.Name)
		if name == "" {
			continue
		}
		out.Set(name, f.Value)
	}
	return out
}

func renamed(names map[string]string, field string) string {
	if name, ok := names[field]; ok {
		return name
	}
	return field
}
