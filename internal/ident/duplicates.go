package ident

import (
	"sort"

	"github.com/verte-zerg/rosterdiff/internal/model"
)

// Clean drops records whose key is empty and rewrites the key of the rest to
// its normalized form. It returns the kept records and the number dropped.
func Clean(records []model.Record, key string) ([]model.Record, int) {
	kept := make([]model.Record, 0, len(records))
	dropped := 0
	for _, rec := range records {
		v, _ := rec.Get(key)
		id, ok := Normalize(v)
		if !ok {
			dropped++
			continue
		}
		rec = rec.Clone()
		rec.Set(key, id)
		kept = append(kept, rec)
	}
	return kept, dropped
}

// DetectDuplicates counts normalized key values and reports those seen more
// than once. Empty keys are ignored. It returns nil when every key is unique.
func DetectDuplicates(records []model.Record, key string) *model.DuplicateReport {
	counts := map[string]int{}
	var order []string
	for _, rec := range records {
		v, _ := rec.Get(key)
		id, ok := Normalize(v)
		if !ok {
			continue
		}
		if counts[id] == 0 {
			order = append(order, id)
		}
		counts[id]++
	}

	var ids []string
	for _, id := range order {
		if counts[id] > 1 {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	// Most frequent first; ties keep first-occurrence order.
	sort.SliceStable(ids, func(i, j int) bool {
		return counts[ids[i]] > counts[ids[j]]
	})

	dup := &model.DuplicateReport{
		Count:       len(ids),
		IDs:         ids,
		Counts:      make(map[string]int, len(ids)),
		Appearances: counts[ids[0]],
	}
	for _, id := range ids {
		dup.Counts[id] = counts[id]
	}
	return dup
}

// Dedup keeps the first record for each normalized key, preserving order.
// Records with an empty key are passed through. It returns the kept records
// and the number removed.
func Dedup(records []model.Record, key string) ([]model.Record, int) {
	seen := make(map[string]struct{}, len(records))
	out := make([]model.Record, 0, len(records))
	for _, rec := range records {
		v, _ := rec.Get(key)
		id, ok := Normalize(v)
		if ok {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
		}
		out = append(out, rec)
	}
	return out, len(records) - len(out)
}
