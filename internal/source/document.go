package source

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/verte-zerg/rosterdiff/internal/model"
)

// DefaultIDField is the identifier field of the API export.
const DefaultIDField = "id_number"

var errInvalidJSON = errors.New("invalid JSON")

// DecodeDocument extracts the records of the top-level "data" array. A missing
// or null "data" yields no records. Field order and number literals are kept
// as they appear in the document.
func DecodeDocument(data []byte, name string) ([]model.Record, []string, error) {
	if !gjson.ValidBytes(data) {
		return nil, nil, &model.ParseError{Source: name, Err: errInvalidJSON}
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, nil, &model.ParseError{Source: name, Err: errors.New("top-level value is not an object")}
	}
	items := root.Get("data")
	if !items.Exists() || items.Type == gjson.Null {
		return nil, nil, nil
	}
	if !items.IsArray() {
		return nil, nil, &model.ParseError{Source: name, Err: errors.New(`"data" is not an array`)}
	}

	var (
		records []model.Record
		columns model.ColumnSet
		itemErr error
	)
	items.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			itemErr = fmt.Errorf("data[%d] is not an object", len(records))
			return false
		}
		var rec model.Record
		item.ForEach(func(key, value gjson.Result) bool {
			rec.Set(key.String(), jsonValue(value))
			return true
		})
		columns.Add(rec)
		records = append(records, rec)
		return true
	})
	if itemErr != nil {
		return nil, nil, &model.ParseError{Source: name, Err: itemErr}
	}
	return records, columns.Names(), nil
}

func jsonValue(v gjson.Result) any {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Number:
		return json.Number(v.Raw)
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.JSON:
		return json.RawMessage(v.Raw)
	default:
		return nil
	}
}

// LoadAPI builds the roster from an API export document keyed by idField.
// A record without idField counts as an empty identifier.
func LoadAPI(data []byte, idField string) (Result, error) {
	if idField == "" {
		idField = DefaultIDField
	}
	records, columns, err := DecodeDocument(data, "api export")
	if err != nil {
		return Result{}, err
	}
	return finish(records, columns, idField), nil
}
