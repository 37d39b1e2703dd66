package bangumi

import (
	"encoding/json"
	"fmt"
)

// Infobox is the semi-structured attribute list attached to a subject:
// an ordered sequence of key/value pairs where the value is either a scalar
// or a list of tagged scalars.
type Infobox []InfoboxField

// InfoboxField is a single key/value pair of an infobox.
type InfoboxField struct {
	Key   string       `json:"key"`
	Value InfoboxValue `json:"value"`
}

// InfoboxValue is an infobox value flattened to its scalar strings.
type InfoboxValue []string

// UnmarshalJSON accepts either a scalar or a `[{"v": scalar}, ...]` list.
func (v *InfoboxValue) UnmarshalJSON(data []byte) error {
	var scalar string
	if err := json.Unmarshal(data, &scalar); err == nil {
		*v = InfoboxValue{scalar}
		return nil
	}

	var tagged []struct {
		V any `json:"v"`
	}
	if err := json.Unmarshal(data, &tagged); err == nil {
		values := make(InfoboxValue, 0, len(tagged))
		for _, item := range tagged {
			values = append(values, scalarString(item.V))
		}
		*v = values
		return nil
	}

	// Non-string scalars (numbers, booleans) show up occasionally.
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = InfoboxValue{scalarString(raw)}
	return nil
}

func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}

// Values collects the values of the requested keys, flattened into a single
// list that preserves the caller-supplied key order rather than the infobox's
// own order. Absent keys contribute nothing; the result is never an error.
func (ib Infobox) Values(keys ...string) []string {
	if len(ib) == 0 {
		return nil
	}

	matches := make(map[string][]string)
	for _, field := range ib {
		for _, key := range keys {
			if field.Key == key {
				matches[key] = append(matches[key], field.Value...)
				break
			}
		}
	}

	var result []string
	for _, key := range keys {
		result = append(result, matches[key]...)
	}
	return result
}

// First returns the first value for the requested keys in key-priority order,
// or the empty string when no key matches.
func (ib Infobox) First(keys ...string) string {
	values := ib.Values(keys...)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
