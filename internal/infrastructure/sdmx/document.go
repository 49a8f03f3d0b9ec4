// Package sdmx decodes the publisher's SDMX-JSON data messages.
//
// Series and observations are keyed by dimension ordinals. Series keys join one
// ordinal per series dimension with ':', and observation keys index the
// observation dimension. Member order of the series and observation objects is
// significant, so those two objects are decoded into ordered member lists.
package sdmx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	currencyDimension = "CURRENCY"
	periodDimension   = "TIME_PERIOD"
)

type document struct {
	DataSets  []dataSet `json:"dataSets"`
	Structure structure `json:"structure"`
}

type dataSet struct {
	Series *members `json:"series"`
}

type structure struct {
	Dimensions struct {
		Series      []dimension `json:"series"`
		Observation []dimension `json:"observation"`
	} `json:"dimensions"`
}

type dimension struct {
	ID     string  `json:"id"`
	Values []value `json:"values"`
}

type value struct {
	ID string `json:"id"`
}

type series struct {
	Observations *members `json:"observations"`
}

type member struct {
	Key   string
	Value json.RawMessage
}

// members is a JSON object decoded in document order
type members []member

func (m *members) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	var out members
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		out = append(out, member{Key: key, Value: raw})
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = out
	return nil
}

// dimensionIndex returns the position of the dimension with the given id
func dimensionIndex(dims []dimension, id string) (int, bool) {
	for i, d := range dims {
		if d.ID == id {
			return i, true
		}
	}
	return -1, false
}

// seriesValue resolves the value id a series key points at for the dimension at pos.
// Keys that are too short or carry an unknown ordinal resolve to nothing.
func seriesValue(key string, pos int, dim dimension) (string, bool) {
	parts := strings.Split(key, ":")
	if pos >= len(parts) {
		return "", false
	}

	ordinal, err := strconv.Atoi(parts[pos])
	if err != nil || ordinal < 0 || ordinal >= len(dim.Values) {
		return "", false
	}

	id := dim.Values[ordinal].ID
	return id, id != ""
}

// observationValue reads the numeric first element of an observation tuple.
// Null and non-numeric values yield false.
func observationValue(raw json.RawMessage) (float64, bool) {
	var tuple []json.RawMessage
	if err := json.Unmarshal(raw, &tuple); err != nil || len(tuple) == 0 {
		return 0, false
	}

	first := bytes.TrimSpace(tuple[0])
	if len(first) == 0 || bytes.Equal(first, []byte("null")) {
		return 0, false
	}

	var number float64
	if err := json.Unmarshal(first, &number); err == nil {
		return number, true
	}

	var text string
	if err := json.Unmarshal(first, &text); err != nil {
		return 0, false
	}
	number, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, false
	}
	return number, true
}
