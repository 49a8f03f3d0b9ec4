package sdmx

import (
	"encoding/json"
	"fmt"

	"github.com/damon-houk/ecb-exchange-rates/internal/domain/entity"
)

func parse(body []byte) (*document, error) {
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", entity.ErrMalformedResponse)
	}

	var doc document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrMissingStructure, err)
	}
	return &doc, nil
}

func (d *document) series() (members, error) {
	if len(d.DataSets) == 0 || d.DataSets[0].Series == nil {
		return nil, fmt.Errorf("%w: dataSets[0].series is missing", entity.ErrMissingStructure)
	}
	return *d.DataSets[0].Series, nil
}

func (d *document) currencyDimension() (int, dimension, error) {
	dims := d.Structure.Dimensions.Series
	idx, ok := dimensionIndex(dims, currencyDimension)
	if !ok {
		return 0, dimension{}, fmt.Errorf("%w: dimension %s not found", entity.ErrMissingStructure, currencyDimension)
	}
	return idx, dims[idx], nil
}

// decodeSeries reports false for a series that is not an object or whose
// observations are missing or not an object
func decodeSeries(raw json.RawMessage) (series, bool) {
	var s series
	if err := json.Unmarshal(raw, &s); err != nil || s.Observations == nil {
		return series{}, false
	}
	return s, true
}

// DecodeRates decodes a single-period message into a currency to rate mapping.
// Each series contributes the value of its first observation. Series without a
// resolvable currency or a numeric first value are skipped.
func DecodeRates(body []byte) (map[string]float64, error) {
	doc, err := parse(body)
	if err != nil {
		return nil, err
	}

	entries, err := doc.series()
	if err != nil {
		return nil, err
	}

	pos, dim, err := doc.currencyDimension()
	if err != nil {
		return nil, err
	}

	rates := make(map[string]float64, len(entries))
	for _, entry := range entries {
		currency, ok := seriesValue(entry.Key, pos, dim)
		if !ok {
			continue
		}

		s, ok := decodeSeries(entry.Value)
		if !ok || len(*s.Observations) == 0 {
			continue
		}

		if rate, ok := observationValue((*s.Observations)[0].Value); ok {
			rates[currency] = rate
		}
	}

	return rates, nil
}

// DecodeTimeSeries decodes a multi-period message into a date ordered time series.
//
// Observations are matched to TIME_PERIOD values by their position within the
// series, not by their key. When a series carries more observations than there
// are periods the excess observations are dropped. A non-empty currencies list
// keeps only the listed currencies.
func DecodeTimeSeries(body []byte, currencies []string) (*entity.TimeSeries, error) {
	doc, err := parse(body)
	if err != nil {
		return nil, err
	}

	entries, err := doc.series()
	if err != nil {
		return nil, err
	}

	pos, dim, err := doc.currencyDimension()
	if err != nil {
		return nil, err
	}

	obsDims := doc.Structure.Dimensions.Observation
	timeIdx, ok := dimensionIndex(obsDims, periodDimension)
	if !ok {
		return nil, fmt.Errorf("%w: dimension %s not found", entity.ErrMissingStructure, periodDimension)
	}

	periods := make([]string, 0, len(obsDims[timeIdx].Values))
	for _, v := range obsDims[timeIdx].Values {
		periods = append(periods, v.ID)
	}

	var filter map[string]bool
	if len(currencies) > 0 {
		filter = make(map[string]bool, len(currencies))
		for _, c := range currencies {
			filter[c] = true
		}
	}

	ts := entity.NewPeriodTimeSeries(periods)
	for _, entry := range entries {
		currency, ok := seriesValue(entry.Key, pos, dim)
		if !ok {
			continue
		}
		if filter != nil && !filter[currency] {
			continue
		}

		s, ok := decodeSeries(entry.Value)
		if !ok {
			continue
		}

		for i, obs := range *s.Observations {
			if i >= len(periods) {
				break
			}
			if rate, ok := observationValue(obs.Value); ok {
				ts.Set(periods[i], currency, rate)
			}
		}
	}

	return ts, nil
}
