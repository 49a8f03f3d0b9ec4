package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/damon-houk/ecb-exchange-rates/internal/domain/entity"
)

// DefaultBaseURL is the EXR dataflow of the ECB data portal
const DefaultBaseURL = "https://data-api.ecb.europa.eu/service/data/EXR"

// RatesURL builds the query for the daily reference rates of currencies on a
// single date. An empty list requests the default currencies.
func RatesURL(baseURL string, date time.Time, currencies []string) string {
	return TimeSeriesURL(baseURL, date, date, currencies)
}

// TimeSeriesURL builds the query for the daily reference rates of currencies
// between start and end inclusive. Dates are formatted in their own location.
func TimeSeriesURL(baseURL string, start, end time.Time, currencies []string) string {
	if len(currencies) == 0 {
		currencies = entity.DefaultCurrencies()
	}

	return fmt.Sprintf("%s/D.%s.EUR.SP00.A?startPeriod=%s&endPeriod=%s&format=jsondata",
		strings.TrimRight(baseURL, "/"),
		strings.Join(currencies, "+"),
		start.Format(entity.DateLayout),
		end.Format(entity.DateLayout))
}
