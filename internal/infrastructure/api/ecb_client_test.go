package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/damon-houk/ecb-exchange-rates/internal/domain/entity"
	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/logger"
	"github.com/damon-houk/ecb-exchange-rates/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const usdGbpMessage = `{
  "dataSets": [{"series": {
    "0:0:0:0:0": {"observations": {"0": [1.0444]}},
    "0:1:0:0:0": {"observations": {"0": [0.82968]}}
  }}],
  "structure": {"dimensions": {
    "series": [
      {"id": "FREQ", "values": [{"id": "D"}]},
      {"id": "CURRENCY", "values": [{"id": "USD"}, {"id": "GBP"}]},
      {"id": "CURRENCY_DENOM", "values": [{"id": "EUR"}]},
      {"id": "EXR_TYPE", "values": [{"id": "SP00"}]},
      {"id": "EXR_SUFFIX", "values": [{"id": "A"}]}
    ],
    "observation": [{"id": "TIME_PERIOD", "values": [{"id": "2024-12-27"}]}]
  }}
}`

const emptyMessage = `{"dataSets": [{"series": {}}], "structure": {"dimensions": {"series": [{"id": "CURRENCY", "values": []}]}}}`

func TestECBClientFetchRates(t *testing.T) {
	date := time.Date(2024, 12, 27, 0, 0, 0, 0, time.UTC)

	t.Run("queries the dataflow and decodes the body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/EXR/D.USD+GBP.EUR.SP00.A", r.URL.Path)
			assert.Equal(t, "2024-12-27", r.URL.Query().Get("startPeriod"))
			assert.Equal(t, "2024-12-27", r.URL.Query().Get("endPeriod"))
			assert.Equal(t, "jsondata", r.URL.Query().Get("format"))
			w.Write([]byte(usdGbpMessage))
		}))
		defer server.Close()

		fetcher := NewHTTPFetcher(server.Client(), "", logger.NewNopLogger(), nil)
		client := NewECBClient(server.URL+"/EXR", fetcher, logger.NewNopLogger(), nil)

		rates, err := client.FetchRates(context.Background(), date, []string{"USD", "GBP"})

		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"USD": 1.0444, "GBP": 0.82968}, rates)
	})

	t.Run("fetch errors propagate unchanged", func(t *testing.T) {
		fetcher := new(mocks.MockFetcher)
		upstream := errors.New("boom")
		fetcher.On("Get", mock.Anything, mock.Anything).Return(nil, upstream)

		client := NewECBClient("", fetcher, logger.NewNopLogger(), nil)
		_, err := client.FetchRates(context.Background(), date, []string{"USD"})

		assert.Same(t, upstream, err)
		fetcher.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		fetcher := new(mocks.MockFetcher)
		fetcher.On("Get", mock.Anything, mock.Anything).Return([]byte("<html/>"), nil)

		client := NewECBClient("", fetcher, logger.NewNopLogger(), nil)
		_, err := client.FetchRates(context.Background(), date, []string{"USD"})

		assert.ErrorIs(t, err, entity.ErrMalformedResponse)
	})
}

func TestECBClientFetchTimeSeries(t *testing.T) {
	fetcher := new(mocks.MockFetcher)
	expectedURL := "https://data-api.ecb.europa.eu/service/data/EXR/D.GBP.EUR.SP00.A?startPeriod=2024-12-27&endPeriod=2024-12-27&format=jsondata"
	fetcher.On("Get", mock.Anything, expectedURL).Return([]byte(usdGbpMessage), nil)

	client := NewECBClient("", fetcher, logger.NewNopLogger(), nil)
	date := time.Date(2024, 12, 27, 0, 0, 0, 0, time.UTC)

	ts, err := client.FetchTimeSeries(context.Background(), date, date, []string{"GBP"})

	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"GBP": 0.82968}, ts.Rates("2024-12-27"))
	fetcher.AssertExpectations(t)
}

func TestECBClientHasData(t *testing.T) {
	date := time.Date(2024, 12, 27, 0, 0, 0, 0, time.UTC)
	probeURL := RatesURL(DefaultBaseURL, date, []string{"USD"})

	tests := []struct {
		name string
		body []byte
		err  error
		want bool
	}{
		{"published", []byte(usdGbpMessage), nil, true},
		{"empty series", []byte(emptyMessage), nil, false},
		{"upstream failure", nil, entity.ErrUpstream, false},
		{"malformed", []byte("{"), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := new(mocks.MockFetcher)
			fetcher.On("Get", mock.Anything, probeURL).Return(tt.body, tt.err).Once()

			client := NewECBClient("", fetcher, logger.NewNopLogger(), nil)

			assert.Equal(t, tt.want, client.HasData(context.Background(), date))
			fetcher.AssertExpectations(t)
		})
	}
}
