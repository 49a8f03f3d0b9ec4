// internal/infrastructure/api/ecb_integration_test.go
package api

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestECBIntegration(t *testing.T) {
	// This test makes live calls to the ECB data portal
	if testing.Short() || os.Getenv("ECB_INTEGRATION") == "" {
		t.Skip("Skipping ECB integration test; set ECB_INTEGRATION=1 to run")
	}

	client := NewECBClient(DefaultBaseURL, NewHTTPFetcher(nil, "", nil, nil), logger.NewNopLogger(), nil)
	ctx := context.Background()

	// a Friday with published rates
	date := time.Date(2024, 12, 27, 0, 0, 0, 0, time.UTC)

	rates, err := client.FetchRates(ctx, date, []string{"USD", "GBP", "JPY"})
	require.NoError(t, err)
	for _, currency := range []string{"USD", "GBP", "JPY"} {
		assert.Greater(t, rates[currency], 0.0, currency)
	}

	assert.True(t, client.HasData(ctx, date))
	assert.False(t, client.HasData(ctx, date.AddDate(0, 0, 1)), "Saturday has no reference rates")

	ts, err := client.FetchTimeSeries(ctx, date.AddDate(0, 0, -7), date, []string{"USD"})
	require.NoError(t, err)
	assert.False(t, ts.IsEmpty())
	t.Logf("USD time series dates: %v", ts.Dates())
}
