package currency

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hugohenrick/gestor-vendas/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func quoteServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func testLogger(t *testing.T) logger.Logger {
	t.Helper()
	return logger.NewZapLogger(zaptest.NewLogger(t))
}

func TestGetQuoteFromPrimary(t *testing.T) {
	primary := quoteServer(t, http.StatusOK, `{"bid":"5.10","ask":"5.25"}`)
	defer primary.Close()

	client := NewClient(primary.URL, "", testLogger(t))
	defer client.Close()

	quote, err := client.GetQuote(context.Background())
	require.NoError(t, err)

	assert.True(t, quote.Buy.Equal(decimal.RequireFromString("5.10")))
	assert.True(t, quote.Sell.Equal(decimal.RequireFromString("5.25")))
	assert.Equal(t, primary.URL, quote.Source)
}

func TestGetQuoteFallsBackToSecondary(t *testing.T) {
	primary := quoteServer(t, http.StatusInternalServerError, `{}`)
	defer primary.Close()
	fallback := quoteServer(t, http.StatusOK, `{"bid":"5.00","ask":"5.15"}`)
	defer fallback.Close()

	client := NewClient(primary.URL, fallback.URL, testLogger(t))
	defer client.Close()

	quote, err := client.GetQuote(context.Background())
	require.NoError(t, err)

	assert.True(t, quote.Sell.Equal(decimal.RequireFromString("5.15")))
	assert.Equal(t, fallback.URL, quote.Source)
}

func TestGetQuoteUsesCacheWhenProvidersFail(t *testing.T) {
	primary := quoteServer(t, http.StatusOK, `{"bid":"5.10","ask":"5.25"}`)

	client := NewClient(primary.URL, "", testLogger(t))
	defer client.Close()

	first, err := client.GetQuote(context.Background())
	require.NoError(t, err)

	// Derrubar o provedor: a próxima consulta deve servir do cache
	primary.Close()

	cached, err := client.GetQuote(context.Background())
	require.NoError(t, err)
	assert.True(t, cached.Sell.Equal(first.Sell))
	assert.Equal(t, first.FetchedAt, cached.FetchedAt)
}

func TestGetQuoteUnavailable(t *testing.T) {
	primary := quoteServer(t, http.StatusBadGateway, `{}`)
	defer primary.Close()

	client := NewClient(primary.URL, "", testLogger(t))
	defer client.Close()

	_, err := client.GetQuote(context.Background())
	require.ErrorIs(t, err, ErrQuoteUnavailable)
}

func TestGetQuoteRejectsMalformedPayload(t *testing.T) {
	primary := quoteServer(t, http.StatusOK, `{"bid":"abc","ask":"5.25"}`)
	defer primary.Close()

	client := NewClient(primary.URL, "", testLogger(t))
	defer client.Close()

	_, err := client.GetQuote(context.Background())
	require.ErrorIs(t, err, ErrQuoteUnavailable)
}

func TestConvert(t *testing.T) {
	primary := quoteServer(t, http.StatusOK, `{"bid":"5.10","ask":"5.25"}`)
	defer primary.Close()

	client := NewClient(primary.URL, "", testLogger(t))
	defer client.Close()

	converted, err := client.Convert(context.Background(), decimal.RequireFromString("10"))
	require.NoError(t, err)
	assert.True(t, converted.Equal(decimal.RequireFromString("52.50")))
}
