package rates

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-currency-converter/domain"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestService_Latest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		assert.True(t, strings.HasSuffix(req.URL.String(), "/currencies/usd.json"))
		response := `{
			"date": "2024-03-06",
			"usd": {
				"usd": 1,
				"eur": 0.92,
				"inr": 83.1,
				"xyz": 0,
				"nul": null
			}
		}`
		_, _ = rw.Write([]byte(response))
	}))
	defer server.Close()

	s := NewService(server.URL+"/", 5*time.Second)

	snapshot, err := s.Latest(context.Background(), "USD")

	require.NoError(t, err)
	assert.Equal(t, domain.Currency("usd"), snapshot.Base)
	assert.Equal(t, "2024-03-06", snapshot.Date)
	assert.Equal(t, domain.Rates{"usd": 1, "eur": 0.92, "inr": 83.1}, snapshot.Rates)
}

func TestService_LatestFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"date":"2024-03-06","usd":{"eur":0.92}}`},
		{"not found", http.StatusNotFound, `not found`},
		{"not json", http.StatusOK, `<html></html>`},
		{"missing date", http.StatusOK, `{"usd":{"eur":0.92}}`},
		{"date not a string", http.StatusOK, `{"date":20240306,"usd":{"eur":0.92}}`},
		{"missing base", http.StatusOK, `{"date":"2024-03-06","eur":{"usd":1.08}}`},
		{"rate not a number", http.StatusOK, `{"date":"2024-03-06","usd":{"eur":"0.92"}}`},
		{"no usable rates", http.StatusOK, `{"date":"2024-03-06","usd":{"eur":-1}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
				rw.WriteHeader(tt.status)
				_, _ = rw.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewService(server.URL, 5*time.Second).Latest(context.Background(), "usd")

			assert.ErrorIs(t, err, ErrFetch)
		})
	}
}

func TestService_LatestTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		select {
		case <-release:
		case <-req.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	_, err := NewService(server.URL, 1*time.Millisecond).Latest(context.Background(), "usd")

	assert.ErrorIs(t, err, ErrFetch)
	assert.True(t, strings.Contains(err.Error(), "Client.Timeout")) // fragile :-(
}

func TestService_LatestUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewService(url, 5*time.Second).Latest(context.Background(), "usd")

	assert.ErrorIs(t, err, ErrFetch)
}
