package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"git.thinkinpower.net/cardmeta/mod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher(t *testing.T) {
	tests := []struct {
		name         string
		statusCode   int
		responseBody string
		wantRanges   int
		expectError  bool
	}{
		{
			name:         "ranges found",
			statusCode:   http.StatusOK,
			responseBody: `{"code":1001,"msg":"ok","data":[{"account_range_low":"6250940000","account_range_high":"6250949999","pan_length":19,"brand":"UNIONPAY","country":"CN"}]}`,
			wantRanges:   1,
		},
		{
			name:       "no ranges",
			statusCode: http.StatusNotFound,
		},
		{
			name:         "service failure code",
			statusCode:   http.StatusOK,
			responseBody: `{"code":1002,"msg":"failed"}`,
			expectError:  true,
		},
		{
			name:         "malformed body",
			statusCode:   http.StatusOK,
			responseBody: `{"code":`,
			expectError:  true,
		},
		{
			name:        "server error",
			statusCode:  http.StatusInternalServerError,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/cardmeta/bins/625094", r.URL.Path)
				assert.Equal(t, "secret", r.Header.Get(APIKeyHeader))
				w.WriteHeader(tt.statusCode)
				if tt.responseBody != "" {
					w.Write([]byte(tt.responseBody))
				}
			}))
			defer server.Close()

			fetcher := NewHTTPFetcher(server.URL+"/", "secret", time.Second)
			ranges, err := fetcher.FetchBINRanges(context.Background(), "625094")
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, ranges, tt.wantRanges)
		})
	}
}

func TestHTTPFetcherDecodesRange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":1001,"msg":"ok","data":[{"account_range_low":"6250940000","account_range_high":"6250949999","pan_length":19,"brand":"UNIONPAY","country":"CN","funding":"DEBIT"}]}`))
	}))
	defer server.Close()

	ranges, err := NewHTTPFetcher(server.URL, "", 0).FetchBINRanges(context.Background(), "625094")
	require.NoError(t, err)
	require.Len(t, ranges, 1)
	assert.Equal(t, mod.BinRange{
		Low: "6250940000", High: "6250949999", PanLength: 19,
		Brand: mod.BrandUnionPay, Country: "CN", Funding: "DEBIT",
	}, ranges[0])
}

func TestHTTPFetcherStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := NewHTTPFetcher(server.URL, "", time.Second).FetchBINRanges(context.Background(), "625094")
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestCacheWithHTTPFetcher(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"code":1001,"msg":"ok","data":[{"account_range_low":"6250940000","account_range_high":"6250949999","pan_length":19,"brand":"UNIONPAY"}]}`))
	}))
	defer server.Close()

	c := New(NewHTTPFetcher(server.URL, "", time.Second))
	_, err := c.RetrieveContext(context.Background(), "6250941")
	require.NoError(t, err)
	assert.Equal(t, 19, c.MostSpecific("6250941006528599008").PanLength)
	assert.Equal(t, int32(1), hits.Load())
}
