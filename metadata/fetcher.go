package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"git.thinkinpower.net/cardmeta/mod"
	"github.com/pkg/errors"
)

// Fetcher looks up the precise ranges known for a six digit prefix. An
// empty result with a nil error means the prefix has no ranges beyond the
// ones already known.
type Fetcher interface {
	FetchBINRanges(ctx context.Context, prefix string) ([]mod.BinRange, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, prefix string) ([]mod.BinRange, error)

func (f FetcherFunc) FetchBINRanges(ctx context.Context, prefix string) ([]mod.BinRange, error) {
	return f(ctx, prefix)
}

var ErrUnexpectedStatus = errors.New("unexpected status code")

const (
	DefaultFetchTimeout = 10 * time.Second
	APIKeyHeader        = "X-Api-Key"
)

// HTTPFetcher fetches ranges from a bindb card metadata service.
type HTTPFetcher struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPFetcher(baseURL, apiKey string, timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &HTTPFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type rangesResponse struct {
	mod.ResponseValue
	Data []mod.BinRange `json:"data"`
}

func (f *HTTPFetcher) FetchBINRanges(ctx context.Context, prefix string) ([]mod.BinRange, error) {
	endpoint := fmt.Sprintf("%s/cardmeta/bins/%s", f.baseURL, url.PathEscape(prefix))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "create request for prefix %s", prefix)
	}
	req.Header.Set("Accept", "application/json")
	if f.apiKey != "" {
		req.Header.Set(APIKeyHeader, f.apiKey)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch ranges for prefix %s", prefix)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var body rangesResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, errors.Wrapf(err, "decode ranges for prefix %s", prefix)
		}
		if body.Code != mod.ResponseCodeSuccess {
			return nil, errors.Errorf("ranges for prefix %s: service answered %d %s", prefix, body.Code, body.Msg)
		}
		return body.Data, nil
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, errors.Wrapf(ErrUnexpectedStatus, "prefix %s: %d", prefix, resp.StatusCode)
	}
}
