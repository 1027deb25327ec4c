package mfapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fundtrack/src/clients/mfapi"
	"fundtrack/src/utils"
	"fundtrack/src/utils/requests"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *mfapi.MFAPIServiceClient {
	return &mfapi.MFAPIServiceClient{
		API:          requests.NewExternalAPIService(2 * time.Second),
		BaseURL:      baseURL,
		CacheHandler: utils.NewMemoryCacheHandler(),
	}
}

func newJSONServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestGetLatestNav(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name string
		body string
	}{
		{
			name: "nested record list",
			body: `{"data":[{"nav":"25.47","date":"27-08-2026"},{"nav":"25.10","date":"26-08-2026"}]}`,
		},
		{
			name: "bare record array",
			body: `[{"nav":"25.47","date":"27-08-2026"}]`,
		},
		{
			name: "direct record with string nav",
			body: `{"nav":"25.47","date":"27-08-2026"}`,
		},
		{
			name: "direct record with numeric nav",
			body: `{"nav":25.47,"date":"27-08-2026"}`,
		},
		{
			name: "paged records",
			body: `{"totalRecords":2,"data":[{"nav":"25.47","date":"27-08-2026"},{"nav":"25.10","date":"26-08-2026"}]}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := newJSONServer(t, http.StatusOK, tc.body)
			client := newTestClient(server.URL)

			entry, err := client.GetLatestNav(ctx, 120503)

			require.NoError(t, err)
			assert.Equal(t, 25.47, entry.Nav)
			assert.Equal(t, "27-08-2026", entry.Date)
		})
	}

	t.Run("rejects non-numeric nav", func(t *testing.T) {
		server := newJSONServer(t, http.StatusOK, `{"nav":"N.A.","date":"27-08-2026"}`)
		client := newTestClient(server.URL)

		_, err := client.GetLatestNav(ctx, 120503)
		assert.ErrorIs(t, err, mfapi.ErrMalformed)
	})

	t.Run("rejects a record without a date", func(t *testing.T) {
		server := newJSONServer(t, http.StatusOK, `{"data":[{"nav":"25.47"}]}`)
		client := newTestClient(server.URL)

		_, err := client.GetLatestNav(ctx, 120503)
		assert.ErrorIs(t, err, mfapi.ErrMalformed)
	})

	t.Run("rejects an unknown response shape", func(t *testing.T) {
		server := newJSONServer(t, http.StatusOK, `{"status":"ok"}`)
		client := newTestClient(server.URL)

		_, err := client.GetLatestNav(ctx, 120503)
		assert.ErrorIs(t, err, mfapi.ErrMalformed)
	})

	t.Run("maps 404 to ErrNotFound", func(t *testing.T) {
		server := newJSONServer(t, http.StatusNotFound, `{}`)
		client := newTestClient(server.URL)

		_, err := client.GetLatestNav(ctx, 99999999)
		assert.ErrorIs(t, err, mfapi.ErrNotFound)
	})

	t.Run("maps server errors to ErrUnreachable", func(t *testing.T) {
		server := newJSONServer(t, http.StatusBadGateway, `{}`)
		client := newTestClient(server.URL)

		_, err := client.GetLatestNav(ctx, 120503)
		assert.ErrorIs(t, err, mfapi.ErrUnreachable)
	})

	t.Run("maps connection failures to ErrUnreachable", func(t *testing.T) {
		server := newJSONServer(t, http.StatusOK, `{}`)
		server.Close()
		client := newTestClient(server.URL)

		_, err := client.GetLatestNav(ctx, 120503)
		assert.ErrorIs(t, err, mfapi.ErrUnreachable)
	})
}

func TestGetFundDetails(t *testing.T) {
	ctx := context.Background()

	t.Run("prefers the meta block", func(t *testing.T) {
		server := newJSONServer(t, http.StatusOK,
			`{"meta":{"scheme_code":120503,"scheme_name":"Axis Bluechip Fund","fund_house":"Axis Mutual Fund","scheme_type":"Open Ended","scheme_category":"Equity"},"data":[]}`)
		client := newTestClient(server.URL)

		details, err := client.GetFundDetails(ctx, 120503)

		require.NoError(t, err)
		assert.Equal(t, "Axis Bluechip Fund", details.SchemeName)
		assert.Equal(t, "Axis Mutual Fund", details.FundHouse)
		assert.Equal(t, "Open Ended", details.SchemeType)
		assert.Equal(t, "Equity", details.SchemeCategory)
	})

	t.Run("falls back to the top-level scheme name", func(t *testing.T) {
		server := newJSONServer(t, http.StatusOK, `{"schemeName":"HDFC Index Fund"}`)
		client := newTestClient(server.URL)

		details, err := client.GetFundDetails(ctx, 119063)

		require.NoError(t, err)
		assert.Equal(t, "HDFC Index Fund", details.SchemeName)
	})

	t.Run("reports ErrNotFound when no name is present", func(t *testing.T) {
		server := newJSONServer(t, http.StatusOK, `{"data":[]}`)
		client := newTestClient(server.URL)

		_, err := client.GetFundDetails(ctx, 120503)
		assert.ErrorIs(t, err, mfapi.ErrNotFound)
	})

	t.Run("serves repeat lookups from cache", func(t *testing.T) {
		server := newJSONServer(t, http.StatusOK, `{"schemeName":"HDFC Index Fund"}`)
		client := newTestClient(server.URL)

		_, err := client.GetFundDetails(ctx, 119063)
		require.NoError(t, err)

		// With the upstream gone, only the cache can answer.
		server.Close()
		details, err := client.GetFundDetails(ctx, 119063)

		require.NoError(t, err)
		assert.Equal(t, "HDFC Index Fund", details.SchemeName)
	})
}

func TestGetNavHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("returns entries up to the limit, skipping bad rows", func(t *testing.T) {
		server := newJSONServer(t, http.StatusOK,
			`{"data":[{"nav":"25.47","date":"27-08-2026"},{"nav":"N.A.","date":"26-08-2026"},{"nav":"25.10","date":"25-08-2026"},{"nav":"24.90","date":"24-08-2026"}]}`)
		client := newTestClient(server.URL)

		entries, err := client.GetNavHistory(ctx, 120503, 2)

		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, mfapi.NavEntry{Nav: 25.47, Date: "27-08-2026"}, entries[0])
		assert.Equal(t, mfapi.NavEntry{Nav: 25.10, Date: "25-08-2026"}, entries[1])
	})
}

func TestListFunds(t *testing.T) {
	ctx := context.Background()

	t.Run("parses and caches the master list", func(t *testing.T) {
		server := newJSONServer(t, http.StatusOK,
			`[{"schemeCode":120503,"schemeName":"Axis Bluechip Fund","fundHouse":"Axis Mutual Fund"},{"schemeCode":119063,"schemeName":"HDFC Index Fund","fundHouse":"HDFC Mutual Fund"}]`)
		client := newTestClient(server.URL)

		funds, err := client.ListFunds(ctx)
		require.NoError(t, err)
		require.Len(t, funds, 2)
		assert.Equal(t, 120503, funds[0].SchemeCode)
		assert.Equal(t, "Axis Bluechip Fund", funds[0].SchemeName)

		server.Close()
		cached, err := client.ListFunds(ctx)
		require.NoError(t, err)
		assert.Equal(t, funds, cached)
	})
}
