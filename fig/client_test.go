package fig

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistryServer(t *testing.T, hits *int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		figID := r.URL.Query().Get("figId")
		switch figID {
		case "FIG-100":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{
				"figId": "FIG-100",
				"preferredFirstName": "Ana",
				"preferredLastName": "Silva",
				"gender": "F",
				"country": "BRA",
				"dateOfBirth": "2008-03-15",
				"licenseValid": true
			}]`))
		case "FIG-EMPTY":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[]`))
		case "FIG-BROKEN":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"figId": "FIG-BROKEN", "dateOfBirth": "not-a-date"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestHTTPClientFindByFigID(t *testing.T) {
	var hits int64
	server := newRegistryServer(t, &hits)
	defer server.Close()

	client, err := NewHTTPClient(HTTPClientConfig{BaseURL: server.URL, CacheTTL: time.Minute})
	require.NoError(t, err)

	view, err := client.FindByFigID(context.Background(), "FIG-100")
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, "Ana Silva", view.FullName)
	assert.Equal(t, "BRA", view.Country)
	assert.Equal(t, time.Date(2008, 3, 15, 0, 0, 0, 0, time.UTC), view.BirthDate)
	assert.True(t, view.LicenseValid)
	assert.False(t, view.Local)
}

func TestHTTPClientCachesWithinTTL(t *testing.T) {
	var hits int64
	server := newRegistryServer(t, &hits)
	defer server.Close()

	client, err := NewHTTPClient(HTTPClientConfig{BaseURL: server.URL, CacheTTL: time.Minute})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		view, err := client.FindByFigID(context.Background(), "FIG-100")
		require.NoError(t, err)
		require.NotNil(t, view)
	}
	assert.Equal(t, int64(1), atomic.LoadInt64(&hits), "repeated lookups within TTL must not hit the registry")
}

func TestHTTPClientUnknownAthlete(t *testing.T) {
	var hits int64
	server := newRegistryServer(t, &hits)
	defer server.Close()

	client, err := NewHTTPClient(HTTPClientConfig{BaseURL: server.URL, CacheTTL: time.Minute})
	require.NoError(t, err)

	// 404 и пустой список означают одно и то же: гимнаст не известен.
	view, err := client.FindByFigID(context.Background(), "FIG-404")
	require.NoError(t, err)
	assert.Nil(t, view)

	view, err = client.FindByFigID(context.Background(), "FIG-EMPTY")
	require.NoError(t, err)
	assert.Nil(t, view)
}

func TestHTTPClientInvalidBirthDate(t *testing.T) {
	var hits int64
	server := newRegistryServer(t, &hits)
	defer server.Close()

	client, err := NewHTTPClient(HTTPClientConfig{BaseURL: server.URL, CacheTTL: time.Minute})
	require.NoError(t, err)

	_, err = client.FindByFigID(context.Background(), "FIG-BROKEN")
	assert.Error(t, err)
}

func TestNewHTTPClientRequiresBaseURL(t *testing.T) {
	_, err := NewHTTPClient(HTTPClientConfig{})
	assert.Error(t, err)
}
