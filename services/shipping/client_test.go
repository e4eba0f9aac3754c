package shipping

import (
    "context"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestResolveFeeAnonymousUserGetsDefault(t *testing.T) {
    c := NewClient(nil, "", 50.00)
    assert.Equal(t, 50.00, c.ResolveFee(context.Background(), ""))
}

func TestFetchRemoteFee(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        assert.Equal(t, http.MethodPost, r.Method)
        assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
        w.Header().Set("Content-Type", "application/json")
        w.Write([]byte(`{"shipping_fee": 75.5}`))
    }))
    defer srv.Close()

    c := NewClient(nil, srv.URL, 50.00)
    fee, err := c.fetchRemoteFee(context.Background(), "user-1")
    require.NoError(t, err)
    assert.Equal(t, 75.5, fee)
}

func TestFetchRemoteFeeRejectsBadResponses(t *testing.T) {
    tests := []struct {
        name   string
        status int
        body   string
    }{
        {"server error", http.StatusInternalServerError, `{}`},
        {"not found", http.StatusNotFound, `{}`},
        {"negative fee", http.StatusOK, `{"shipping_fee": -10}`},
        {"garbage body", http.StatusOK, `not json`},
    }

    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
                w.WriteHeader(tt.status)
                w.Write([]byte(tt.body))
            }))
            defer srv.Close()

            c := NewClient(nil, srv.URL, 50.00)
            _, err := c.fetchRemoteFee(context.Background(), "user-1")
            assert.Error(t, err)
        })
    }
}

// Three consecutive remote failures trip the breaker; once open, lookups
// degrade to the default without hitting the endpoint.
func TestResolveFeeBreakerOpensAfterConsecutiveFailures(t *testing.T) {
    calls := 0
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        calls++
        w.WriteHeader(http.StatusInternalServerError)
    }))
    defer srv.Close()

    c := NewClient(nil, srv.URL, 50.00)

    for i := 0; i < 5; i++ {
        fee, err := c.breaker.Execute(func() (float64, error) {
            return c.fetchRemoteFee(context.Background(), "user-1")
        })
        assert.Error(t, err)
        assert.Zero(t, fee)
    }

    // The breaker stopped forwarding after the third failure.
    assert.Equal(t, 3, calls)
}
