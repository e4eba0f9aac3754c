package shipping

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "log"
    "net/http"
    "time"

    "github.com/sony/gobreaker/v2"

    "arbt-storefront-api/database"
    "arbt-storefront-api/utils"
)

// FeeResolver resolves the per-user service fee applied at checkout. A failed
// or unresolvable lookup never blocks checkout; the default fee applies.
type FeeResolver interface {
    ResolveFee(ctx context.Context, userID string) float64
}

// Client resolves fees from the local user table first and falls back to the
// legacy shipping-fee endpoint when configured. The remote call sits behind a
// circuit breaker so a flaky fee service cannot slow every checkout render.
type Client struct {
    db         *database.Connection
    feeURL     string
    defaultFee float64
    httpClient *http.Client
    breaker    *gobreaker.CircuitBreaker[float64]
}

func NewClient(db *database.Connection, feeURL string, defaultFee float64) *Client {
    settings := gobreaker.Settings{
        Name:    "shipping-fee",
        Timeout: 30 * time.Second,
        ReadyToTrip: func(counts gobreaker.Counts) bool {
            return counts.ConsecutiveFailures >= 3
        },
        OnStateChange: func(name string, from, to gobreaker.State) {
            log.Printf("Circuit breaker %s: %s -> %s", name, from, to)
        },
    }

    return &Client{
        db:         db,
        feeURL:     feeURL,
        defaultFee: defaultFee,
        httpClient: &http.Client{Timeout: 3 * time.Second},
        breaker:    gobreaker.NewCircuitBreaker[float64](settings),
    }
}

// ResolveFee never fails: any error path degrades to the default fee.
func (c *Client) ResolveFee(ctx context.Context, userID string) float64 {
    if userID == "" {
        return c.defaultFee
    }

    if fee, err := c.db.GetUserServiceFee(userID); err == nil {
        return utils.Round(fee)
    }

    if c.feeURL == "" {
        return c.defaultFee
    }

    fee, err := c.breaker.Execute(func() (float64, error) {
        return c.fetchRemoteFee(ctx, userID)
    })
    if err != nil {
        log.Printf("Service fee lookup failed for user %s, using default %.2f: %v",
            userID, c.defaultFee, err)
        return c.defaultFee
    }
    return utils.Round(fee)
}

func (c *Client) fetchRemoteFee(ctx context.Context, userID string) (float64, error) {
    payload, _ := json.Marshal(map[string]string{"user_id": userID})

    req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.feeURL, bytes.NewReader(payload))
    if err != nil {
        return 0, err
    }
    req.Header.Set("Content-Type", "application/json")
    req.Header.Set("Accept", "application/json")

    resp, err := c.httpClient.Do(req)
    if err != nil {
        return 0, err
    }
    defer resp.Body.Close()

    if resp.StatusCode != http.StatusOK {
        return 0, fmt.Errorf("fee endpoint returned status %d", resp.StatusCode)
    }

    var body struct {
        ShippingFee float64 `json:"shipping_fee"`
    }
    if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
        return 0, fmt.Errorf("error decoding fee response: %v", err)
    }
    if body.ShippingFee < 0 {
        return 0, fmt.Errorf("fee endpoint returned negative fee %.2f", body.ShippingFee)
    }
    return body.ShippingFee, nil
}
