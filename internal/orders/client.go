package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"picklist/internal"
	"picklist/internal/config"
)

var ErrRefreshFailed = errors.New("store refresh failed")

type Client struct {
	cfg         config.Config
	httpClient  *http.Client
	limiter     *rate.Limiter
	backoffBase time.Duration
}

// flexBool accepts both true and "true"; the refresh endpoint has returned
// either over time.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	*b = flexBool(strings.EqualFold(s, "true"))
	return nil
}

type refreshResponse struct {
	Success flexBool `json:"success"`
	Message string   `json:"message"`
}

type ordersPage struct {
	Orders []internal.RawOrder `json:"orders"`
	Total  int                 `json:"total"`
	Page   int                 `json:"page"`
	Pages  int                 `json:"pages"`
}

func NewClient(cfg config.Config) *Client {
	rps := cfg.ShippingRateLimitRPS
	if rps <= 0 {
		rps = 1
	}
	burst := cfg.ShippingRateBurst
	if burst <= 0 {
		burst = 1
	}
	return &Client{
		cfg:         cfg,
		httpClient:  &http.Client{Timeout: time.Duration(cfg.ShippingTimeoutMs) * time.Millisecond},
		limiter:     rate.NewLimiter(rate.Limit(rps), burst),
		backoffBase: 250 * time.Millisecond,
	}
}

// RefreshStore asks the shipping platform to pull fresh orders from the
// storefront behind storeID.
func (c *Client) RefreshStore(ctx context.Context, storeID int) error {
	params := url.Values{}
	params.Set("storeId", strconv.Itoa(storeID))

	body, err := c.do(ctx, http.MethodPost, "stores/refreshstore", params)
	if err != nil {
		return fmt.Errorf("%w: store %d: %w", ErrRefreshFailed, storeID, err)
	}

	var resp refreshResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("%w: store %d: %w", ErrRefreshFailed, storeID, err)
	}
	if !resp.Success {
		return fmt.Errorf("%w: store %d: %s", ErrRefreshFailed, storeID, resp.Message)
	}
	return nil
}

// ListOrders returns every order of storeID in the given status, following
// pagination to the end.
func (c *Client) ListOrders(ctx context.Context, storeID int, status string) ([]internal.RawOrder, error) {
	all := make([]internal.RawOrder, 0)
	for page := 1; ; page++ {
		params := url.Values{}
		params.Set("storeId", strconv.Itoa(storeID))
		params.Set("orderStatus", status)
		params.Set("page", strconv.Itoa(page))
		if c.cfg.ShippingPageSize > 0 {
			params.Set("pageSize", strconv.Itoa(c.cfg.ShippingPageSize))
		}

		body, err := c.do(ctx, http.MethodGet, "orders", params)
		if err != nil {
			return nil, err
		}

		var payload ordersPage
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("decode orders page %d: %w", page, err)
		}
		all = append(all, payload.Orders...)

		if len(payload.Orders) == 0 || page >= payload.Pages {
			break
		}
	}
	return all, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, params url.Values) ([]byte, error) {
	if strings.TrimSpace(c.cfg.ShippingAPIKey) == "" || strings.TrimSpace(c.cfg.ShippingAPISecret) == "" {
		return nil, errors.New("missing SHIPPING_API_KEY or SHIPPING_API_SECRET")
	}

	baseURL := strings.TrimRight(c.cfg.ShippingAPIBaseURL, "/") + "/"
	u, err := url.Parse(baseURL + endpoint)
	if err != nil {
		return nil, err
	}
	u.RawQuery = params.Encode()

	attempts := c.cfg.ShippingMaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
		if err != nil {
			return nil, err
		}
		req.SetBasicAuth(c.cfg.ShippingAPIKey, c.cfg.ShippingAPISecret)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			if err := sleep(ctx, c.backoff(attempt, nil)); err != nil {
				return nil, err
			}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			if isRetryableStatus(resp.StatusCode) && attempt < attempts {
				lastErr = fmt.Errorf("shipping api status %d", resp.StatusCode)
				if err := sleep(ctx, c.backoff(attempt, resp.Header)); err != nil {
					return nil, err
				}
				continue
			}
			return nil, fmt.Errorf("shipping api error: %s %s status=%d body=%s", method, endpoint, resp.StatusCode, string(body))
		}

		return body, nil
	}

	if lastErr == nil {
		lastErr = errors.New("shipping api request failed")
	}
	return nil, lastErr
}

// backoff honours Retry-After when the server sends one and falls back to
// exponential delay with jitter.
func (c *Client) backoff(attempt int, header http.Header) time.Duration {
	if header != nil {
		if secs, err := strconv.Atoi(header.Get("Retry-After")); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	jitter := time.Duration(rand.Int63n(int64(c.backoffBase)/2 + 1))
	return c.backoffBase*time.Duration(1<<(attempt-1)) + jitter
}

func isRetryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}
