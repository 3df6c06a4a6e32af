package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/HasnaHasan194/readhaven-checkout/middlewares"
	"github.com/HasnaHasan194/readhaven-checkout/models"
	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
)

// BackendClient talks to the commerce backend's documented endpoints. Calls
// go through a circuit breaker so a dead backend fails fast; there are no
// automatic retries anywhere, retries are always user-initiated.
type BackendClient struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker[*resty.Response]
}

func NewBackendClient(baseURL string) *BackendClient {
	return &BackendClient{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(30 * time.Second),
		breaker: gobreaker.NewCircuitBreaker[*resty.Response](gobreaker.Settings{
			Name:    "commerce-backend",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// request builds an outbound request carrying the caller's bearer token.
func (c *BackendClient) request(ctx context.Context) *resty.Request {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json")
	if identity, ok := middlewares.IdentityFromContext(ctx); ok {
		req.SetHeader("Authorization", "Bearer "+identity.Token)
	}
	return req
}

func (c *BackendClient) execute(call func() (*resty.Response, error)) (*resty.Response, error) {
	resp, err := c.breaker.Execute(call)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() >= 400 {
		return nil, apiError(resp)
	}
	return resp, nil
}

// apiError surfaces the backend's own message when it sent one.
func apiError(resp *resty.Response) error {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err == nil && payload.Message != "" {
		return fmt.Errorf("%s", payload.Message)
	}
	return fmt.Errorf("backend request failed with status %d", resp.StatusCode())
}

// ProceedToCheckout fetches the checkout snapshot: cart lines plus the
// wallet balance authoritative for this session.
func (c *BackendClient) ProceedToCheckout(ctx context.Context) (*models.CheckoutCart, error) {
	resp, err := c.execute(func() (*resty.Response, error) {
		return c.request(ctx).Get("/users/proceedToCheckout")
	})
	if err != nil {
		return nil, fmt.Errorf("checkout snapshot request failed: %w", err)
	}

	var payload struct {
		Cart struct {
			Items []models.CartLineItem `json:"items"`
		} `json:"cart"`
		WalletBalance float64 `json:"walletBalance"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse checkout snapshot: %w", err)
	}

	return &models.CheckoutCart{
		Items:         payload.Cart.Items,
		WalletBalance: payload.WalletBalance,
	}, nil
}

func (c *BackendClient) GetAddresses(ctx context.Context) ([]models.Address, error) {
	resp, err := c.execute(func() (*resty.Response, error) {
		return c.request(ctx).Get("/users/addresses")
	})
	if err != nil {
		return nil, fmt.Errorf("address request failed: %w", err)
	}

	var payload struct {
		Addresses []models.Address `json:"addresses"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse addresses: %w", err)
	}
	return payload.Addresses, nil
}

func (c *BackendClient) GetProfile(ctx context.Context) (*models.UserProfile, error) {
	resp, err := c.execute(func() (*resty.Response, error) {
		return c.request(ctx).Get("/users/profile")
	})
	if err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}

	var payload struct {
		UserDetails models.UserProfile `json:"userDetails"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &payload.UserDetails, nil
}

func (c *BackendClient) GetCoupons(ctx context.Context) ([]models.Coupon, error) {
	resp, err := c.execute(func() (*resty.Response, error) {
		return c.request(ctx).Get("/users/coupons")
	})
	if err != nil {
		return nil, fmt.Errorf("coupon request failed: %w", err)
	}

	var payload struct {
		Coupons []models.Coupon `json:"coupons"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse coupons: %w", err)
	}
	return payload.Coupons, nil
}

// DeductWallet charges the wallet. The backend reports soft failures with
// success=false and 200, so both the status and the flag are checked.
func (c *BackendClient) DeductWallet(ctx context.Context, amount float64, description string) error {
	resp, err := c.execute(func() (*resty.Response, error) {
		return c.request(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(map[string]any{
				"amount":      amount,
				"description": description,
			}).
			Patch("/users/wallet/deduct")
	})
	if err != nil {
		return fmt.Errorf("wallet deduction request failed: %w", err)
	}

	var payload struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return fmt.Errorf("failed to parse wallet response: %w", err)
	}
	if !payload.Success {
		if payload.Message != "" {
			return fmt.Errorf("%s", payload.Message)
		}
		return fmt.Errorf("wallet deduction was not confirmed")
	}
	return nil
}

func (c *BackendClient) PlaceOrder(ctx context.Context, draft models.OrderDraft) (*models.Order, error) {
	resp, err := c.execute(func() (*resty.Response, error) {
		return c.request(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(draft).
			Post("/users/orders")
	})
	if err != nil {
		return nil, fmt.Errorf("order placement request failed: %w", err)
	}

	var payload struct {
		Message  string       `json:"message"`
		NewOrder models.Order `json:"newOrder"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse order response: %w", err)
	}
	return &payload.NewOrder, nil
}
