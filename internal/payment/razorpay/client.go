package razorpay

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/harshava123/powderlegacy/internal/config"
)

const defaultBaseURL = "https://api.razorpay.com"

// Client calls the Razorpay REST API with basic auth. Calls run through a
// circuit breaker so a provider outage fails fast instead of tying up
// checkout requests.
type Client struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*PaymentLink]
	logger     *zap.Logger
}

// NewClient creates a Razorpay API client
func NewClient(cfg config.RazorpayConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	settings := gobreaker.Settings{
		Name:    "razorpay",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &Client{
		baseURL:    defaultBaseURL,
		keyID:      cfg.KeyID,
		keySecret:  cfg.KeySecret,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		breaker:    gobreaker.NewCircuitBreaker[*PaymentLink](settings),
		logger:     logger,
	}
}

// CreateLinkRequest is the payment-link creation payload. Amount is in paise.
type CreateLinkRequest struct {
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description,omitempty"`
	Customer    struct {
		Name    string `json:"name,omitempty"`
		Email   string `json:"email,omitempty"`
		Contact string `json:"contact,omitempty"`
	} `json:"customer"`
	Notify struct {
		SMS   bool `json:"sms"`
		Email bool `json:"email"`
	} `json:"notify"`
	ReminderEnable bool              `json:"reminder_enable"`
	Notes          map[string]string `json:"notes,omitempty"`
	CallbackURL    string            `json:"callback_url,omitempty"`
	CallbackMethod string            `json:"callback_method,omitempty"`
}

// PaymentLink is the relevant slice of the payment-link resource.
type PaymentLink struct {
	ID       string `json:"id"`
	ShortURL string `json:"short_url"`
	OrderID  string `json:"order_id"`
	Status   string `json:"status"`
}

type apiError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// Error is a provider-reported failure with the code and description Razorpay
// returned.
type Error struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *Error) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("razorpay: %s", e.Description)
	}
	return fmt.Sprintf("razorpay: request failed with status %d", e.StatusCode)
}

// CreatePaymentLink creates a hosted payment link the customer completes
// out-of-process; confirmation arrives later on the callback URL.
func (c *Client) CreatePaymentLink(ctx context.Context, req CreateLinkRequest) (*PaymentLink, error) {
	if c.keyID == "" || c.keySecret == "" {
		return nil, fmt.Errorf("razorpay client not configured: key id and secret required")
	}
	if req.Currency == "" {
		req.Currency = "INR"
	}

	return c.breaker.Execute(func() (*PaymentLink, error) {
		return c.doCreateLink(ctx, req)
	})
}

func (c *Client) doCreateLink(ctx context.Context, req CreateLinkRequest) (*PaymentLink, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payment_links", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	auth := base64.StdEncoding.EncodeToString([]byte(c.keyID + ":" + c.keySecret))
	httpReq.Header.Set("Authorization", "Basic "+auth)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("razorpay request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var ae apiError
		_ = json.Unmarshal(respBody, &ae)
		c.logger.Error("Razorpay link creation failed",
			zap.Int("status", resp.StatusCode),
			zap.String("code", ae.Error.Code),
			zap.String("description", ae.Error.Description),
		)
		return nil, &Error{
			StatusCode:  resp.StatusCode,
			Code:        ae.Error.Code,
			Description: ae.Error.Description,
		}
	}

	var link PaymentLink
	if err := json.Unmarshal(respBody, &link); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment link: %w", err)
	}

	c.logger.Info("Razorpay payment link created",
		zap.String("link_id", link.ID),
		zap.String("order_id", link.OrderID),
	)
	return &link, nil
}
