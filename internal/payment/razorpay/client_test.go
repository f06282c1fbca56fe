package razorpay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/harshava123/powderlegacy/internal/config"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(config.RazorpayConfig{KeyID: "rzp_test_key", KeySecret: "secret"}, zap.NewNop())
	c.baseURL = srv.URL
	return c
}

func TestCreatePaymentLink(t *testing.T) {
	var gotAuth string
	var gotReq CreateLinkRequest
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_links", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(PaymentLink{
			ID:       "plink_abc",
			ShortURL: "https://rzp.io/l/abc",
			OrderID:  "order_xyz",
			Status:   "created",
		})
	})

	req := CreateLinkRequest{Amount: 129900, Description: "Order Payment"}
	link, err := c.CreatePaymentLink(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "plink_abc", link.ID)
	assert.Equal(t, "https://rzp.io/l/abc", link.ShortURL)
	assert.Equal(t, "order_xyz", link.OrderID)

	// basic auth carries key id and secret
	assert.Equal(t, "Basic cnpwX3Rlc3Rfa2V5OnNlY3JldA==", gotAuth)
	// currency defaults to INR when unset
	assert.Equal(t, "INR", gotReq.Currency)
	assert.Equal(t, int64(129900), gotReq.Amount)
}

func TestCreatePaymentLinkAPIError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"international cards are not supported"}}`))
	})

	_, err := c.CreatePaymentLink(context.Background(), CreateLinkRequest{Amount: 100})
	var provErr *Error
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusBadRequest, provErr.StatusCode)
	assert.Equal(t, "BAD_REQUEST_ERROR", provErr.Code)
	assert.Equal(t, "international cards are not supported", provErr.Description)
}

func TestCreatePaymentLinkRequiresCredentials(t *testing.T) {
	c := NewClient(config.RazorpayConfig{}, zap.NewNop())
	_, err := c.CreatePaymentLink(context.Background(), CreateLinkRequest{Amount: 100})
	assert.Error(t, err)
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{}`))
	})

	for i := 0; i < 5; i++ {
		_, err := c.CreatePaymentLink(context.Background(), CreateLinkRequest{Amount: 100})
		require.Error(t, err)
	}

	// the breaker is open now; the failure comes back without a round trip
	_, err := c.CreatePaymentLink(context.Background(), CreateLinkRequest{Amount: 100})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}
