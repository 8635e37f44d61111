package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService(baseURL string) *RazorpayService {
	return &RazorpayService{
		KeyID:     "rzp_test_key",
		keySecret: "rzp_test_secret",
		BaseURL:   baseURL,
		client:    &http.Client{Timeout: 5 * time.Second},
	}
}

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPaymentSignature(t *testing.T) {
	s := testService("")

	good := sign("rzp_test_secret", "order_9", "pay_9")
	assert.True(t, s.VerifyPaymentSignature("order_9", "pay_9", good))

	assert.False(t, s.VerifyPaymentSignature("order_9", "pay_9", "deadbeef"))
	assert.False(t, s.VerifyPaymentSignature("order_9", "pay_other", good))
	assert.False(t, s.VerifyPaymentSignature("order_9", "pay_9", sign("wrong_secret", "order_9", "pay_9")))
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "rzp_test_secret", pass)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.EqualValues(t, 600000, payload["amount"])
		assert.Equal(t, "INR", payload["currency"])
		assert.Equal(t, "sess-1", payload["receipt"])

		json.NewEncoder(w).Encode(Order{
			ID:       "order_test_1",
			Amount:   600000,
			Currency: "INR",
			Receipt:  "sess-1",
			Status:   "created",
		})
	}))
	defer srv.Close()

	order, err := testService(srv.URL).CreateOrder(600000, "INR", "sess-1")

	require.NoError(t, err)
	assert.Equal(t, "order_test_1", order.ID)
	assert.Equal(t, 600000, order.Amount)
	assert.Equal(t, "created", order.Status)
}

func TestCreateOrderSurfacesProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"description":"Authentication failed"}}`))
	}))
	defer srv.Close()

	_, err := testService(srv.URL).CreateOrder(100, "INR", "sess-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestFetchPayments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("count"))
		assert.Equal(t, "10", r.URL.Query().Get("skip"))

		json.NewEncoder(w).Encode(PaymentList{
			Count: 1,
			Items: []ProviderPayment{{
				ID:      "pay_1",
				OrderID: "order_1",
				Amount:  250000,
				Status:  "captured",
			}},
		})
	}))
	defer srv.Close()

	list, err := testService(srv.URL).FetchPayments(50, 10)

	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "order_1", list.Items[0].OrderID)
	assert.Equal(t, "captured", list.Items[0].Status)
}

func TestFetchSettlements(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/settlements", r.URL.Path)

		json.NewEncoder(w).Encode(SettlementList{
			Count: 1,
			Items: []Settlement{{ID: "setl_1", Amount: 240000, Status: "processed", UTR: "UTR123"}},
		})
	}))
	defer srv.Close()

	list, err := testService(srv.URL).FetchSettlements(10, 0)

	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "setl_1", list.Items[0].ID)
}
