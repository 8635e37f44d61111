package payments

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	config "github.com/mindmesh/internship_enrollment/configs"
)

const razorpayBaseURL = "https://api.razorpay.com/v1"

// RazorpayService talks to the Razorpay REST API with basic auth. The key
// secret never leaves this package; handlers expose only what the checkout
// widget needs (the public key ID and the order handle).
type RazorpayService struct {
	KeyID     string
	keySecret string
	BaseURL   string
	client    *http.Client
}

func NewRazorpayService() *RazorpayService {
	return &RazorpayService{
		KeyID:     config.Config("RAZORPAY_KEY_ID"),
		keySecret: config.Config("RAZORPAY_KEY_SECRET"),
		BaseURL:   razorpayBaseURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type Order struct {
	ID       string `json:"id"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder registers an order with the provider. Amount is in paise.
func (s *RazorpayService) CreateOrder(amount int, currency, receipt string) (*Order, error) {
	payload := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order payload: %v", err)
	}

	req, err := http.NewRequest("POST", s.BaseURL+"/orders", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create order request: %v", err)
	}
	req.SetBasicAuth(s.KeyID, s.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send order request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("razorpay order API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("failed to decode order response: %v", err)
	}
	return &order, nil
}

// VerifyPaymentSignature checks the checkout success callback: the provider
// signs "orderID|paymentID" with the key secret (HMAC SHA256, hex encoded).
func (s *RazorpayService) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

type ProviderPayment struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	Amount    int    `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
	Method    string `json:"method"`
	Email     string `json:"email"`
	Contact   string `json:"contact"`
	CreatedAt int64  `json:"created_at"`
}

type PaymentList struct {
	Count int               `json:"count"`
	Items []ProviderPayment `json:"items"`
}

type Settlement struct {
	ID        string `json:"id"`
	Amount    int    `json:"amount"`
	Status    string `json:"status"`
	UTR       string `json:"utr"`
	CreatedAt int64  `json:"created_at"`
}

type SettlementList struct {
	Count int          `json:"count"`
	Items []Settlement `json:"items"`
}

// FetchPayments lists provider-side payments for the admin reconcile view.
func (s *RazorpayService) FetchPayments(count, skip int) (*PaymentList, error) {
	var list PaymentList
	if err := s.fetch(fmt.Sprintf("/payments?count=%d&skip=%d", count, skip), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// FetchSettlements lists provider-side settlements.
func (s *RazorpayService) FetchSettlements(count, skip int) (*SettlementList, error) {
	var list SettlementList
	if err := s.fetch(fmt.Sprintf("/settlements?count=%d&skip=%d", count, skip), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *RazorpayService) fetch(path string, out interface{}) error {
	req, err := http.NewRequest("GET", s.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	req.SetBasicAuth(s.KeyID, s.keySecret)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("razorpay API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %v", err)
	}
	return nil
}
