package midtrans

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	sandboxSnapURL    = "https://app.sandbox.midtrans.com"
	productionSnapURL = "https://app.midtrans.com"
	sandboxAPIURL     = "https://api.sandbox.midtrans.com"
	productionAPIURL  = "https://api.midtrans.com"
)

// Client talks to the Midtrans Snap and Core APIs. It performs no retries;
// webhook redelivery is the gateway's own behavior.
type Client struct {
	SnapBaseURL string
	APIBaseURL  string
	ServerKey   string
	ClientKey   string
	HTTPClient  *http.Client
}

func NewClient(serverKey, clientKey string, production bool) *Client {
	snapURL := sandboxSnapURL
	apiURL := sandboxAPIURL
	if production {
		snapURL = productionSnapURL
		apiURL = productionAPIURL
	}

	return &Client{
		SnapBaseURL: snapURL,
		APIBaseURL:  apiURL,
		ServerKey:   serverKey,
		ClientKey:   clientKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type TransactionDetails struct {
	OrderID     string  `json:"order_id"`
	GrossAmount float64 `json:"gross_amount"`
}

type ItemDetail struct {
	ID       string  `json:"id"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
}

type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type CustomerDetails struct {
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	BillingAddress  *Address `json:"billing_address,omitempty"`
	ShippingAddress *Address `json:"shipping_address,omitempty"`
}

type CreditCard struct {
	Secure bool `json:"secure"`
}

type Callbacks struct {
	Finish  string `json:"finish,omitempty"`
	Error   string `json:"error,omitempty"`
	Pending string `json:"pending,omitempty"`
}

// SnapRequest is the transaction parameter sent to Snap.
type SnapRequest struct {
	TransactionDetails TransactionDetails `json:"transaction_details"`
	CreditCard         *CreditCard        `json:"credit_card,omitempty"`
	ItemDetails        []ItemDetail       `json:"item_details,omitempty"`
	CustomerDetails    *CustomerDetails   `json:"customer_details,omitempty"`
	Callbacks          *Callbacks         `json:"callbacks,omitempty"`
}

type SnapResponse struct {
	Token         string   `json:"token"`
	RedirectURL   string   `json:"redirect_url"`
	ErrorMessages []string `json:"error_messages,omitempty"`
}

// TransactionStatus is the gateway's view of a transaction, returned by the
// status endpoint and used to interpret webhook notifications.
type TransactionStatus struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
	StatusCode        string `json:"status_code"`
	StatusMessage     string `json:"status_message"`
	GrossAmount       string `json:"gross_amount"`
}

// NotificationPayload is the raw webhook body. Only order_id is trusted; the
// authoritative fields come from a follow-up status lookup.
type NotificationPayload struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
}

// CreateTransaction requests a Snap payment token for the given parameter.
func (c *Client) CreateTransaction(param *SnapRequest) (*SnapResponse, error) {
	jsonData, err := json.Marshal(param)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction parameter: %w", err)
	}

	url := fmt.Sprintf("%s/snap/v1/transactions", c.SnapBaseURL)

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var response SnapResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("snap API returned status %d: %s",
			resp.StatusCode, strings.Join(response.ErrorMessages, "; "))
	}

	return &response, nil
}

// TransactionStatus fetches the current transaction state for an order number.
func (c *Client) TransactionStatus(orderID string) (*TransactionStatus, error) {
	url := fmt.Sprintf("%s/v2/%s/status", c.APIBaseURL, orderID)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var status TransactionStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("status API returned status %d: %s",
			resp.StatusCode, status.StatusMessage)
	}

	return &status, nil
}

// Notification verifies an inbound webhook payload by looking the order up
// on the status endpoint and returning the gateway's answer as the source
// of truth.
func (c *Client) Notification(payload *NotificationPayload) (*TransactionStatus, error) {
	if payload.OrderID == "" {
		return nil, fmt.Errorf("notification payload missing order_id")
	}
	return c.TransactionStatus(payload.OrderID)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	// Midtrans uses Basic auth with the server key as username and an
	// empty password.
	auth := base64.StdEncoding.EncodeToString([]byte(c.ServerKey + ":"))
	req.Header.Set("Authorization", "Basic "+auth)
}
