// Package fitbank is a client library for FitBank's PIX banking API. The
// root Client validates partner credentials once and hands out one
// operation client per capability (payouts, refunds, collection orders,
// dynamic QR codes, key lookups, account limits, payment orders, payout
// details and receipts), all sharing a single HTTP transport that
// classifies FitBank's body-level errors.
package fitbank

import (
	"net/http"
	"time"

	"github.com/latampay/fitbank-go/logger"
	"github.com/latampay/fitbank-go/metrics"
	"github.com/latampay/fitbank-go/pix"
	"github.com/latampay/fitbank-go/transport"
	"github.com/latampay/fitbank-go/types"
)

// Version is the library release tag.
const Version = "0.1.0"

// Base URLs of the two FitBank environments.
const (
	SandboxBaseURL    = "https://sandboxapi.fitbank.com.br"
	ProductionBaseURL = "https://apiv2.fitbank.com.br"
)

const defaultTimeout = 30 * time.Second

// Client is the entry point of the library. Construct one per partner
// tenant with New; it is safe for concurrent use, as are the operation
// clients it returns.
type Client struct {
	creds     types.Credentials
	transport *transport.Client

	httpClient *http.Client
	logger     logger.Logger
	metrics    metrics.Recorder
	timeout    time.Duration
}

// New validates creds and builds a client against baseURL (use
// SandboxBaseURL or ProductionBaseURL). Options may replace the HTTP
// client, logger and metrics recorder; defaults are a plain http.Client
// with a 30s timeout and noop observability.
func New(baseURL string, creds types.Credentials, opts ...Option) (*Client, error) {
	validated, err := types.NewCredentials(creds)
	if err != nil {
		return nil, err
	}

	c := &Client{
		creds:   validated,
		logger:  logger.NoopLogger{},
		metrics: metrics.NoopRecorder{},
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}

	c.transport = transport.New(baseURL, c.httpClient, c.logger, c.metrics)
	return c, nil
}

// Payouts returns the PixOut transfer client.
func (c *Client) Payouts() *pix.PayoutClient {
	return pix.NewPayoutClient(c.transport, c.creds)
}

// Refunds returns the PixIn refund client.
func (c *Client) Refunds() *pix.RefundClient {
	return pix.NewRefundClient(c.transport, c.creds)
}

// CollectionOrders returns a collection-order client bound to the
// receiving side described by cfg.
func (c *Client) CollectionOrders(cfg pix.CollectionOrderConfig) *pix.CollectionOrderClient {
	return pix.NewCollectionOrderClient(c.transport, c.creds, cfg)
}

// DynamicQrCodes returns a QR code client crediting the given account
// through the given PIX key.
func (c *Client) DynamicQrCodes(receiver types.BankInfo, pixKey string, pixKeyType types.KeyType) *pix.DynamicQrCodeClient {
	return pix.NewDynamicQrCodeClient(c.transport, c.creds, receiver, pixKey, pixKeyType)
}

// Keys returns the PIX key lookup client.
func (c *Client) Keys() *pix.KeyClient {
	return pix.NewKeyClient(c.transport, c.creds)
}

// AccountLimits returns an account-limit client for the given account.
func (c *Client) AccountLimits(bankInfo types.BankInfo) *pix.AccountLimitClient {
	return pix.NewAccountLimitClient(c.transport, c.creds, bankInfo)
}

// PaymentOrders returns a payment-order client sending from the given
// account.
func (c *Client) PaymentOrders(sender types.BankInfo) *pix.PaymentOrderClient {
	return pix.NewPaymentOrderClient(c.transport, c.creds, sender)
}

// PayoutDetails returns a payout-detail client for payouts issued from
// the given account.
func (c *Client) PayoutDetails(bankInfo types.BankInfo) *pix.PayoutDetailClient {
	return pix.NewPayoutDetailClient(c.transport, c.creds, bankInfo)
}

// Receipts returns a PixIn receipt client for the given company account.
func (c *Client) Receipts(companyBankInfo types.BankInfo) *pix.ReceiptClient {
	return pix.NewReceiptClient(c.transport, c.creds, companyBankInfo)
}
