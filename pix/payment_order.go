package pix

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/latampay/fitbank-go/transport"
	"github.com/latampay/fitbank-go/types"
	"github.com/latampay/fitbank-go/utils"
)

// PaymentOrderClient schedules payment orders out of one fixed sender
// account. Orders settle on their payment date instead of immediately.
type PaymentOrderClient struct {
	api
	senderBankInfo types.BankInfo
}

// NewPaymentOrderClient builds a payment-order client over the shared
// transport.
func NewPaymentOrderClient(t *transport.Client, creds types.Credentials, sender types.BankInfo) *PaymentOrderClient {
	return &PaymentOrderClient{
		api:            api{transport: t, creds: creds},
		senderBankInfo: sender,
	}
}

// GeneratePaymentOrderRequest describes one scheduled payment. Exactly
// one of ReceiverPixKey or ReceiverBankInfo must be set.
type GeneratePaymentOrderRequest struct {
	// RequestID is the caller-supplied idempotency key (wire field
	// Identifier).
	RequestID        string
	ReceiverName     string
	ReceiverDocument string
	Value            decimal.Decimal
	PaymentDate      time.Time
	ReceiverPixKey   string
	ReceiverBankInfo *types.BankInfo
}

// Generate schedules the payment. Returns ErrReceiverAccountAmbiguous
// before touching the network when the receiver is addressed by both a
// PIX key and bank coordinates, or by neither.
func (c *PaymentOrderClient) Generate(ctx context.Context, req GeneratePaymentOrderRequest) (types.Body, error) {
	if (req.ReceiverPixKey == "") == (req.ReceiverBankInfo == nil) {
		return nil, ErrReceiverAccountAmbiguous
	}

	doc, err := utils.NewTaxNumber(req.ReceiverDocument)
	if err != nil {
		return nil, err
	}

	value, _ := req.Value.Float64()

	accountInfo := map[string]any{"TaxNumber": doc.String()}
	if req.ReceiverPixKey != "" {
		accountInfo["PixKey"] = req.ReceiverPixKey
	} else {
		merge(accountInfo, req.ReceiverBankInfo.Payload())
	}

	p := c.basePayload(methodGeneratePaymentOrder)
	p["Identifier"] = req.RequestID
	p["Value"] = value
	p["PaymentDate"] = req.PaymentDate.Format("2006/01/02")
	p["Beneficiary"] = map[string]any{
		"Name":        req.ReceiverName,
		"AccountInfo": accountInfo,
	}
	p["Payer"] = merge(map[string]any{
		"TaxNumber": c.creds.CNPJ,
	}, c.senderBankInfo.Payload())

	return c.transport.Execute(ctx, methodGeneratePaymentOrder, p, c.creds)
}

// GetByID fetches a payment order by the PaymentOrderId returned from
// Generate. Unlike the other query endpoints this one wants no account
// identity, only the order id.
func (c *PaymentOrderClient) GetByID(ctx context.Context, id string) (types.Body, error) {
	p := c.basePayload(methodGetPaymentOrder)
	p["PaymentOrderId"] = id

	return c.transport.Execute(ctx, methodGetPaymentOrder, p, c.creds)
}
