package pix

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/latampay/fitbank-go/transport"
	"github.com/latampay/fitbank-go/types"
	"github.com/latampay/fitbank-go/utils"
)

// RefundClient returns a received PixIn to its payer.
type RefundClient struct {
	api
}

// NewRefundClient builds a refund client over the shared transport.
func NewRefundClient(t *transport.Client, creds types.Credentials) *RefundClient {
	return &RefundClient{api: api{transport: t, creds: creds}}
}

// RefundRequest describes one PixIn refund.
type RefundRequest struct {
	// RequestID is the caller-supplied idempotency key (wire field
	// Identifier).
	RequestID string
	// PayinDocumentNumber is the DocumentNumber of the PixIn being
	// refunded, as delivered in the payin webhook.
	PayinDocumentNumber int64
	ReceiverBankInfo    types.BankInfo
	SenderBankInfo      types.BankInfo
	ReceiverName        string
	ReceiverDocument    string
	Value               decimal.Decimal
}

// Execute requests the refund. Unlike the payout endpoint, this one takes
// the amount as a JSON number (RefundValue); the mismatch mirrors the
// upstream API and must not be unified.
func (c *RefundClient) Execute(ctx context.Context, req RefundRequest) (types.Body, error) {
	doc, err := utils.NewTaxNumber(req.ReceiverDocument)
	if err != nil {
		return nil, err
	}

	value, _ := req.Value.Float64()

	p := c.basePayload(methodGenerateRefundPixIn)
	p["ToTaxNumber"] = doc.String()
	p["ToName"] = req.ReceiverName
	p["ToBank"] = req.ReceiverBankInfo.BankCode
	p["ToBankBranch"] = req.ReceiverBankInfo.BankAgency
	p["ToBankAccount"] = req.ReceiverBankInfo.BankAccount
	p["ToBankAccountDigit"] = req.ReceiverBankInfo.BankAccountDigit
	p["RefundValue"] = value
	p["CustomerMessage"] = ""
	p["Identifier"] = req.RequestID
	p["DocumentNumber"] = req.PayinDocumentNumber
	p["Tags"] = []string{}
	p["TaxNumber"] = c.creds.CNPJ
	merge(p, req.SenderBankInfo.Payload())

	return c.transport.Execute(ctx, methodGenerateRefundPixIn, p, c.creds)
}

// FindByID fetches a refund by the DocumentNumber the bank returned when
// it was requested.
func (c *RefundClient) FindByID(ctx context.Context, id string, senderBankInfo types.BankInfo) (types.Body, error) {
	p := c.basePayload(methodGetRefundPixInByID)
	p["DocumentNumber"] = id
	p["TaxNumber"] = c.creds.CNPJ
	merge(p, senderBankInfo.Payload())

	return c.transport.Execute(ctx, methodGetRefundPixInByID, p, c.creds)
}
