package pix

import (
	"context"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/latampay/fitbank-go/transport"
	"github.com/latampay/fitbank-go/types"
	"github.com/latampay/fitbank-go/utils"
)

// PayoutClient performs PixOut transfers, either manual (full bank
// account coordinates) or addressed by a previously looked-up PIX key.
type PayoutClient struct {
	api
	now func() time.Time
}

// NewPayoutClient builds a payout client over the shared transport.
func NewPayoutClient(t *transport.Client, creds types.Credentials) *PayoutClient {
	return &PayoutClient{
		api: api{transport: t, creds: creds},
		now: time.Now,
	}
}

// ManualPayoutRequest is a transfer addressed by raw bank coordinates.
type ManualPayoutRequest struct {
	// RequestID is the caller-supplied idempotency key (wire field
	// Identifier). The bank accepts at most one request per identifier;
	// keep it stable per logical business operation.
	RequestID        string
	ReceiverBankInfo types.BankInfo
	SenderBankInfo   types.BankInfo
	ReceiverName     string
	ReceiverDocument string
	Value            decimal.Decimal
}

// KeyPayoutRequest is a transfer addressed by a PIX key. Receiver name,
// document, account and the SearchProtocol correlation token all come
// from the lookup result.
type KeyPayoutRequest struct {
	RequestID      string
	SenderBankInfo types.BankInfo
	KeyInfo        types.PixKeyInfo
	Value          decimal.Decimal
}

// Manual performs a manual PixOut. PixKey, PixKeyType and SearchProtocol
// are sent as explicit nulls: the docs claim empty string + type 0, but
// FitBank confirmed the nulls are required for manual transfers.
func (c *PayoutClient) Manual(ctx context.Context, req ManualPayoutRequest) (types.Body, error) {
	doc, err := utils.NewTaxNumber(req.ReceiverDocument)
	if err != nil {
		return nil, err
	}

	p := c.payoutPayload(req.RequestID, req.SenderBankInfo, req.ReceiverBankInfo, req.ReceiverName, doc.String(), req.Value)
	p["PixKey"] = nil
	p["PixKeyType"] = nil
	p["SearchProtocol"] = nil

	return c.transport.Execute(ctx, methodGeneratePixOut, p, c.creds)
}

// ByPixKey performs a PixOut addressed by the key described in
// req.KeyInfo. SearchProtocol is forwarded exactly as the lookup returned
// it; the bank sends it as an integer or a string with no pattern and
// expects it back unchanged.
func (c *PayoutClient) ByPixKey(ctx context.Context, req KeyPayoutRequest) (types.Body, error) {
	info := req.KeyInfo
	p := c.payoutPayload(req.RequestID, req.SenderBankInfo, info.BankInfo, info.Name, info.TaxNumber, req.Value)
	p["PixKey"] = info.PixKey
	p["PixKeyType"] = info.KeyType
	p["SearchProtocol"] = info.SearchProtocol

	return c.transport.Execute(ctx, methodGeneratePixOut, p, c.creds)
}

// payoutPayload assembles the fields shared by both payout modes. The
// value travels as a fixed-point decimal string to avoid binary float
// precision loss.
func (c *PayoutClient) payoutPayload(requestID string, sender, receiver types.BankInfo, receiverName, receiverDocument string, value decimal.Decimal) map[string]any {
	p := c.basePayload(methodGeneratePixOut)
	p["TaxNumber"] = c.creds.CNPJ
	p["ToTaxNumber"] = receiverDocument
	p["ToName"] = receiverName
	p["ToBank"] = receiver.BankCode
	p["ToBankBranch"] = receiver.BankAgency
	p["ToBankAccount"] = receiver.BankAccount
	p["ToBankAccountDigit"] = receiver.BankAccountDigit
	// Integer enum, but this endpoint wants it as a string.
	p["AccountType"] = strconv.Itoa(int(receiver.AccountType))
	p["Value"] = value.String()
	// RateValue/RateValueType add a partner fee on top; our setup is 0.
	p["RateValue"] = 0
	p["RateValueType"] = 0
	p["Identifier"] = requestID
	p["Tags"] = []string{}
	p["PaymentDate"] = c.now().Format("2006/01/02")
	p["Description"] = "Transfer"
	p["CustomerMessage"] = "Transfer"
	p["OnlineTransfer"] = true
	return merge(p, sender.Payload())
}
