package pix

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/latampay/fitbank-go/transport"
	"github.com/latampay/fitbank-go/types"
	"github.com/latampay/fitbank-go/utils"
)

// defaultAgentModality is the "agent" field FitBank requires on QR code
// generation; 2 is the value for direct PSP clients.
const defaultAgentModality = 2

// DynamicQrCodeClient generates and inspects dynamic PIX QR codes
// addressed to one fixed receiving account and key.
type DynamicQrCodeClient struct {
	api
	receiverBankInfo   types.BankInfo
	receiverPixKey     string
	receiverPixKeyType types.KeyType

	keys    *KeyClient
	payouts *PayoutClient
}

// NewDynamicQrCodeClient builds a QR code client over the shared
// transport. All codes it generates credit the given account through the
// given PIX key.
func NewDynamicQrCodeClient(t *transport.Client, creds types.Credentials, receiver types.BankInfo, pixKey string, pixKeyType types.KeyType) *DynamicQrCodeClient {
	return &DynamicQrCodeClient{
		api:                api{transport: t, creds: creds},
		receiverBankInfo:   receiver,
		receiverPixKey:     pixKey,
		receiverPixKeyType: pixKeyType,
		keys:               NewKeyClient(t, creds),
		payouts:            NewPayoutClient(t, creds),
	}
}

// GenerateQrCodeRequest describes one dynamic QR code.
type GenerateQrCodeRequest struct {
	// RequestID is the caller-supplied idempotency key (wire field
	// Identifier).
	RequestID      string
	Value          decimal.Decimal
	ExpirationDate time.Time
	PayerName      string
	PayerTaxNumber string
	// Address may be zero-valued but is always sent; see types.Address.
	Address            types.Address
	PayerRequest       string
	TransactionPurpose types.TransactionPurpose
}

// Generate creates a dynamic QR code. The expiration date travels as
// YYYY/MM/DD with slashes, unlike the dash format of collection orders.
func (c *DynamicQrCodeClient) Generate(ctx context.Context, req GenerateQrCodeRequest) (types.Body, error) {
	payerTaxNumber, err := utils.NewTaxNumber(req.PayerTaxNumber)
	if err != nil {
		return nil, err
	}

	p := c.basePayload(methodGenerateDynamicPixQRCode)
	p["TaxNumber"] = c.creds.CNPJ
	p["PixKey"] = c.receiverPixKey
	p["PrincipalValue"] = req.Value.String()
	p["ExpirationDate"] = req.ExpirationDate.Format("2006/01/02")
	p["Identifier"] = req.RequestID
	p["PayerName"] = req.PayerName
	p["PayerTaxNumber"] = payerTaxNumber.String()
	p["Address"] = req.Address.Payload()
	p["PayerRequest"] = req.PayerRequest
	p["TransactionPurpose"] = int(req.TransactionPurpose)
	p["TransactionValue"] = nil
	p["TransactionChangeType"] = nil
	p["ChangeType"] = int(types.ChangeTypeNone)
	p["AgentModality"] = defaultAgentModality
	merge(p, c.receiverBankInfo.Payload())

	return c.transport.Execute(ctx, methodGenerateDynamicPixQRCode, p, c.creds)
}

// Find fetches a QR code by the DocumentNumber returned from Generate.
func (c *DynamicQrCodeClient) Find(ctx context.Context, documentNumber string) (types.Body, error) {
	p := c.basePayload(methodGetPixQRCodeByID)
	p["DocumentNumber"] = documentNumber

	body, err := c.transport.Execute(ctx, methodGetPixQRCodeByID, p, c.creds)
	if err != nil {
		return nil, err
	}

	info := body.Object("GetPixQRCodeByIdInfo")
	if info == nil {
		return nil, fmt.Errorf("qr code %s: %w", documentNumber, types.ErrNotFound)
	}
	return info, nil
}

// GetInfoFromHash decodes a QR code hash (the EMV payload a payer would
// scan) back into its charge details.
func (c *DynamicQrCodeClient) GetInfoFromHash(ctx context.Context, hash string) (types.Body, error) {
	p := c.basePayload(methodGetInfosPixHashCode)
	p["Hash"] = hash
	p["TaxNumber"] = c.creds.CNPJ

	body, err := c.transport.Execute(ctx, methodGetInfosPixHashCode, p, c.creds)
	if err != nil {
		return nil, err
	}

	info := body.Object("Infos")
	if info == nil {
		return nil, fmt.Errorf("qr code hash: %w", types.ErrNotFound)
	}
	return info, nil
}

// SimulatePayment pays the QR code identified by hash out of the
// receiving account itself, which moves the code to paid and triggers the
// payin webhook. Sandbox only: against production this performs a real
// self-transfer.
func (c *DynamicQrCodeClient) SimulatePayment(ctx context.Context, hash string) (types.Body, error) {
	info, err := c.GetInfoFromHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	value, err := decimal.NewFromString(info.String("PrincipalValue"))
	if err != nil {
		return nil, fmt.Errorf("qr code hash: bad PrincipalValue %q: %w", info.String("PrincipalValue"), err)
	}

	keyInfo, err := c.keys.GetInfo(ctx, c.receiverPixKey, c.receiverPixKeyType, c.creds.CNPJ)
	if err != nil {
		return nil, err
	}

	return c.payouts.ByPixKey(ctx, KeyPayoutRequest{
		RequestID:      uuid.NewString(),
		SenderBankInfo: c.receiverBankInfo,
		KeyInfo:        keyInfo,
		Value:          value,
	})
}
