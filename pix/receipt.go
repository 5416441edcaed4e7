package pix

import (
	"context"

	"github.com/latampay/fitbank-go/transport"
	"github.com/latampay/fitbank-go/types"
)

// ReceiptClient fetches received PixIn records for one company account,
// typically to reconcile a payin webhook against the bank's own view.
type ReceiptClient struct {
	api
	companyBankInfo types.BankInfo
}

// NewReceiptClient builds a receipt client over the shared transport.
func NewReceiptClient(t *transport.Client, creds types.Credentials, companyBankInfo types.BankInfo) *ReceiptClient {
	return &ReceiptClient{
		api:             api{transport: t, creds: creds},
		companyBankInfo: companyBankInfo,
	}
}

// GetByEndToEndID fetches the PixIn identified by the central bank
// end-to-end id carried in the payin webhook.
func (c *ReceiptClient) GetByEndToEndID(ctx context.Context, endToEndID string) (types.Body, error) {
	p := c.basePayload(methodGetPixInByID)
	p["EndToEndId"] = endToEndID
	p["TaxNumber"] = c.creds.CNPJ
	merge(p, c.companyBankInfo.Payload())

	return c.transport.Execute(ctx, methodGetPixInByID, p, c.creds)
}
