package pix

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/latampay/fitbank-go/transport"
	"github.com/latampay/fitbank-go/types"
)

// CollectionOrderConfig fixes the receiving side of every order a
// CollectionOrderClient issues.
type CollectionOrderConfig struct {
	ReceiverName        string
	ReceiverPixKey      string
	ReceiverPixKeyType  types.KeyType
	Payer               types.CollectionOrderPayer
	BeneficiaryBankInfo types.BankInfo
}

// CollectionOrderClient issues, queries and cancels collection orders
// (payable PIX charges).
type CollectionOrderClient struct {
	api
	cfg CollectionOrderConfig
}

// NewCollectionOrderClient builds a collection-order client over the
// shared transport.
func NewCollectionOrderClient(t *transport.Client, creds types.Credentials, cfg CollectionOrderConfig) *CollectionOrderClient {
	return &CollectionOrderClient{
		api: api{transport: t, creds: creds},
		cfg: cfg,
	}
}

// Generate creates a collection order expiring on expirationDate. The due
// date is one day earlier and the fine date one day later, all rendered
// as YYYY-MM-DD (this endpoint uses dashes; the QR code one uses slashes).
func (c *CollectionOrderClient) Generate(ctx context.Context, id string, value decimal.Decimal, expirationDate time.Time) (types.Body, error) {
	principal, _ := value.Float64()

	p := c.basePayload(methodGenerateCollectionOrder)
	p["Identifier"] = id
	p["CollectionOrderType"] = int(types.CollectionOrderTypePixDynamicQrCode)
	p["PrincipalValue"] = principal
	// Interest and fine stay 0 for our orders.
	p["InterestPercent"] = 0
	p["FinePercent"] = 0
	p["DueDate"] = expirationDate.AddDate(0, 0, -1).Format("2006-01-02")
	p["ExpirationDate"] = expirationDate.Format("2006-01-02")
	p["FineDate"] = expirationDate.AddDate(0, 0, 1).Format("2006-01-02")
	p["Payer"] = c.cfg.Payer.Payload()
	p["Customer"] = map[string]any{
		"Name": c.cfg.ReceiverName,
		"CustomerAccountInfo": merge(map[string]any{
			"PixKey":     c.cfg.ReceiverPixKey,
			"PixKeyType": int(c.cfg.ReceiverPixKeyType),
			"TaxNumber":  c.creds.CNPJ,
		}, c.cfg.BeneficiaryBankInfo.Payload()),
	}

	return c.transport.Execute(ctx, methodGenerateCollectionOrder, p, c.creds)
}

// GetByID fetches one collection order by the DocumentNumber returned
// from Generate. The endpoint always answers with a CollectionOrderList
// even for a unique document number, so only the first element is
// returned.
func (c *CollectionOrderClient) GetByID(ctx context.Context, documentNumber string) (types.Body, error) {
	p := c.basePayload(methodGetCollectionOrder)
	p["DocumentNumber"] = documentNumber

	body, err := c.transport.Execute(ctx, methodGetCollectionOrder, p, c.creds)
	if err != nil {
		return nil, err
	}

	orders := body.List("CollectionOrderList")
	if len(orders) == 0 {
		return nil, fmt.Errorf("collection order %s: %w", documentNumber, types.ErrNotFound)
	}
	return orders[0], nil
}

// CancelByID cancels a pending collection order.
func (c *CollectionOrderClient) CancelByID(ctx context.Context, documentNumber string) (types.Body, error) {
	p := c.basePayload(methodCancelCollectionOrder)
	p["DocumentNumber"] = documentNumber

	return c.transport.Execute(ctx, methodCancelCollectionOrder, p, c.creds)
}
