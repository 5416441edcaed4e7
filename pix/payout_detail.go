package pix

import (
	"context"
	"fmt"
	"time"

	"github.com/latampay/fitbank-go/transport"
	"github.com/latampay/fitbank-go/types"
)

// getByDatePageSize is the page size of the date-ranged payout listing.
const getByDatePageSize = 500

// PayoutDetailClient reads the state of PixOut transfers issued from one
// account.
type PayoutDetailClient struct {
	api
	bankInfo types.BankInfo
}

// NewPayoutDetailClient builds a payout-detail client over the shared
// transport.
func NewPayoutDetailClient(t *transport.Client, creds types.Credentials, bankInfo types.BankInfo) *PayoutDetailClient {
	return &PayoutDetailClient{
		api:      api{transport: t, creds: creds},
		bankInfo: bankInfo,
	}
}

// GetByRequestID fetches one payout by the DocumentNumber the bank
// assigned when it was created.
func (c *PayoutDetailClient) GetByRequestID(ctx context.Context, payoutID string) (types.PayoutDetail, error) {
	p := c.basePayload(methodGetPixOutByID)
	p["TaxNumber"] = c.creds.CNPJ
	p["DocumentNumber"] = payoutID
	merge(p, c.bankInfo.Payload())

	body, err := c.transport.Execute(ctx, methodGetPixOutByID, p, c.creds)
	if err != nil {
		return types.PayoutDetail{}, err
	}

	infos := body.Object("Infos")
	if infos == nil {
		return types.PayoutDetail{}, fmt.Errorf("payout %s: %w", payoutID, types.ErrNotFound)
	}
	return types.PayoutDetailFromBody(infos)
}

// GetByDate would list payouts created inside [startDate, endDate]. The
// bank's listing endpoint currently returns truncated rows missing the
// receiver account, so the call is disabled until that is fixed upstream.
func (c *PayoutDetailClient) GetByDate(ctx context.Context, startDate, endDate time.Time) ([]types.PayoutDetail, error) {
	return nil, fmt.Errorf("payout listing by date: %w", types.ErrNotSupported)
}

// getByDatePayload builds one page of the date-ranged listing request.
func (c *PayoutDetailClient) getByDatePayload(startDate, endDate time.Time, pageIndex int) map[string]any {
	p := c.basePayload(methodGetPixOutByDate)
	p["TaxNumber"] = c.creds.CNPJ
	p["StartDate"] = startDate.Format("2006/01/02")
	p["EndDate"] = endDate.Format("2006/01/02")
	p["PageIndex"] = pageIndex
	p["PageSize"] = getByDatePageSize
	return merge(p, c.bankInfo.Payload())
}
