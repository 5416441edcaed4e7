package pix

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/latampay/fitbank-go/transport"
	"github.com/latampay/fitbank-go/types"
)

// pixOutOperationType is the operation-type code for outbound PIX
// transfers in the limit endpoints.
const pixOutOperationType = 40

// AccountLimitClient reads and changes the PixOut operation limits of one
// account. Limit changes are asynchronous on the bank side; reading the
// limit right after a change may still return the old value.
type AccountLimitClient struct {
	api
	bankInfo types.BankInfo
}

// NewAccountLimitClient builds an account-limit client over the shared
// transport.
func NewAccountLimitClient(t *transport.Client, creds types.Credentials, bankInfo types.BankInfo) *AccountLimitClient {
	return &AccountLimitClient{
		api:      api{transport: t, creds: creds},
		bankInfo: bankInfo,
	}
}

// UpdateDailyAmountLimit requests the daytime per-day PixOut amount limit
// to be set to limit, in whole currency units.
func (c *AccountLimitClient) UpdateDailyAmountLimit(ctx context.Context, limit int64) error {
	p := c.changeLimitPayload(types.LimitTypeDaily, types.LimitSubtypeAmount, 0, limit)
	_, err := c.transport.Execute(ctx, methodChangeAccountOperationLimit, p, c.creds)
	return err
}

// DailyAmountLimit returns the current daytime per-day PixOut amount
// limit, in whole currency units.
func (c *AccountLimitClient) DailyAmountLimit(ctx context.Context) (int64, error) {
	p := c.getLimitPayload(types.LimitTypeDaily, types.LimitSubtypeAmount)
	body, err := c.transport.Execute(ctx, methodGetAccountOperationLimit, p, c.creds)
	if err != nil {
		return 0, err
	}
	return parseLimit(body["MaxLimit"])
}

// changeLimitPayload builds a ChangeAccountOperationLimit body for any of
// the type/subtype combinations the endpoint accepts.
func (c *AccountLimitClient) changeLimitPayload(limitType types.LimitType, subtype types.LimitSubtype, minLimit, maxLimit int64) map[string]any {
	p := c.getLimitPayload(limitType, subtype)
	p["Method"] = methodChangeAccountOperationLimit
	p["MinLimitValue"] = minLimit
	p["MaxLimitValue"] = maxLimit
	return p
}

// getLimitPayload builds a GetAccountOperationLimit body; it is also the
// shared base of the change payload.
func (c *AccountLimitClient) getLimitPayload(limitType types.LimitType, subtype types.LimitSubtype) map[string]any {
	p := c.basePayload(methodGetAccountOperationLimit)
	p["TaxNumber"] = c.creds.CNPJ
	p["OperationType"] = pixOutOperationType
	p["Type"] = int(limitType)
	p["SubType"] = int(subtype)
	return merge(p, c.bankInfo.Payload())
}

// parseLimit tolerates the two shapes MaxLimit arrives in: a JSON number
// (decoded as json.Number) or a plain digit string.
func parseLimit(v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Int64()
	case string:
		return strconv.ParseInt(n, 10, 64)
	default:
		return 0, fmt.Errorf("account limit: unexpected MaxLimit %v (%T)", v, v)
	}
}
