package pix

import (
	"context"

	"github.com/latampay/fitbank-go/transport"
	"github.com/latampay/fitbank-go/types"
	"github.com/latampay/fitbank-go/utils"
)

// KeyClient looks up PIX keys. The lookup result carries the
// SearchProtocol token required by subsequent by-key payouts.
type KeyClient struct {
	api
}

// NewKeyClient builds a key client over the shared transport.
func NewKeyClient(t *transport.Client, creds types.Credentials) *KeyClient {
	return &KeyClient{api: api{transport: t, creds: creds}}
}

// GetInfo resolves a PIX key to its owner's account. taxNumber is the
// querying party's document and is normalized before the call.
func (c *KeyClient) GetInfo(ctx context.Context, pixKey string, keyType types.KeyType, taxNumber string) (types.PixKeyInfo, error) {
	tn, err := utils.NewTaxNumber(taxNumber)
	if err != nil {
		return types.PixKeyInfo{}, err
	}

	p := c.basePayload(methodGetInfosPixKey)
	p["PixKey"] = pixKey
	p["PixKeyType"] = int(keyType)
	p["TaxNumber"] = tn.String()

	body, err := c.transport.Execute(ctx, methodGetInfosPixKey, p, c.creds)
	if err != nil {
		return types.PixKeyInfo{}, err
	}
	return types.PixKeyInfoFromBody(body)
}
