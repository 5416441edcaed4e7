// Package pix contains one client per FitBank PIX capability. Every
// client builds a Method-tagged payload over the shared identity fields,
// hands it to the transport and maps the classified result. Clients are
// immutable after construction and safe for sequential reuse; idempotency
// is the caller's job via stable request identifiers, and no client
// retries on its own.
package pix

import (
	"errors"

	"github.com/latampay/fitbank-go/transport"
	"github.com/latampay/fitbank-go/types"
)

// Wire method names, one per endpoint.
const (
	methodGeneratePixOut              = "GeneratePixOut"
	methodGetInfosPixKey              = "GetInfosPixKey"
	methodGenerateRefundPixIn         = "GenerateRefundPixIn"
	methodGetRefundPixInByID          = "GetRefundPixInById"
	methodGenerateCollectionOrder     = "GenerateCollectionOrder"
	methodGetCollectionOrder          = "GetCollectionOrder"
	methodCancelCollectionOrder       = "CancelCollectionOrder"
	methodGenerateDynamicPixQRCode    = "GenerateDynamicPixQRCode"
	methodGetPixQRCodeByID            = "GetPixQRCodeById"
	methodGetInfosPixHashCode         = "GetInfosPixHashCode"
	methodChangeAccountOperationLimit = "ChangeAccountOperationLimit"
	methodGetAccountOperationLimit    = "GetAccountOperationLimit"
	methodGeneratePaymentOrder        = "GeneratePaymentOrder"
	methodGetPaymentOrder             = "GetPaymentOrder"
	methodGetPixOutByID               = "GetPixOutById"
	methodGetPixOutByDate             = "GetPixOutByDate"
	methodGetPixInByID                = "GetPixInById"
)

// ErrReceiverAccountAmbiguous is returned when a payment order is given
// both a receiver PIX key and receiver bank info, or neither.
var ErrReceiverAccountAmbiguous = errors.New("pix: exactly one of receiver pix key or receiver bank info must be set")

// api is the request context every operation client embeds: the transport
// plus the credentials contributing the shared identity fields.
type api struct {
	transport *transport.Client
	creds     types.Credentials
}

// basePayload starts a Method-tagged payload carrying the partner
// identity every endpoint expects.
func (a api) basePayload(method string) map[string]any {
	return map[string]any{
		"Method":         method,
		"PartnerId":      a.creds.PartnerID,
		"BusinessUnitId": a.creds.BusinessUnitID,
	}
}

// merge copies src entries into dst and returns dst.
func merge(dst map[string]any, src map[string]any) map[string]any {
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
