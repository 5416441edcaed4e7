// Package types defines the wire vocabulary of the FitBank PIX API: the
// integer enumerations the bank uses, the response body representation and
// the error kinds every operation client can surface.
package types

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors shared by the operation clients.
var (
	// ErrNotFound is returned when a query endpoint answers successfully
	// but the requested record is absent from the response.
	ErrNotFound = errors.New("fitbank: not found")

	// ErrNotSupported marks operations whose upstream endpoint is known to
	// be broken and which are deliberately not performed.
	ErrNotSupported = errors.New("fitbank: operation not supported upstream")
)

// PaymentKeyType encodes how a PixOut locates the receiver.
type PaymentKeyType int

const (
	PaymentKeyTypeManual        PaymentKeyType = 0
	PaymentKeyTypePixKey        PaymentKeyType = 1
	PaymentKeyTypeStaticQrCode  PaymentKeyType = 3
	PaymentKeyTypeDynamicQrCode PaymentKeyType = 4
)

// AccountType is the bank-account category of a transfer party.
type AccountType int

const (
	AccountTypeCurrent AccountType = 0
	AccountTypeSaving  AccountType = 1
)

// KeyType identifies the kind of a PIX key.
type KeyType int

const (
	KeyTypeSocialSecurity KeyType = 0
	// KeyTypeTaxNumber is a CPF or CNPJ used as a PIX key.
	KeyTypeTaxNumber     KeyType = 1
	KeyTypeEmail         KeyType = 2
	KeyTypePhoneNumber   KeyType = 3
	KeyTypeRandomKeyCode KeyType = 4
)

// LimitType selects which transaction limit an account-limit call targets.
// The integer codes are not contiguous; they are the bank's.
type LimitType int

const (
	// LimitTypeDaily bounds PIX transactions during daytime hours.
	LimitTypeDaily LimitType = 0
	// LimitTypeOvernight bounds PIX transactions during the night window.
	LimitTypeOvernight LimitType = 3
	// LimitTypeSingleTransaction bounds each individual transaction.
	LimitTypeSingleTransaction LimitType = 4
)

// LimitSubtype selects whether a limit counts transactions or money.
type LimitSubtype int

const (
	LimitSubtypeQuantity LimitSubtype = 0
	LimitSubtypeAmount   LimitSubtype = 1
)

// TransactionPurpose qualifies a dynamic QR code transaction.
type TransactionPurpose int

const (
	TransactionPurposePurchaseOrTransfer TransactionPurpose = 0
	TransactionPurposePurchaseWithChange TransactionPurpose = 1
	TransactionPurposeWithdraw           TransactionPurpose = 2
)

// ChangeType controls whether a QR code's value may change after creation.
type ChangeType int

const (
	ChangeTypeNone  ChangeType = 0
	ChangeTypeAllow ChangeType = 1
)

// CollectionOrderType selects the charge medium of a collection order.
type CollectionOrderType int

const (
	CollectionOrderTypePixStaticQrCode  CollectionOrderType = 0
	CollectionOrderTypeBoleto           CollectionOrderType = 1
	CollectionOrderTypePixAndBoleto     CollectionOrderType = 2
	CollectionOrderTypePixDynamicQrCode CollectionOrderType = 3
)

// Body is a parsed FitBank response. Numbers are json.Number so that
// identifiers and correlation tokens survive round trips without float
// conversion.
type Body map[string]any

// String returns the value under key rendered as a string. json.Number
// values keep their literal form; absent or null keys yield "".
func (b Body) String(key string) string {
	switch v := b[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Object returns the nested object under key, or nil when the key is
// missing or not an object.
func (b Body) Object(key string) Body {
	if m, ok := b[key].(map[string]any); ok {
		return Body(m)
	}
	return nil
}

// List returns the array of objects under key. Non-object elements are
// skipped.
func (b Body) List(key string) []Body {
	raw, ok := b[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Body, 0, len(raw))
	for _, e := range raw {
		if m, ok := e.(map[string]any); ok {
			out = append(out, Body(m))
		}
	}
	return out
}

const unknownErrorMessage = "Unknown FitBank error"

// ValidationEntry is one element of a failure response's Validation array:
// the offending payload field and the reasons the bank rejected it.
type ValidationEntry struct {
	Key   string
	Value []string
}

// APIError is a business rejection: the bank answered 200 with
// Success "false". The raw body is retained for diagnostics.
type APIError struct {
	Message    string
	Validation []ValidationEntry
	Body       Body
}

// NewAPIError builds an APIError from a failure body. Message defaults
// when absent; Validation is missing entirely on some generic
// internal-error responses, so both fields are optional.
func NewAPIError(body Body) *APIError {
	e := &APIError{
		Message:    unknownErrorMessage,
		Validation: []ValidationEntry{},
		Body:       body,
	}
	if msg, ok := body["Message"].(string); ok && msg != "" {
		e.Message = msg
	}
	for _, entry := range body.List("Validation") {
		ve := ValidationEntry{Key: entry.String("Key")}
		if reasons, ok := entry["Value"].([]any); ok {
			for _, r := range reasons {
				if s, ok := r.(string); ok {
					ve.Value = append(ve.Value, s)
				}
			}
		}
		e.Validation = append(e.Validation, ve)
	}
	return e
}

func (e *APIError) Error() string {
	return "fitbank: " + e.Message
}

// TransportError is an infrastructure failure: the HTTP status itself was
// outside 2xx. Distinct from APIError so callers can tell a semantic
// rejection from a gateway outage.
type TransportError struct {
	StatusCode int
	Body       []byte
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fitbank: http status %d: %s", e.StatusCode, e.Body)
}
