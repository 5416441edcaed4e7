package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/latampay/fitbank-go/utils"
)

var validate = validator.New()

// Credentials identifies one partner tenant inside FitBank. The CNPJ is
// normalized at construction; the username/password pair feeds HTTP basic
// auth and PartnerId/BusinessUnitId ride along in every payload.
type Credentials struct {
	CNPJ           string `validate:"required"`
	Username       string `validate:"required"`
	Password       string `validate:"required"`
	MktPlaceID     int64
	BusinessUnitID int64 `validate:"required"`
	PartnerID      int64 `validate:"required"`
}

// NewCredentials validates c and returns a copy with the CNPJ stripped to
// its digit-only form. Fails with utils.ErrInvalidTaxNumber when the CNPJ
// checksum does not hold.
func NewCredentials(c Credentials) (Credentials, error) {
	tn, err := utils.NewTaxNumber(c.CNPJ)
	if err != nil {
		return Credentials{}, fmt.Errorf("credentials: %w", err)
	}
	c.CNPJ = tn.String()
	if err := validate.Struct(c); err != nil {
		return Credentials{}, fmt.Errorf("credentials: %w", err)
	}
	return c, nil
}

const agencyDigits = 4

// BankInfo describes one party's bank account. It is shared by value into
// payout, refund, limit and order payloads under sender, receiver or
// beneficiary roles, and is never mutated by them.
type BankInfo struct {
	BankCode         string `validate:"required"`
	BankAgency       string `validate:"required"`
	BankAccount      string `validate:"required"`
	BankAccountDigit string
	AccountType      AccountType
}

// Payload renders the account in the unprefixed wire shape shared by many
// request bodies.
func (b BankInfo) Payload() map[string]any {
	return map[string]any{
		"Bank":             b.BankCode,
		"BankBranch":       b.BankAgency,
		"BankAccount":      b.BankAccount,
		"BankAccountDigit": b.BankAccountDigit,
	}
}

// bankInfoFromBody reconstructs a BankInfo from response fields named with
// the given prefix (e.g. "Receiver" -> ReceiverBank, ReceiverBankBranch...).
// The bank strips leading zeros from the agency in some responses and
// payment calls fail without the full 4 digits, so the agency is re-padded
// here.
func bankInfoFromBody(body Body, prefix string) BankInfo {
	return BankInfo{
		BankCode:         body.String(prefix + "Bank"),
		BankAgency:       PadAgency(body.String(prefix + "BankBranch")),
		BankAccount:      body.String(prefix + "BankAccount"),
		BankAccountDigit: body.String(prefix + "BankAccountDigit"),
	}
}

// PadAgency left-pads a bank agency to its canonical 4 digits.
func PadAgency(agency string) string {
	if len(agency) >= agencyDigits {
		return agency
	}
	return strings.Repeat("0", agencyDigits-len(agency)) + agency
}

// CollectionOrderPayer is the payer identity block embedded in
// collection-order payloads.
type CollectionOrderPayer struct {
	Name        string `validate:"required"`
	BirthDate   time.Time
	TaxNumber   string `validate:"required"`
	Email       string `validate:"required,email"`
	Mobile      string `validate:"required"`
	Occupation  string
	Nationality string
	Country     string
}

// NewCollectionOrderPayer normalizes the payer's tax number and validates
// the contact fields.
func NewCollectionOrderPayer(p CollectionOrderPayer) (CollectionOrderPayer, error) {
	tn, err := utils.NewTaxNumber(p.TaxNumber)
	if err != nil {
		return CollectionOrderPayer{}, fmt.Errorf("collection order payer: %w", err)
	}
	p.TaxNumber = tn.String()
	if err := validate.Struct(p); err != nil {
		return CollectionOrderPayer{}, fmt.Errorf("collection order payer: %w", err)
	}
	return p, nil
}

// Payload renders the payer in the GenerateCollectionOrder wire shape.
func (p CollectionOrderPayer) Payload() map[string]any {
	return map[string]any{
		"Name":        p.Name,
		"BirthDate":   p.BirthDate.Format("2006-01-02"),
		"Occupation":  p.Occupation,
		"Nationality": p.Nationality,
		"Country":     p.Country,
		"PayerContactInfo": map[string]any{
			"Mail":  p.Email,
			"Phone": p.Mobile,
		},
		"PayerAccountInfo": map[string]any{
			"TaxNumber": p.TaxNumber,
		},
	}
}

// Address is the payer address block of a dynamic QR code. The bank
// requires the object even when logically empty; see Payload.
type Address struct {
	AddressLine  string
	AddressLine2 string
	ZipCode      string
	Neighborhood string
	CityCode     string
	CityName     string
	State        string
	AddressType  int
	Country      string
	Complement   string
	Reference    string
}

// Payload renders the address for GenerateDynamicPixQRCode. ZipCode is
// always present: omitting it (or the whole object) makes the bank reject
// the request with a validation error that blames CityName instead.
func (a Address) Payload() map[string]any {
	out := map[string]any{"ZipCode": a.ZipCode}
	optional := map[string]string{
		"AddressLine":  a.AddressLine,
		"AddressLine2": a.AddressLine2,
		"Neighborhood": a.Neighborhood,
		"CityCode":     a.CityCode,
		"CityName":     a.CityName,
		"State":        a.State,
		"Country":      a.Country,
		"Complement":   a.Complement,
		"Reference":    a.Reference,
	}
	for k, v := range optional {
		if v != "" {
			out[k] = v
		}
	}
	if a.AddressType != 0 {
		out["AddressType"] = a.AddressType
	}
	return out
}

// PixKeyInfo is the result of a PIX key lookup. SearchProtocol is an
// opaque correlation token consumed by later payout calls; the bank sends
// it sometimes as an integer and sometimes as a string, so it is kept as
// decoded and forwarded untouched.
type PixKeyInfo struct {
	BankInfo       BankInfo
	ISPB           *string
	Name           string
	KeyType        string
	PixKey         string
	TaxNumber      string
	SearchProtocol any
}

// PixKeyInfoFromBody maps a GetInfosPixKey response. The owner's account
// lives under Infos.* with Receiver-prefixed names; the agency arrives
// with leading zeros stripped on occasion and is repaired here. ISPB is
// nullable on the wire with no discernible pattern and must not fail the
// lookup.
func PixKeyInfoFromBody(body Body) (PixKeyInfo, error) {
	infos := body.Object("Infos")
	if infos == nil {
		return PixKeyInfo{}, fmt.Errorf("pix key info: response has no Infos object")
	}

	info := PixKeyInfo{
		BankInfo:       bankInfoFromBody(infos, "Receiver"),
		Name:           infos.String("ReceiverName"),
		KeyType:        infos.String("PixKeyType"),
		PixKey:         infos.String("PixKeyValue"),
		TaxNumber:      infos.String("ReceiverTaxNumber"),
		SearchProtocol: body["SearchProtocol"],
	}
	if ispb, ok := infos["ReceiverISPB"].(string); ok {
		info.ISPB = &ispb
	}
	return info, nil
}

// PayoutStatus is the lifecycle state of a PixOut as reported by the bank.
type PayoutStatus string

const (
	PayoutStatusCreated    PayoutStatus = "Created"
	PayoutStatusRegistered PayoutStatus = "Registered"
	PayoutStatusSettled    PayoutStatus = "Settled"
	PayoutStatusError      PayoutStatus = "Error"
	PayoutStatusCancelled  PayoutStatus = "Cancelled"
)

// PayoutDetail is the read-only projection of a payout returned by
// GetPixOutById. It is never mutated locally; callers re-fetch it to
// observe status transitions.
type PayoutDetail struct {
	Status           PayoutStatus
	DocumentNumber   string
	EndToEndID       string
	ReceiptURL       string
	ReceiverName     string
	ReceiverDocument string
	ReceiverBankInfo BankInfo
	SenderBankInfo   BankInfo
	TotalValue       decimal.Decimal
}

// PayoutDetailFromBody maps the Infos object of a GetPixOutById response.
// Both parties' agencies are re-padded to 4 digits; an unknown status
// string is preserved as-is rather than rejected.
func PayoutDetailFromBody(infos Body) (PayoutDetail, error) {
	total, err := decimal.NewFromString(infos.String("TotalValue"))
	if err != nil {
		return PayoutDetail{}, fmt.Errorf("payout detail: bad TotalValue %q: %w", infos.String("TotalValue"), err)
	}
	return PayoutDetail{
		Status:           PayoutStatus(infos.String("Status")),
		DocumentNumber:   infos.String("DocumentNumber"),
		EndToEndID:       infos.String("EndToEndId"),
		ReceiptURL:       infos.String("ReceiptUrl"),
		ReceiverName:     infos.String("ToName"),
		ReceiverDocument: infos.String("ToTaxNumber"),
		ReceiverBankInfo: bankInfoFromBody(infos, "To"),
		SenderBankInfo:   bankInfoFromBody(infos, "From"),
		TotalValue:       total,
	}, nil
}
