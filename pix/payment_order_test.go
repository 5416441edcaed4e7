package pix

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func paymentDate() time.Time {
	return time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)
}

func TestPaymentOrderGenerateByPixKey(t *testing.T) {
	bank := newFakeBank(t)
	c := NewPaymentOrderClient(bank.transport(), testCreds, testBankInfo())

	_, err := c.Generate(context.Background(), GeneratePaymentOrderRequest{
		RequestID:        "po-1",
		ReceiverName:     "Ana Souza",
		ReceiverDocument: "240.223.700-76",
		Value:            decimal.RequireFromString("300.00"),
		PaymentDate:      paymentDate(),
		ReceiverPixKey:   "ana@example.com",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	p := bank.lastRequest("GeneratePaymentOrder")
	if n, ok := p["Value"].(json.Number); !ok || n.String() != "300" {
		t.Errorf("Value = %v (%T), want JSON number", p["Value"], p["Value"])
	}
	if p.String("PaymentDate") != "2024/06/20" {
		t.Errorf("PaymentDate = %q", p.String("PaymentDate"))
	}

	beneficiary := p.Object("Beneficiary")
	if beneficiary == nil || beneficiary.String("Name") != "Ana Souza" {
		t.Fatalf("Beneficiary = %v", p["Beneficiary"])
	}
	account := beneficiary.Object("AccountInfo")
	if account == nil || account.String("PixKey") != "ana@example.com" {
		t.Fatalf("AccountInfo = %v", beneficiary["AccountInfo"])
	}
	if account.String("TaxNumber") != "24022370076" {
		t.Errorf("beneficiary TaxNumber = %q, want normalized", account.String("TaxNumber"))
	}
	if _, ok := account["Bank"]; ok {
		t.Error("bank coordinates must be absent when addressing by key")
	}

	payer := p.Object("Payer")
	if payer == nil || payer.String("TaxNumber") != testCreds.CNPJ || payer.String("Bank") != "450" {
		t.Fatalf("Payer = %v", p["Payer"])
	}
}

func TestPaymentOrderGenerateByBankInfo(t *testing.T) {
	bank := newFakeBank(t)
	c := NewPaymentOrderClient(bank.transport(), testCreds, testBankInfo())

	receiver := receiverBankInfo()
	_, err := c.Generate(context.Background(), GeneratePaymentOrderRequest{
		RequestID:        "po-2",
		ReceiverName:     "Ana Souza",
		ReceiverDocument: "24022370076",
		Value:            decimal.NewFromInt(50),
		PaymentDate:      paymentDate(),
		ReceiverBankInfo: &receiver,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	account := bank.lastRequest("GeneratePaymentOrder").Object("Beneficiary").Object("AccountInfo")
	if account.String("Bank") != "341" || account.String("BankBranch") != "0012" {
		t.Errorf("AccountInfo = %v", account)
	}
	if _, ok := account["PixKey"]; ok {
		t.Error("PixKey must be absent when addressing by bank coordinates")
	}
}

func TestPaymentOrderGenerateAmbiguousReceiver(t *testing.T) {
	bank := newFakeBank(t)
	c := NewPaymentOrderClient(bank.transport(), testCreds, testBankInfo())
	receiver := receiverBankInfo()

	tests := []struct {
		name string
		req  GeneratePaymentOrderRequest
	}{
		{
			name: "both set",
			req: GeneratePaymentOrderRequest{
				RequestID:        "po-3",
				ReceiverName:     "Ana Souza",
				ReceiverDocument: "24022370076",
				Value:            decimal.NewFromInt(1),
				PaymentDate:      paymentDate(),
				ReceiverPixKey:   "ana@example.com",
				ReceiverBankInfo: &receiver,
			},
		},
		{
			name: "neither set",
			req: GeneratePaymentOrderRequest{
				RequestID:        "po-4",
				ReceiverName:     "Ana Souza",
				ReceiverDocument: "24022370076",
				Value:            decimal.NewFromInt(1),
				PaymentDate:      paymentDate(),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.Generate(context.Background(), tt.req); !errors.Is(err, ErrReceiverAccountAmbiguous) {
				t.Fatalf("error = %v, want ErrReceiverAccountAmbiguous", err)
			}
		})
	}
	if bank.callCount("GeneratePaymentOrder") != 0 {
		t.Error("ambiguous requests must not reach the bank")
	}
}

func TestPaymentOrderGetByID(t *testing.T) {
	bank := newFakeBank(t)
	c := NewPaymentOrderClient(bank.transport(), testCreds, testBankInfo())

	if _, err := c.GetByID(context.Background(), "555"); err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	p := bank.lastRequest("GetPaymentOrder")
	if p.String("PaymentOrderId") != "555" {
		t.Errorf("PaymentOrderId = %q", p.String("PaymentOrderId"))
	}
	// This query carries no account identity, only the order id over the
	// base fields.
	for _, key := range []string{"TaxNumber", "Bank", "BankBranch", "BankAccount"} {
		if _, ok := p[key]; ok {
			t.Errorf("%s must not be sent on GetPaymentOrder", key)
		}
	}
	if len(p) != 4 {
		t.Errorf("payload = %v, want only Method/PartnerId/BusinessUnitId/PaymentOrderId", p)
	}
}
