package pix

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/latampay/fitbank-go/types"
)

func collectionOrderConfig(t *testing.T) CollectionOrderConfig {
	t.Helper()
	payer, err := types.NewCollectionOrderPayer(types.CollectionOrderPayer{
		Name:      "Ana Souza",
		BirthDate: time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC),
		TaxNumber: "24022370076",
		Email:     "ana@example.com",
		Mobile:    "+5511999990000",
	})
	if err != nil {
		t.Fatalf("payer: %v", err)
	}
	return CollectionOrderConfig{
		ReceiverName:        "Latampay LTDA",
		ReceiverPixKey:      "8e3bbe09-1d4a-4c62-ba46-b53c77e11e0f",
		ReceiverPixKeyType:  types.KeyTypeRandomKeyCode,
		Payer:               payer,
		BeneficiaryBankInfo: testBankInfo(),
	}
}

func TestCollectionOrderGenerate(t *testing.T) {
	bank := newFakeBank(t)
	c := NewCollectionOrderClient(bank.transport(), testCreds, collectionOrderConfig(t))

	expiration := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	_, err := c.Generate(context.Background(), "order-1", decimal.RequireFromString("99.90"), expiration)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	p := bank.lastRequest("GenerateCollectionOrder")

	// Due date one day before expiration, fine date one day after.
	if p.String("DueDate") != "2024-06-14" {
		t.Errorf("DueDate = %q", p.String("DueDate"))
	}
	if p.String("ExpirationDate") != "2024-06-15" {
		t.Errorf("ExpirationDate = %q", p.String("ExpirationDate"))
	}
	if p.String("FineDate") != "2024-06-16" {
		t.Errorf("FineDate = %q", p.String("FineDate"))
	}

	if n, ok := p["PrincipalValue"].(json.Number); !ok || n.String() != "99.9" {
		t.Errorf("PrincipalValue = %v (%T), want JSON number", p["PrincipalValue"], p["PrincipalValue"])
	}
	if p.String("CollectionOrderType") != "3" {
		t.Errorf("CollectionOrderType = %v", p["CollectionOrderType"])
	}
	if p.String("Identifier") != "order-1" {
		t.Errorf("Identifier = %q", p.String("Identifier"))
	}

	payer := p.Object("Payer")
	if payer == nil || payer.String("Name") != "Ana Souza" {
		t.Fatalf("Payer = %v", p["Payer"])
	}
	customer := p.Object("Customer")
	if customer == nil || customer.String("Name") != "Latampay LTDA" {
		t.Fatalf("Customer = %v", p["Customer"])
	}
	account := customer.Object("CustomerAccountInfo")
	if account == nil {
		t.Fatal("CustomerAccountInfo missing")
	}
	if account.String("PixKey") != "8e3bbe09-1d4a-4c62-ba46-b53c77e11e0f" || account.String("PixKeyType") != "4" {
		t.Errorf("key = %q/%v", account.String("PixKey"), account["PixKeyType"])
	}
	if account.String("TaxNumber") != testCreds.CNPJ || account.String("Bank") != "450" {
		t.Errorf("account identity = %q/%q", account.String("TaxNumber"), account.String("Bank"))
	}
}

func TestCollectionOrderGetByID(t *testing.T) {
	bank := newFakeBank(t)
	bank.respond("GetCollectionOrder", `{
		"Success": "true",
		"CollectionOrderList": [
			{"DocumentNumber": 77, "Status": "Created"},
			{"DocumentNumber": 78, "Status": "Stale"}
		]
	}`)

	c := NewCollectionOrderClient(bank.transport(), testCreds, collectionOrderConfig(t))
	order, err := c.GetByID(context.Background(), "77")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	// The endpoint answers with a list; only the first entry matters.
	if order.String("DocumentNumber") != "77" {
		t.Errorf("DocumentNumber = %q", order.String("DocumentNumber"))
	}

	if got := bank.lastRequest("GetCollectionOrder").String("DocumentNumber"); got != "77" {
		t.Errorf("request DocumentNumber = %q", got)
	}
}

func TestCollectionOrderGetByIDNotFound(t *testing.T) {
	bank := newFakeBank(t)
	bank.respond("GetCollectionOrder", `{"Success":"true","CollectionOrderList":[]}`)

	c := NewCollectionOrderClient(bank.transport(), testCreds, collectionOrderConfig(t))
	if _, err := c.GetByID(context.Background(), "404"); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestCollectionOrderCancelByID(t *testing.T) {
	bank := newFakeBank(t)
	c := NewCollectionOrderClient(bank.transport(), testCreds, collectionOrderConfig(t))

	if _, err := c.CancelByID(context.Background(), "77"); err != nil {
		t.Fatalf("CancelByID: %v", err)
	}
	if got := bank.lastRequest("CancelCollectionOrder").String("DocumentNumber"); got != "77" {
		t.Errorf("DocumentNumber = %q", got)
	}
}
