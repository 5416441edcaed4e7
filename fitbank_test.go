package fitbank

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/latampay/fitbank-go/types"
	"github.com/latampay/fitbank-go/utils"
)

func testCredentials() types.Credentials {
	return types.Credentials{
		CNPJ:           "16.052.257/0001-27",
		Username:       "partner",
		Password:       "secret",
		PartnerID:      123,
		BusinessUnitID: 456,
	}
}

func TestNewValidatesCredentials(t *testing.T) {
	creds := testCredentials()
	creds.CNPJ = "16.052.257/0001-28"

	if _, err := New(SandboxBaseURL, creds); !errors.Is(err, utils.ErrInvalidTaxNumber) {
		t.Fatalf("error = %v, want ErrInvalidTaxNumber", err)
	}

	creds = testCredentials()
	creds.Username = ""
	if _, err := New(SandboxBaseURL, creds); err == nil {
		t.Fatal("want error for missing username")
	}
}

func TestNewNormalizesCNPJ(t *testing.T) {
	var gotTaxNumber string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		gotTaxNumber, _ = payload["TaxNumber"].(string)
		w.Write([]byte(`{"Success":"true"}`))
	}))
	defer srv.Close()

	client, err := New(srv.URL, testCredentials(), WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// The formatted CNPJ from the credentials must reach the wire
	// digit-only.
	if _, err := client.Receipts(testAccount()).GetByEndToEndID(context.Background(), "E1"); err != nil {
		t.Fatalf("GetByEndToEndID: %v", err)
	}
	if gotTaxNumber != "16052257000127" {
		t.Errorf("TaxNumber = %q, want normalized CNPJ", gotTaxNumber)
	}
}

func TestClientWiresSharedTransport(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		user, pass, _ := r.BasicAuth()
		if user != "partner" || pass != "secret" {
			t.Errorf("basic auth = %q/%q", user, pass)
		}
		w.Write([]byte(`{"Success":"true","CollectionOrderList":[{"DocumentNumber":1}]}`))
	}))
	defer srv.Close()

	client, err := New(srv.URL, testCredentials(), WithHTTPClient(srv.Client()), WithTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := client.Receipts(testAccount()).GetByEndToEndID(context.Background(), "E1"); err != nil {
		t.Fatalf("receipts: %v", err)
	}
	if _, err := client.AccountLimits(testAccount()).DailyAmountLimit(context.Background()); err == nil {
		// MaxLimit is absent from the stub body, so the parse must fail;
		// the request itself still goes out.
		t.Fatal("want parse error for missing MaxLimit")
	}

	want := []string{"/main/execute/GetPixInById", "/main/execute/GetAccountOperationLimit"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v", paths)
	}
	for i, p := range want {
		if paths[i] != p {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], p)
		}
	}
}

func testAccount() types.BankInfo {
	return types.BankInfo{
		BankCode:    "450",
		BankAgency:  "0001",
		BankAccount: "3134806",
	}
}
