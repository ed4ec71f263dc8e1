package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCreateIntent_SendsFormEncodedRequest(t *testing.T) {
	var gotAuth, gotContentType, gotPath string
	var gotForm map[string][]string

	processor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse form: %v", err)
		}
		gotForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"client_secret":"cs_test_abc"}`))
	}))
	defer processor.Close()

	client := NewClient("sk_test_key", processor.URL)
	secret, err := client.CreateIntent(context.Background(), 2000)
	if err != nil {
		t.Fatalf("CreateIntent failed: %v", err)
	}

	if secret != "cs_test_abc" {
		t.Errorf("expected client secret passed through, got %q", secret)
	}
	if gotAuth != "Bearer sk_test_key" {
		t.Errorf("expected bearer auth with the configured key, got %q", gotAuth)
	}
	if !strings.HasPrefix(gotContentType, "application/x-www-form-urlencoded") {
		t.Errorf("expected form-encoded request, got %q", gotContentType)
	}
	if gotPath != "/v1/payment_intents" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if got := gotForm["amount"]; len(got) != 1 || got[0] != "2000" {
		t.Errorf("expected amount=2000, got %v", got)
	}
	if got := gotForm["currency"]; len(got) != 1 || got[0] != "usd" {
		t.Errorf("expected currency=usd, got %v", got)
	}
	if got := gotForm["payment_method_types[]"]; len(got) != 1 || got[0] != "card" {
		t.Errorf("expected card payment method, got %v", got)
	}
}

func TestCreateIntent_SurfacesProcessorErrorMessage(t *testing.T) {
	processor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Amount must be at least 50 cents"}}`))
	}))
	defer processor.Close()

	client := NewClient("sk_test_key", processor.URL)
	_, err := client.CreateIntent(context.Background(), 1)
	if err == nil {
		t.Fatal("expected an error for a rejected intent")
	}
	if !strings.Contains(err.Error(), "Amount must be at least 50 cents") {
		t.Errorf("expected the processor message surfaced, got %v", err)
	}
}

func TestCreateIntent_RejectsEmptyClientSecret(t *testing.T) {
	processor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer processor.Close()

	client := NewClient("sk_test_key", processor.URL)
	if _, err := client.CreateIntent(context.Background(), 2000); err == nil {
		t.Fatal("expected an error when the processor returns no secret")
	}
}

func TestCreateIntent_FailsWhenProcessorUnreachable(t *testing.T) {
	processor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	processor.Close()

	client := NewClient("sk_test_key", processor.URL)
	if _, err := client.CreateIntent(context.Background(), 2000); err == nil {
		t.Fatal("expected an error when the processor is down")
	}
}
