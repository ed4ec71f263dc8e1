package service

import (
	"context"
	"encoding/json"
	"testing"

	"tech-gadget/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

type fakeIntentCreator struct {
	lastAmount int64
	secret     string
	err        error
}

func (f *fakeIntentCreator) CreateIntent(ctx context.Context, amountCents int64) (string, error) {
	f.lastAmount = amountCents
	return f.secret, f.err
}

type mockPaymentRepository struct {
	records []*domain.Payment
}

func (m *mockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	m.records = append(m.records, payment)
	return nil
}

func (m *mockPaymentRepository) List(ctx context.Context, email string) ([]*domain.Payment, error) {
	if email == "" {
		return m.records, nil
	}
	matched := []*domain.Payment{}
	for _, p := range m.records {
		if p.Email == email {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func TestCreateIntent_ConvertsToMinorUnits(t *testing.T) {
	processor := &fakeIntentCreator{secret: "cs_test_123"}
	svc := NewPaymentService(processor, &mockPaymentRepository{})

	secret, err := svc.CreateIntent(context.Background(), 20)
	if err != nil {
		t.Fatalf("CreateIntent failed: %v", err)
	}
	if secret != "cs_test_123" {
		t.Errorf("expected the processor secret passed through, got %q", secret)
	}
	if processor.lastAmount != 2000 {
		t.Errorf("expected 2000 cents for 20, got %d", processor.lastAmount)
	}
}

func TestCreateIntent_TruncatesFractionalCents(t *testing.T) {
	processor := &fakeIntentCreator{secret: "cs"}
	svc := NewPaymentService(processor, &mockPaymentRepository{})

	if _, err := svc.CreateIntent(context.Background(), 10.999); err != nil {
		t.Fatalf("CreateIntent failed: %v", err)
	}
	if processor.lastAmount != 1099 {
		t.Errorf("expected sub-cent remainder dropped, got %d", processor.lastAmount)
	}
}

func TestCreateIntent_RejectsNonPositiveAmounts(t *testing.T) {
	processor := &fakeIntentCreator{}
	svc := NewPaymentService(processor, &mockPaymentRepository{})

	for _, money := range []float64{0, -1, -0.01} {
		if _, err := svc.CreateIntent(context.Background(), money); err != ErrInvalidAmount {
			t.Errorf("money=%v: expected ErrInvalidAmount, got %v", money, err)
		}
	}
	if processor.lastAmount != 0 {
		t.Error("processor must not be called for rejected amounts")
	}
}

func TestCreateIntent_MinorUnitsNeverExceedAmount(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("conversion is truncation, not rounding", prop.ForAll(
		func(money float64) bool {
			processor := &fakeIntentCreator{secret: "cs"}
			svc := NewPaymentService(processor, &mockPaymentRepository{})
			if _, err := svc.CreateIntent(context.Background(), money); err != nil {
				return false
			}
			cents := processor.lastAmount
			return float64(cents) <= money*100 && float64(cents+1) > money*100
		},
		gen.Float64Range(0.01, 1_000_000),
	))

	properties.TestingRun(t)
}

func TestRecord_StoresVerbatimBodyAndIndexedFields(t *testing.T) {
	repo := &mockPaymentRepository{}
	svc := NewPaymentService(&fakeIntentCreator{}, repo)

	body := json.RawMessage(`{"email":"payer@x.com","money":12.5,"transactionId":"tx_1","extra":"kept"}`)
	record, err := svc.Record(context.Background(), "token@x.com", body)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if len(repo.records) != 1 {
		t.Fatalf("expected one ledger row, got %d", len(repo.records))
	}
	if record.Email != "payer@x.com" {
		t.Errorf("body email wins over token email, got %q", record.Email)
	}
	if record.AmountCents != 1250 {
		t.Errorf("expected 1250 cents, got %d", record.AmountCents)
	}
	if record.TransactionID != "tx_1" {
		t.Errorf("expected transaction id indexed, got %q", record.TransactionID)
	}
	if string(record.Raw) != string(body) {
		t.Error("full payload must be kept verbatim")
	}
}

func TestRecord_FallsBackToTokenEmail(t *testing.T) {
	repo := &mockPaymentRepository{}
	svc := NewPaymentService(&fakeIntentCreator{}, repo)

	record, err := svc.Record(context.Background(), "token@x.com", json.RawMessage(`{"money":1}`))
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if record.Email != "token@x.com" {
		t.Errorf("expected token email when body omits one, got %q", record.Email)
	}
}

func TestList_FiltersByEmail(t *testing.T) {
	repo := &mockPaymentRepository{}
	svc := NewPaymentService(&fakeIntentCreator{}, repo)

	for _, email := range []string{"a@x.com", "b@x.com", "a@x.com"} {
		if _, err := svc.Record(context.Background(), email, json.RawMessage(`{"money":1}`)); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	mine, err := svc.List(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("expected 2 rows for a@x.com, got %d", len(mine))
	}

	all, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected all 3 rows without a filter, got %d", len(all))
	}
}
