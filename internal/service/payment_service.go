package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"tech-gadget/internal/domain"
	"tech-gadget/internal/payment"
	"tech-gadget/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidAmount = errors.New("amount must be positive")
)

// PaymentService bridges to the external processor and keeps the local
// payment ledger.
type PaymentService interface {
	CreateIntent(ctx context.Context, money float64) (string, error)
	Record(ctx context.Context, email string, body json.RawMessage) (*domain.Payment, error)
	List(ctx context.Context, email string) ([]*domain.Payment, error)
}

type paymentService struct {
	processor payment.IntentCreator
	payments  repository.PaymentRepository
}

// NewPaymentService creates a new instance of PaymentService.
func NewPaymentService(processor payment.IntentCreator, payments repository.PaymentRepository) PaymentService {
	return &paymentService{processor: processor, payments: payments}
}

// CreateIntent converts a major-unit amount to minor units (x100,
// truncated) and asks the processor for a charge intent, returning its
// client secret untouched.
func (s *paymentService) CreateIntent(ctx context.Context, money float64) (string, error) {
	if money <= 0 {
		return "", ErrInvalidAmount
	}

	amountCents := int64(money * 100)

	return s.processor.CreateIntent(ctx, amountCents)
}

// recordRequest is the subset of the client payload we index; the full
// body is kept verbatim in the raw column.
type recordRequest struct {
	Email         string  `json:"email"`
	Money         float64 `json:"money"`
	TransactionID string  `json:"transactionId"`
}

// Record appends a client-reported payment to the ledger. The server does
// not confirm the charge with the processor before inserting; a hardened
// flow would verify via webhook first. Documented as a design gap.
func (s *paymentService) Record(ctx context.Context, email string, body json.RawMessage) (*domain.Payment, error) {
	var req recordRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}
	if req.Email != "" {
		email = req.Email
	}

	record := &domain.Payment{
		ID:            uuid.New(),
		Email:         email,
		AmountCents:   int64(req.Money * 100),
		TransactionID: req.TransactionID,
		Raw:           body,
		CreatedAt:     time.Now(),
	}

	if err := s.payments.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// List returns ledger rows, optionally filtered by email.
func (s *paymentService) List(ctx context.Context, email string) ([]*domain.Payment, error) {
	return s.payments.List(ctx, email)
}
