package usecase_test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/adamj-ops/everyday-lending/internal/domain/event"
	"github.com/adamj-ops/everyday-lending/internal/domain/model"
	"github.com/adamj-ops/everyday-lending/internal/domain/port"
)

type mockLoanRepository struct {
	findByIDFunc func(ctx context.Context, loanID string) (model.LoanSnapshot, error)
	findCalls    int
}

func (m *mockLoanRepository) FindByID(ctx context.Context, loanID string) (model.LoanSnapshot, error) {
	m.findCalls++
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, loanID)
	}
	return model.LoanSnapshot{}, port.ErrNotFound
}

type mockPaymentRepository struct {
	insertFunc              func(ctx context.Context, payment model.Payment) error
	saveFunc                func(ctx context.Context, payment model.Payment) error
	findByIDFunc            func(ctx context.Context, paymentID string) (model.Payment, error)
	findByRailReferenceFunc func(ctx context.Context, railReference string) (model.Payment, error)
	listByLoanFunc          func(ctx context.Context, loanID string, limit, offset int) ([]model.Payment, error)
	saveWithLoanTotalsFunc  func(ctx context.Context, payment model.Payment, loan model.LoanSnapshot, expectedVersion int) error
	savedPayments           []model.Payment
}

func (m *mockPaymentRepository) Insert(ctx context.Context, payment model.Payment) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, payment)
	}
	m.savedPayments = append(m.savedPayments, payment)
	return nil
}

func (m *mockPaymentRepository) Save(ctx context.Context, payment model.Payment) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, payment)
	}
	m.savedPayments = append(m.savedPayments, payment)
	return nil
}

func (m *mockPaymentRepository) FindByID(ctx context.Context, paymentID string) (model.Payment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, paymentID)
	}
	return model.Payment{}, port.ErrNotFound
}

func (m *mockPaymentRepository) FindByRailReference(ctx context.Context, railReference string) (model.Payment, error) {
	if m.findByRailReferenceFunc != nil {
		return m.findByRailReferenceFunc(ctx, railReference)
	}
	return model.Payment{}, port.ErrNotFound
}

func (m *mockPaymentRepository) ListByLoan(ctx context.Context, loanID string, limit, offset int) ([]model.Payment, error) {
	if m.listByLoanFunc != nil {
		return m.listByLoanFunc(ctx, loanID, limit, offset)
	}
	return nil, nil
}

func (m *mockPaymentRepository) SaveWithLoanTotals(ctx context.Context, payment model.Payment, loan model.LoanSnapshot, expectedVersion int) error {
	if m.saveWithLoanTotalsFunc != nil {
		return m.saveWithLoanTotalsFunc(ctx, payment, loan, expectedVersion)
	}
	m.savedPayments = append(m.savedPayments, payment)
	return nil
}

type mockParticipationRepository struct {
	findActiveByLoanFunc func(ctx context.Context, loanID string) ([]model.ParticipationShare, error)
}

func (m *mockParticipationRepository) FindActiveByLoan(ctx context.Context, loanID string) ([]model.ParticipationShare, error) {
	if m.findActiveByLoanFunc != nil {
		return m.findActiveByLoanFunc(ctx, loanID)
	}
	return nil, nil
}

type mockCardProcessor struct {
	createPaymentIntentFunc    func(ctx context.Context, amount decimal.Decimal, currency, customerRef, idempotencyKey string) (port.CardCharge, error)
	verifyWebhookSignatureFunc func(payload []byte, signatureHeader string) error
	charges                    []string // idempotency keys, in call order
}

func (m *mockCardProcessor) CreatePaymentIntent(ctx context.Context, amount decimal.Decimal, currency, customerRef, idempotencyKey string) (port.CardCharge, error) {
	m.charges = append(m.charges, idempotencyKey)
	if m.createPaymentIntentFunc != nil {
		return m.createPaymentIntentFunc(ctx, amount, currency, customerRef, idempotencyKey)
	}
	return port.CardCharge{Reference: "pi_" + idempotencyKey, Status: "requires_confirmation"}, nil
}

func (m *mockCardProcessor) VerifyWebhookSignature(payload []byte, signatureHeader string) error {
	if m.verifyWebhookSignatureFunc != nil {
		return m.verifyWebhookSignatureFunc(payload, signatureHeader)
	}
	return nil
}

type mockACHClient struct {
	createTransferFunc func(ctx context.Context, amount decimal.Decimal, accountRef, idempotencyKey string) (port.ACHTransfer, error)
	transfers          []string
}

func (m *mockACHClient) CreateTransfer(ctx context.Context, amount decimal.Decimal, accountRef, idempotencyKey string) (port.ACHTransfer, error) {
	m.transfers = append(m.transfers, idempotencyKey)
	if m.createTransferFunc != nil {
		return m.createTransferFunc(ctx, amount, accountRef, idempotencyKey)
	}
	return port.ACHTransfer{Reference: "tr_" + idempotencyKey, Status: "pending"}, nil
}

type mockBankVerifier struct {
	verifyAccountFunc     func(ctx context.Context, accountRef string) (bool, error)
	getAccountBalanceFunc func(ctx context.Context, accountRef string) (decimal.Decimal, error)
}

func (m *mockBankVerifier) VerifyAccount(ctx context.Context, accountRef string) (bool, error) {
	if m.verifyAccountFunc != nil {
		return m.verifyAccountFunc(ctx, accountRef)
	}
	return true, nil
}

func (m *mockBankVerifier) GetAccountBalance(ctx context.Context, accountRef string) (decimal.Decimal, error) {
	if m.getAccountBalanceFunc != nil {
		return m.getAccountBalanceFunc(ctx, accountRef)
	}
	return decimal.NewFromInt(100000), nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}
