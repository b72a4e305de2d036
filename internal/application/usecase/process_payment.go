package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adamj-ops/everyday-lending/internal/application/dto"
	"github.com/adamj-ops/everyday-lending/internal/domain/model"
	"github.com/adamj-ops/everyday-lending/internal/domain/port"
	"github.com/adamj-ops/everyday-lending/internal/domain/service"
	"github.com/adamj-ops/everyday-lending/internal/domain/valueobject"
	"github.com/adamj-ops/everyday-lending/pkg/retry"
)

// ProcessPaymentUseCase collects one payment on a rail and applies it to a
// loan through the allocation waterfall.
type ProcessPaymentUseCase struct {
	loanRepo      port.LoanRepository
	paymentRepo   port.PaymentRepository
	cardProcessor port.CardProcessor
	achClient     port.ACHClient
	bankVerifier  port.BankVerifier
	publisher     port.EventPublisher
	engine        *service.AllocationEngine
	lateFees      *service.LateFeeCalculator
	retryPolicy   retry.Policy
	logger        *slog.Logger
}

// NewProcessPaymentUseCase wires dependencies.
func NewProcessPaymentUseCase(
	loanRepo port.LoanRepository,
	paymentRepo port.PaymentRepository,
	cardProcessor port.CardProcessor,
	achClient port.ACHClient,
	bankVerifier port.BankVerifier,
	publisher port.EventPublisher,
	engine *service.AllocationEngine,
	lateFees *service.LateFeeCalculator,
	logger *slog.Logger,
) *ProcessPaymentUseCase {
	return &ProcessPaymentUseCase{
		loanRepo:      loanRepo,
		paymentRepo:   paymentRepo,
		cardProcessor: cardProcessor,
		achClient:     achClient,
		bankVerifier:  bankVerifier,
		publisher:     publisher,
		engine:        engine,
		lateFees:      lateFees,
		retryPolicy:   retry.DefaultPolicy(),
		logger:        logger,
	}
}

// Execute collects and allocates a payment.
//
// The rail is charged exactly once: the payment ID doubles as the rail
// idempotency key, and the optimistic-locking retry on the persist step
// never re-enters the rail call. A caller-supplied idempotency key survives
// process crashes too: the key is the payment ID, so a retried request
// either finds the recorded payment and returns it, or re-charges under the
// same key and the processor deduplicates.
func (uc *ProcessPaymentUseCase) Execute(
	ctx context.Context,
	req dto.ProcessPaymentRequest,
) (dto.PaymentResponse, error) {
	method, err := valueobject.NewPaymentMethod(req.Method)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("parse method: %w", err)
	}
	if !req.Amount.IsPositive() {
		return dto.PaymentResponse{}, fmt.Errorf("payment amount must be positive, got %s", req.Amount)
	}

	// 1. Resolve the payment ID. A caller-supplied idempotency key is the
	// ID; if that payment already exists this request is a retry of a
	// completed attempt and the recorded payment is returned as is.
	paymentID := req.IdempotencyKey
	if paymentID == "" {
		paymentID = uuid.New().String()
	} else {
		if _, parseErr := uuid.Parse(paymentID); parseErr != nil {
			return dto.PaymentResponse{}, fmt.Errorf("idempotency key must be a UUID: %w", parseErr)
		}
		existing, findErr := uc.paymentRepo.FindByID(ctx, paymentID)
		if findErr == nil {
			uc.logger.Info("idempotent replay, returning recorded payment",
				"payment_id", paymentID, "loan_id", req.LoanID)
			return toPaymentResponse(existing), nil
		}
		if !errors.Is(findErr, port.ErrNotFound) {
			return dto.PaymentResponse{}, fmt.Errorf("look up idempotency key: %w", findErr)
		}
	}

	// 2. Retrieve the loan.
	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return dto.PaymentResponse{}, fmt.Errorf("loan %s: %w", req.LoanID, ErrLoanNotFound)
		}
		return dto.PaymentResponse{}, fmt.Errorf("find loan: %w", err)
	}

	// 3. Assess a late fee if the payment is past due. The assessed amount
	// is kept separately so a conflict refresh can re-apply it.
	assessedLateFee := decimal.Zero
	if req.DaysLate != nil {
		assessedLateFee, err = uc.lateFees.Calculate(req.Amount, *req.DaysLate)
		if err != nil {
			return dto.PaymentResponse{}, fmt.Errorf("calculate late fee: %w", err)
		}
		loan.LateFeesOwed = loan.LateFeesOwed.Add(assessedLateFee)
	}

	// 4. Charge the rail. The payment ID is the idempotency key.
	railReference, err := uc.chargeRail(ctx, req, paymentID)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("charge rail: %w", err)
	}

	uc.logger.Info("rail charge created",
		"payment_id", paymentID,
		"loan_id", req.LoanID,
		"method", method.String(),
		"rail_reference", railReference,
	)

	// 5. Allocate and persist, retrying on optimistic-lock conflicts with
	// a fresh snapshot. Anything other than a version conflict aborts.
	var payment model.Payment
	err = retry.Do(ctx, uc.retryPolicy, func() error {
		allocation, err := uc.engine.Allocate(loan, req.Amount)
		if err != nil {
			return retry.Permanent(fmt.Errorf("allocate payment: %w", err))
		}

		payment, err = model.NewPayment(
			paymentID, req.LoanID, req.LenderID,
			req.Amount, method, allocation,
			railReference, req.Notes,
			time.Now().UTC(),
		)
		if err != nil {
			return retry.Permanent(fmt.Errorf("build payment: %w", err))
		}

		err = uc.paymentRepo.SaveWithLoanTotals(ctx, payment, loan, loan.Version)
		if errors.Is(err, port.ErrVersionConflict) {
			fresh, findErr := uc.loanRepo.FindByID(ctx, req.LoanID)
			if findErr != nil {
				return retry.Permanent(fmt.Errorf("refresh loan after conflict: %w", findErr))
			}
			uc.logger.Warn("loan version conflict, retrying allocation",
				"loan_id", req.LoanID, "stale_version", loan.Version, "fresh_version", fresh.Version)
			fresh.LateFeesOwed = fresh.LateFeesOwed.Add(assessedLateFee)
			loan = fresh
			return err
		}
		if err != nil {
			return retry.Permanent(fmt.Errorf("save payment: %w", err))
		}
		return nil
	})
	if err != nil {
		return dto.PaymentResponse{}, err
	}

	// 6. Publish events. Publish failures are logged, not surfaced: the
	// payment is already recorded and money has moved.
	if err := uc.publisher.Publish(ctx, payment.DomainEvents()...); err != nil {
		uc.logger.Error("publish payment events", "payment_id", payment.ID(), "error", err)
	}

	return toPaymentResponse(payment), nil
}

// chargeRail dispatches to the card processor or the ACH originator. ACH
// debits are preceded by an account verification check.
func (uc *ProcessPaymentUseCase) chargeRail(
	ctx context.Context,
	req dto.ProcessPaymentRequest,
	idempotencyKey string,
) (string, error) {
	switch req.Method {
	case valueobject.PaymentMethodCard.String():
		charge, err := uc.cardProcessor.CreatePaymentIntent(ctx, req.Amount, "usd", req.CustomerRef, idempotencyKey)
		if err != nil {
			return "", fmt.Errorf("create payment intent: %w: %w", err, ErrPaymentFailed)
		}
		return charge.Reference, nil

	case valueobject.PaymentMethodACHDebit.String():
		verified, err := uc.bankVerifier.VerifyAccount(ctx, req.AccountRef)
		if err != nil {
			return "", fmt.Errorf("verify bank account: %w: %w", err, ErrPaymentFailed)
		}
		if !verified {
			return "", fmt.Errorf("bank account %s not verified: %w", req.AccountRef, ErrPaymentFailed)
		}
		transfer, err := uc.achClient.CreateTransfer(ctx, req.Amount, req.AccountRef, idempotencyKey)
		if err != nil {
			return "", fmt.Errorf("create transfer: %w: %w", err, ErrPaymentFailed)
		}
		return transfer.Reference, nil

	default:
		return "", fmt.Errorf("unsupported payment method: %s", req.Method)
	}
}

func toPaymentResponse(p model.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:       p.ID(),
		LoanID:   p.LoanID(),
		LenderID: p.LenderID(),
		Amount:   p.Amount(),
		Method:   p.Method().String(),
		Status:   p.Status().String(),
		Allocation: dto.AllocationResponse{
			Interest:    p.Allocation().Interest,
			Fees:        p.Allocation().Fees,
			LateFees:    p.Allocation().LateFees,
			Principal:   p.Allocation().Principal,
			Overpayment: p.Allocation().Overpayment,
		},
		RailReference: p.RailReference(),
		FailureReason: p.FailureReason(),
		Notes:         p.Notes(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}
