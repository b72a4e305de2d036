package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/adamj-ops/everyday-lending/internal/application/dto"
	"github.com/adamj-ops/everyday-lending/internal/domain/event"
	"github.com/adamj-ops/everyday-lending/internal/domain/model"
	"github.com/adamj-ops/everyday-lending/internal/domain/port"
)

// ProcessSplitPaymentUseCase collects one amount on behalf of every lender
// participating in a loan, prorated by ownership percentage.
type ProcessSplitPaymentUseCase struct {
	participationRepo port.ParticipationRepository
	processPayment    *ProcessPaymentUseCase
	publisher         port.EventPublisher
	logger            *slog.Logger
}

// NewProcessSplitPaymentUseCase wires dependencies.
func NewProcessSplitPaymentUseCase(
	participationRepo port.ParticipationRepository,
	processPayment *ProcessPaymentUseCase,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *ProcessSplitPaymentUseCase {
	return &ProcessSplitPaymentUseCase{
		participationRepo: participationRepo,
		processPayment:    processPayment,
		publisher:         publisher,
		logger:            logger,
	}
}

// Execute prorates the amount across the loan's active participations and
// runs the single-payment flow once per lender share, sequentially.
//
// Shares are processed in participation order. A failure partway through
// stops the run and reports how many shares had already been collected;
// completed shares are real payments and are not rolled back.
func (uc *ProcessSplitPaymentUseCase) Execute(
	ctx context.Context,
	req dto.ProcessSplitPaymentRequest,
) (dto.SplitPaymentResponse, error) {
	if !req.Amount.IsPositive() {
		return dto.SplitPaymentResponse{}, fmt.Errorf("payment amount must be positive, got %s", req.Amount)
	}

	// 1. Fetch active participations.
	participations, err := uc.participationRepo.FindActiveByLoan(ctx, req.LoanID)
	if err != nil {
		return dto.SplitPaymentResponse{}, fmt.Errorf("find participations: %w", err)
	}
	if len(participations) == 0 {
		return dto.SplitPaymentResponse{}, fmt.Errorf("loan %s: %w", req.LoanID, ErrNoParticipations)
	}

	// A caller-supplied idempotency key seeds a deterministic per-share
	// key, so retrying the split replays shares that already collected.
	var idempotencyBase uuid.UUID
	if req.IdempotencyKey != "" {
		idempotencyBase, err = uuid.Parse(req.IdempotencyKey)
		if err != nil {
			return dto.SplitPaymentResponse{}, fmt.Errorf("idempotency key must be a UUID: %w", err)
		}
	}

	// 2. Floor each share to the cent, hand leftover cents to the largest shares.
	shares := model.ProrateShares(req.Amount, participations)

	// 3. Collect each lender's share. The late-fee assessment, if any,
	// rides on the first collected share only so it is applied once.
	resp := dto.SplitPaymentResponse{
		LoanID:   req.LoanID,
		Total:    req.Amount,
		Payments: make([]dto.PaymentResponse, 0, len(shares)),
	}
	paymentIDs := make([]string, 0, len(shares))

	daysLate := req.DaysLate
	for i, p := range participations {
		if shares[i].IsZero() {
			continue
		}

		shareReq := dto.ProcessPaymentRequest{
			LoanID:      req.LoanID,
			Amount:      shares[i],
			Method:      req.Method,
			CustomerRef: req.CustomerRef,
			AccountRef:  req.AccountRef,
			Notes:       req.Notes,
			LenderID:    p.LenderID,
			DaysLate:    daysLate,
		}
		daysLate = nil
		if req.IdempotencyKey != "" {
			shareReq.IdempotencyKey = uuid.NewSHA1(idempotencyBase, []byte(p.LenderID)).String()
		}

		payment, err := uc.processPayment.Execute(ctx, shareReq)
		if err != nil {
			return resp, fmt.Errorf("process share %d/%d for lender %s: %w",
				i+1, len(participations), p.LenderID, err)
		}

		resp.Payments = append(resp.Payments, payment)
		paymentIDs = append(paymentIDs, payment.ID)
	}

	uc.logger.Info("split payment processed",
		"loan_id", req.LoanID,
		"total", req.Amount.String(),
		"lender_count", len(paymentIDs),
	)

	// 4. Publish the summary event.
	evt := event.NewSplitPaymentProcessed(req.LoanID, req.Amount, paymentIDs)
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		uc.logger.Error("publish split payment event", "loan_id", req.LoanID, "error", err)
	}

	return resp, nil
}
