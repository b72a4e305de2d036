package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/adamj-ops/everyday-lending/internal/application/dto"
	"github.com/adamj-ops/everyday-lending/internal/application/usecase"
)

// Compile-time interface check.
var _ PaymentServiceServer = (*PaymentHandler)(nil)

// PaymentHandler exposes payment operations over gRPC.
type PaymentHandler struct {
	UnimplementedPaymentServiceServer

	process      *usecase.ProcessPaymentUseCase
	processSplit *usecase.ProcessSplitPaymentUseCase
	get          *usecase.GetPaymentUseCase
	list         *usecase.ListPaymentsUseCase
}

// NewPaymentHandler creates a new handler with all use-case dependencies.
func NewPaymentHandler(
	process *usecase.ProcessPaymentUseCase,
	processSplit *usecase.ProcessSplitPaymentUseCase,
	get *usecase.GetPaymentUseCase,
	list *usecase.ListPaymentsUseCase,
) *PaymentHandler {
	return &PaymentHandler{
		process:      process,
		processSplit: processSplit,
		get:          get,
		list:         list,
	}
}

// ProcessPayment collects and allocates a single payment.
func (h *PaymentHandler) ProcessPayment(ctx context.Context, req *ProcessPaymentRequest) (*ProcessPaymentResponse, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid amount: %v", err)
	}

	resp, err := h.process.Execute(ctx, dto.ProcessPaymentRequest{
		LoanID:         req.LoanId,
		Amount:         amount,
		Method:         req.Method,
		CustomerRef:    req.CustomerRef,
		AccountRef:     req.AccountRef,
		DaysLate:       req.DaysLate,
		Notes:          req.Notes,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &ProcessPaymentResponse{Payment: toWirePayment(resp)}, nil
}

// ProcessSplitPayment collects a payment on behalf of all participating lenders.
func (h *PaymentHandler) ProcessSplitPayment(ctx context.Context, req *ProcessSplitPaymentRequest) (*ProcessSplitPaymentResponse, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid amount: %v", err)
	}

	resp, err := h.processSplit.Execute(ctx, dto.ProcessSplitPaymentRequest{
		LoanID:         req.LoanId,
		Amount:         amount,
		Method:         req.Method,
		CustomerRef:    req.CustomerRef,
		AccountRef:     req.AccountRef,
		DaysLate:       req.DaysLate,
		Notes:          req.Notes,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		return nil, mapError(err)
	}

	out := &ProcessSplitPaymentResponse{
		LoanId:   resp.LoanID,
		Total:    resp.Total.StringFixed(2),
		Payments: make([]*Payment, 0, len(resp.Payments)),
	}
	for _, p := range resp.Payments {
		out.Payments = append(out.Payments, toWirePayment(p))
	}
	return out, nil
}

// GetPayment retrieves a payment by ID.
func (h *PaymentHandler) GetPayment(ctx context.Context, req *GetPaymentRequest) (*GetPaymentResponse, error) {
	resp, err := h.get.Execute(ctx, dto.GetPaymentRequest{PaymentID: req.PaymentId})
	if err != nil {
		return nil, mapError(err)
	}
	return &GetPaymentResponse{Payment: toWirePayment(resp)}, nil
}

// ListPayments retrieves a loan's payment history, newest first.
func (h *PaymentHandler) ListPayments(ctx context.Context, req *ListPaymentsRequest) (*ListPaymentsResponse, error) {
	resp, err := h.list.Execute(ctx, dto.ListPaymentsRequest{
		LoanID: req.LoanId,
		Limit:  req.Limit,
		Offset: req.Offset,
	})
	if err != nil {
		return nil, mapError(err)
	}

	out := &ListPaymentsResponse{Payments: make([]*Payment, 0, len(resp.Payments))}
	for _, p := range resp.Payments {
		out.Payments = append(out.Payments, toWirePayment(p))
	}
	return out, nil
}

func toWirePayment(p dto.PaymentResponse) *Payment {
	return &Payment{
		Id:       p.ID,
		LoanId:   p.LoanID,
		LenderId: p.LenderID,
		Amount:   p.Amount.StringFixed(2),
		Method:   p.Method,
		Status:   p.Status,
		Allocation: &Allocation{
			Interest:    p.Allocation.Interest.StringFixed(2),
			Fees:        p.Allocation.Fees.StringFixed(2),
			LateFees:    p.Allocation.LateFees.StringFixed(2),
			Principal:   p.Allocation.Principal.StringFixed(2),
			Overpayment: p.Allocation.Overpayment.StringFixed(2),
		},
		RailReference: p.RailReference,
		FailureReason: p.FailureReason,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:     p.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func mapError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrLoanNotFound), errors.Is(err, usecase.ErrPaymentNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, usecase.ErrNoParticipations):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, usecase.ErrPaymentFailed):
		return status.Error(codes.Aborted, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
