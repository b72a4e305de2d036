package usecase

import (
	"context"
	"fmt"

	"github.com/adamj-ops/everyday-lending/internal/application/dto"
	"github.com/adamj-ops/everyday-lending/internal/domain/port"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// ListPaymentsUseCase retrieves a loan's payment history, newest first.
type ListPaymentsUseCase struct {
	paymentRepo port.PaymentRepository
}

// NewListPaymentsUseCase wires dependencies.
func NewListPaymentsUseCase(paymentRepo port.PaymentRepository) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{paymentRepo: paymentRepo}
}

// Execute returns one page of the loan's payments. A loan with no payments
// yields an empty page, not an error.
func (uc *ListPaymentsUseCase) Execute(
	ctx context.Context,
	req dto.ListPaymentsRequest,
) (dto.PaymentListResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	payments, err := uc.paymentRepo.ListByLoan(ctx, req.LoanID, limit, offset)
	if err != nil {
		return dto.PaymentListResponse{}, fmt.Errorf("list payments: %w", err)
	}

	resp := dto.PaymentListResponse{Payments: make([]dto.PaymentResponse, 0, len(payments))}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, toPaymentResponse(p))
	}
	return resp, nil
}
