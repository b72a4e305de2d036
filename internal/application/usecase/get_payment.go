package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/adamj-ops/everyday-lending/internal/application/dto"
	"github.com/adamj-ops/everyday-lending/internal/domain/port"
)

// GetPaymentUseCase retrieves a single payment by ID.
type GetPaymentUseCase struct {
	paymentRepo port.PaymentRepository
}

// NewGetPaymentUseCase wires dependencies.
func NewGetPaymentUseCase(paymentRepo port.PaymentRepository) *GetPaymentUseCase {
	return &GetPaymentUseCase{paymentRepo: paymentRepo}
}

// Execute returns the payment or ErrPaymentNotFound.
func (uc *GetPaymentUseCase) Execute(
	ctx context.Context,
	req dto.GetPaymentRequest,
) (dto.PaymentResponse, error) {
	payment, err := uc.paymentRepo.FindByID(ctx, req.PaymentID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return dto.PaymentResponse{}, fmt.Errorf("payment %s: %w", req.PaymentID, ErrPaymentNotFound)
		}
		return dto.PaymentResponse{}, fmt.Errorf("find payment: %w", err)
	}
	return toPaymentResponse(payment), nil
}
