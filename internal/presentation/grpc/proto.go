package grpc

// proto.go defines the gRPC server interface derived from
// lending/payments/v1/payments.proto. This file serves as a stand-in for
// buf-generated code; once `buf generate` is run, replace it with the import
// from the generated package.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ---------------------------------------------------------------------------
// Wire messages. Monetary values cross the boundary as decimal strings.
// ---------------------------------------------------------------------------

type Allocation struct {
	Interest    string `json:"interest"`
	Fees        string `json:"fees"`
	LateFees    string `json:"late_fees"`
	Principal   string `json:"principal"`
	Overpayment string `json:"overpayment"`
}

type Payment struct {
	Id            string      `json:"id"`
	LoanId        string      `json:"loan_id"`
	LenderId      string      `json:"lender_id,omitempty"`
	Amount        string      `json:"amount"`
	Method        string      `json:"method"`
	Status        string      `json:"status"`
	Allocation    *Allocation `json:"allocation"`
	RailReference string      `json:"rail_reference"`
	FailureReason string      `json:"failure_reason,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	CreatedAt     string      `json:"created_at"`
	UpdatedAt     string      `json:"updated_at"`
}

type ProcessPaymentRequest struct {
	LoanId         string `json:"loan_id"`
	Amount         string `json:"amount"`
	Method         string `json:"method"`
	CustomerRef    string `json:"customer_ref,omitempty"`
	AccountRef     string `json:"account_ref,omitempty"`
	DaysLate       *int   `json:"days_late,omitempty"`
	Notes          string `json:"notes,omitempty"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

type ProcessPaymentResponse struct {
	Payment *Payment `json:"payment"`
}

type ProcessSplitPaymentRequest struct {
	LoanId         string `json:"loan_id"`
	Amount         string `json:"amount"`
	Method         string `json:"method"`
	CustomerRef    string `json:"customer_ref,omitempty"`
	AccountRef     string `json:"account_ref,omitempty"`
	DaysLate       *int   `json:"days_late,omitempty"`
	Notes          string `json:"notes,omitempty"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

type ProcessSplitPaymentResponse struct {
	LoanId   string     `json:"loan_id"`
	Total    string     `json:"total"`
	Payments []*Payment `json:"payments"`
}

type GetPaymentRequest struct {
	PaymentId string `json:"payment_id"`
}

type GetPaymentResponse struct {
	Payment *Payment `json:"payment"`
}

type ListPaymentsRequest struct {
	LoanId string `json:"loan_id"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

type ListPaymentsResponse struct {
	Payments []*Payment `json:"payments"`
}

// ---------------------------------------------------------------------------
// Service interface and registration
// ---------------------------------------------------------------------------

// PaymentServiceServer is the server API for PaymentService.
type PaymentServiceServer interface {
	ProcessPayment(context.Context, *ProcessPaymentRequest) (*ProcessPaymentResponse, error)
	ProcessSplitPayment(context.Context, *ProcessSplitPaymentRequest) (*ProcessSplitPaymentResponse, error)
	GetPayment(context.Context, *GetPaymentRequest) (*GetPaymentResponse, error)
	ListPayments(context.Context, *ListPaymentsRequest) (*ListPaymentsResponse, error)
	mustEmbedUnimplementedPaymentServiceServer()
}

// UnimplementedPaymentServiceServer provides forward-compatible default implementations.
type UnimplementedPaymentServiceServer struct{}

func (UnimplementedPaymentServiceServer) ProcessPayment(context.Context, *ProcessPaymentRequest) (*ProcessPaymentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ProcessPayment not implemented")
}
func (UnimplementedPaymentServiceServer) ProcessSplitPayment(context.Context, *ProcessSplitPaymentRequest) (*ProcessSplitPaymentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ProcessSplitPayment not implemented")
}
func (UnimplementedPaymentServiceServer) GetPayment(context.Context, *GetPaymentRequest) (*GetPaymentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetPayment not implemented")
}
func (UnimplementedPaymentServiceServer) ListPayments(context.Context, *ListPaymentsRequest) (*ListPaymentsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListPayments not implemented")
}
func (UnimplementedPaymentServiceServer) mustEmbedUnimplementedPaymentServiceServer() {}

// RegisterPaymentServiceServer registers the PaymentServiceServer with the gRPC server.
func RegisterPaymentServiceServer(s *grpclib.Server, srv PaymentServiceServer) {
	s.RegisterService(&_PaymentService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _PaymentService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "lending.payments.v1.PaymentService",
	HandlerType: (*PaymentServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "ProcessPayment", Handler: _PaymentService_ProcessPayment_Handler},           //nolint:revive // gRPC handler registration
		{MethodName: "ProcessSplitPayment", Handler: _PaymentService_ProcessSplitPayment_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "GetPayment", Handler: _PaymentService_GetPayment_Handler},                   //nolint:revive // gRPC handler registration
		{MethodName: "ListPayments", Handler: _PaymentService_ListPayments_Handler},               //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _PaymentService_ProcessPayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ProcessPaymentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PaymentServiceServer).ProcessPayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/lending.payments.v1.PaymentService/ProcessPayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PaymentServiceServer).ProcessPayment(ctx, req.(*ProcessPaymentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _PaymentService_ProcessSplitPayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ProcessSplitPaymentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PaymentServiceServer).ProcessSplitPayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/lending.payments.v1.PaymentService/ProcessSplitPayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PaymentServiceServer).ProcessSplitPayment(ctx, req.(*ProcessSplitPaymentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _PaymentService_GetPayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetPaymentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PaymentServiceServer).GetPayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/lending.payments.v1.PaymentService/GetPayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PaymentServiceServer).GetPayment(ctx, req.(*GetPaymentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _PaymentService_ListPayments_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListPaymentsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PaymentServiceServer).ListPayments(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/lending.payments.v1.PaymentService/ListPayments",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PaymentServiceServer).ListPayments(ctx, req.(*ListPaymentsRequest))
	}
	return interceptor(ctx, in, info, handler)
}
