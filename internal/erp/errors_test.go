package erp

import (
	"errors"
	"testing"
)

func TestClassifyRPCError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{
			name: "nil passes through",
			in:   nil,
			want: nil,
		},
		{
			name: "missing model",
			in:   errors.New("Fault 2: 'Object some.model does not exist in model registry'"),
			want: ErrInvalidModel,
		},
		{
			name: "missing method",
			in:   errors.New("Fault 2: 'account.move has no method frobnicate'"),
			want: ErrInvalidMethod,
		},
		{
			name: "access denied",
			in:   errors.New("Fault 1: 'Access Denied'"),
			want: ErrAuthFailed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyRPCError(tt.in)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("classifyRPCError(nil) = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("classifyRPCError(%v) = %v, want errors.Is %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestClassifyRPCErrorFaultCode(t *testing.T) {
	got := classifyRPCError(errors.New("Fault 3: 'ValidationError: something broke'"))

	var rpcErr *RPCError
	if !errors.As(got, &rpcErr) {
		t.Fatalf("expected *RPCError, got %T", got)
	}
	if rpcErr.Code != 3 {
		t.Errorf("Code = %d, want 3", rpcErr.Code)
	}
	if rpcErr.Message != "ValidationError: something broke" {
		t.Errorf("Message = %q", rpcErr.Message)
	}
	if !errors.Is(got, ErrRPC) {
		t.Error("RPCError should unwrap to ErrRPC")
	}
}

func TestClassifyRPCErrorPlainMessage(t *testing.T) {
	in := errors.New("dial tcp: connection refused")
	got := classifyRPCError(in)

	var rpcErr *RPCError
	if !errors.As(got, &rpcErr) {
		t.Fatalf("expected *RPCError, got %T", got)
	}
	if rpcErr.Code != 0 {
		t.Errorf("Code = %d, want 0", rpcErr.Code)
	}
	if !errors.Is(got, in) {
		t.Error("original error should remain in the chain")
	}
}
