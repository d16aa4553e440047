package erp

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Sentinel errors for the classes of failure the gateway distinguishes.
// Callers use errors.Is to branch on them.
var (
	// ErrAuthFailed indicates the service account could not authenticate
	// against the Odoo common endpoint.
	ErrAuthFailed = errors.New("erp: authentication failed")

	// ErrNotFound indicates no record matched the given criteria.
	ErrNotFound = errors.New("erp: no record found for the given criteria")

	// ErrInvalidModel indicates the Odoo model does not exist.
	ErrInvalidModel = errors.New("erp: invalid model")

	// ErrInvalidMethod indicates the method does not exist on the model.
	ErrInvalidMethod = errors.New("erp: invalid method for model")

	// ErrRPC is the generic wrapper for any other XML-RPC failure.
	ErrRPC = errors.New("erp: RPC call failed")
)

// RPCError is a structured error extracted from an Odoo XML-RPC fault.
type RPCError struct {
	Code    int
	Message string
	Err     error
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("%s: %s", ErrRPC, e.Message)
}

func (e *RPCError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrRPC) match any structured RPC failure while
// Unwrap keeps the original cause reachable.
func (e *RPCError) Is(target error) bool {
	return target == ErrRPC
}

// faultRe matches the fault rendering produced by kolo/xmlrpc,
// e.g. `Fault 1: 'Access Denied'`.
var faultRe = regexp.MustCompile(`Fault (\d+): '(.*?)'`)

// classifyRPCError upgrades a raw xmlrpc error to a typed gateway error.
// kolo/xmlrpc surfaces server faults as flat strings, so classification
// is necessarily by message content.
func classifyRPCError(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	code := 0
	if m := faultRe.FindStringSubmatch(msg); len(m) == 3 {
		if n, cerr := strconv.Atoi(m[1]); cerr == nil {
			code = n
		}
		msg = m[2]
	}

	switch {
	case strings.Contains(msg, "does not exist") && strings.Contains(msg, "model"),
		strings.Contains(msg, "No model named"):
		return fmt.Errorf("%w: %s", ErrInvalidModel, msg)
	case strings.Contains(msg, "has no method"),
		strings.Contains(msg, "method does not exist"):
		return fmt.Errorf("%w: %s", ErrInvalidMethod, msg)
	case strings.Contains(msg, "Access Denied"),
		strings.Contains(msg, "Access denied"):
		return fmt.Errorf("%w: %s", ErrAuthFailed, msg)
	}

	return &RPCError{Code: code, Message: msg, Err: err}
}
