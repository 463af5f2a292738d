package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

var (
	// ErrInvalidKey is returned when a raw private key cannot be parsed in any supported encoding
	ErrInvalidKey = errors.New("invalid private key")
	// ErrInvalidAmount is returned for non-positive or malformed transfer amounts
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidRecipient is returned when the recipient address does not parse for the chain
	ErrInvalidRecipient = errors.New("invalid recipient address")
)

// FailureKind classifies chain rejections into the categories shown to users
type FailureKind string

const (
	FailureUnknown           FailureKind = "unknown"
	FailureInsufficientFunds FailureKind = "insufficient_funds"
	FailureSlippage          FailureKind = "slippage_exceeded"
	FailureExpired           FailureKind = "expired"
)

// ClassifyFailure maps a node or aggregator message to a FailureKind
func ClassifyFailure(msg string) FailureKind {
	m := strings.ToLower(msg)
	switch {
	case strings.Contains(m, "insufficient funds"), strings.Contains(m, "insufficient lamports"):
		return FailureInsufficientFunds
	case strings.Contains(m, "slippage"):
		return FailureSlippage
	case strings.Contains(m, "blockhash not found"), strings.Contains(m, "block height exceeded"):
		return FailureExpired
	}
	return FailureUnknown
}

// SubmissionError is a chain-level rejection of a transaction.
// Err keeps the node's reason verbatim.
type SubmissionError struct {
	Chain Blockchain
	Kind  FailureKind
	Err   error
}

// NewSubmissionError wraps err and classifies its message
func NewSubmissionError(chain Blockchain, err error) *SubmissionError {
	return &SubmissionError{
		Chain: chain,
		Kind:  ClassifyFailure(err.Error()),
		Err:   err,
	}
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("%s transaction rejected: %v", e.Chain, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// IsSubmissionError checks if error is SubmissionError
func IsSubmissionError(err error) bool {
	var target *SubmissionError
	return errors.As(err, &target)
}

// ConfirmationTimeoutError means the transaction was sent but not confirmed in time
type ConfirmationTimeoutError struct {
	Chain Blockchain
	TxID  string
}

func (e *ConfirmationTimeoutError) Error() string {
	return fmt.Sprintf("%s transaction %s was not confirmed in time", e.Chain, e.TxID)
}

// IsConfirmationTimeoutError checks if error is ConfirmationTimeoutError
func IsConfirmationTimeoutError(err error) bool {
	var target *ConfirmationTimeoutError
	return errors.As(err, &target)
}

// PriceFetchError means the upstream price feed is unavailable
type PriceFetchError struct {
	Err error
}

func (e *PriceFetchError) Error() string {
	return fmt.Sprintf("price feed unavailable: %v", e.Err)
}

func (e *PriceFetchError) Unwrap() error {
	return e.Err
}

// IsPriceFetchError checks if error is PriceFetchError
func IsPriceFetchError(err error) bool {
	var target *PriceFetchError
	return errors.As(err, &target)
}
