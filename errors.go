package go_wcpay

import (
	"errors"
	"fmt"
)

// ValidationError indicates that a request is missing required fields or contains invalid data.
type ValidationError struct {
	Fields []FieldError
}

type FieldError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation error"
	}
	if len(e.Fields) == 1 {
		fe := e.Fields[0]
		if fe.Field == "" {
			return fmt.Sprintf("validation error: %s", fe.Message)
		}
		return fmt.Sprintf("validation error: %s: %s", fe.Field, fe.Message)
	}
	return fmt.Sprintf("validation error: %d fields", len(e.Fields))
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// IsValidationError checks whether err is a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// APIError represents a non-2xx response from the store backend.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	if e == nil {
		return "store api error"
	}
	if len(e.Body) == 0 {
		return fmt.Sprintf("store api error: status %d", e.StatusCode)
	}
	b := e.Body
	if len(b) > 1024 {
		b = b[:1024]
	}
	return fmt.Sprintf("store api error: status %d: %s", e.StatusCode, string(b))
}

// Stage identifies where a payment attempt failed.
type Stage string

const (
	StageSubmit     Stage = "submit"
	StageCredential Stage = "credential"
	StagePlaceOrder Stage = "place_order"
	StageConfirm    Stage = "confirm"
)

// PaymentError is the single terminal failure of a confirmation attempt.
//
// Every failure class (validation, credential creation, transport,
// business rejection, soft failure, step-up) folds into one of these so
// callers always get a human-readable Message to show the shopper. The
// wallet button stays re-clickable; a retry is simply a new attempt.
type PaymentError struct {
	Stage   Stage
	Message string
	Err     error
}

func (e *PaymentError) Error() string {
	if e == nil {
		return "payment error"
	}
	if e.Message == "" {
		return fmt.Sprintf("payment error at %s", e.Stage)
	}
	return fmt.Sprintf("payment error at %s: %s", e.Stage, e.Message)
}

func (e *PaymentError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsPaymentError checks whether err is a *PaymentError.
func IsPaymentError(err error) bool {
	var pe *PaymentError
	return errors.As(err, &pe)
}

// Fallback messages when the backend or SDK did not supply one.
const (
	// GenericPaymentFailedMessage covers business rejections without a usable message.
	GenericPaymentFailedMessage = "The payment could not be completed. Please try again or use a different payment method."
	// GenericConnectionMessage covers transport failures with no message of their own.
	GenericConnectionMessage = "Connection to the server was interrupted. Please check your connection and try again."
	// AdditionalActionMessage covers a step-up sheet closed without an explicit SDK error.
	AdditionalActionMessage = "The payment requires an additional action before it can be completed."
)
