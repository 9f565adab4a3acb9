package errors

import (
	stderrors "errors"
	"fmt"
)

const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeInvalidQuantity   = "INVALID_QUANTITY"
	CodeInvalidCost       = "INVALID_COST"
	CodeInvalidPrice      = "INVALID_PRICE"
	CodeNotFound          = "NOT_FOUND"
	CodeProductNotFound   = "PRODUCT_NOT_FOUND"
	CodeShelfNotFound     = "SHELF_NOT_FOUND"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeTransient         = "TRANSIENT_FAILURE"
	CodeInternal          = "INTERNAL_ERROR"
)

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Code    string
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Code:    CodeValidation,
		Message: message,
		Details: details,
	}
}

// NewInvalidQuantityError reports a non-positive quantity.
func NewInvalidQuantityError(quantity int) *ValidationError {
	return &ValidationError{
		Code:    CodeInvalidQuantity,
		Message: fmt.Sprintf("quantity must be a positive integer, got %d", quantity),
		Details: []ValidationDetail{{Field: "quantity", Message: "must be greater than 0"}},
	}
}

// NewInvalidCostError reports a cost that cannot be recorded; reason reads
// after the field name ("must be greater than or equal to 0").
func NewInvalidCostError(field, reason string) *ValidationError {
	return &ValidationError{
		Code:    CodeInvalidCost,
		Message: field + " " + reason,
		Details: []ValidationDetail{{Field: field, Message: reason}},
	}
}

func NewInvalidPriceError(field, reason string) *ValidationError {
	return &ValidationError{
		Code:    CodeInvalidPrice,
		Message: field + " " + reason,
		Details: []ValidationDetail{{Field: field, Message: reason}},
	}
}

// NewQuantityOutOfRangeError reports a quantity above the largest count the
// ledger can store.
func NewQuantityOutOfRangeError(quantity, max int) *ValidationError {
	return &ValidationError{
		Code:    CodeInvalidQuantity,
		Message: fmt.Sprintf("quantity must be at most %d, got %d", max, quantity),
		Details: []ValidationDetail{{Field: "quantity", Message: fmt.Sprintf("must be less than or equal to %d", max)}},
	}
}

// NewStockOverflowError reports a purchase that would push a product's
// running totals past the storable range. Stock is left untouched.
func NewStockOverflowError(productID string, quantity int) *ValidationError {
	return &ValidationError{
		Code:    CodeInvalidQuantity,
		Message: fmt.Sprintf("purchasing %d units would overflow the stock totals of product %s", quantity, productID),
		Details: []ValidationDetail{{Field: "quantity", Message: "exceeds the storable stock total"}},
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stderrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Code    string
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Code: CodeNotFound, Message: message}
}

func NewProductNotFoundError(productID string) *NotFoundError {
	return &NotFoundError{
		Code:    CodeProductNotFound,
		Message: fmt.Sprintf("product %s not found", productID),
	}
}

func NewShelfNotFoundError(shelfID string) *NotFoundError {
	return &NotFoundError{
		Code:    CodeShelfNotFound,
		Message: fmt.Sprintf("shelf %s not found", shelfID),
	}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	var nf *NotFoundError
	if stderrors.As(err, &nf) {
		return nf, true
	}
	return nil, false
}

// InsufficientStockError is a business-rule rejection; stock was left untouched.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: available %d, requested %d",
		e.ProductID, e.Available, e.Requested)
}

func NewInsufficientStockError(productID string, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{
		ProductID: productID,
		Requested: requested,
		Available: available,
	}
}

func IsInsufficientStockError(err error) (*InsufficientStockError, bool) {
	var ise *InsufficientStockError
	if stderrors.As(err, &ise) {
		return ise, true
	}
	return nil, false
}

type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}

func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{Message: message}
}

func IsUnauthorizedError(err error) (*UnauthorizedError, bool) {
	var ue *UnauthorizedError
	if stderrors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// TransientError marks a storage failure (deadlock, lock timeout, unavailable
// database) after which the whole operation may be retried by the caller.
type TransientError struct {
	Message string
	Cause   error
}

func (e *TransientError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TransientError) Unwrap() error {
	return e.Cause
}

func NewTransientError(message string, cause error) *TransientError {
	return &TransientError{
		Message: message,
		Cause:   cause,
	}
}

func IsTransientError(err error) (*TransientError, bool) {
	var te *TransientError
	if stderrors.As(err, &te) {
		return te, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}
