package dto

import (
	"time"

	apperrors "stockroom/internal/errors"
)

type ErrorResponse struct {
	TraceID   string                       `json:"traceId"`
	Status    int                          `json:"status"`
	Code      string                       `json:"code"`
	Message   string                       `json:"message"`
	Retryable bool                         `json:"retryable"`
	Details   any                          `json:"details,omitempty"`
	Fields    []apperrors.ValidationDetail `json:"fields,omitempty"`
	Timestamp time.Time                    `json:"timestamp"`
}

type InsufficientStockDetails struct {
	Available int `json:"available"`
	Requested int `json:"requested"`
}
