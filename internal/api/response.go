package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"stockroom/internal/dto"
	apperrors "stockroom/internal/errors"
)

// RetryAfterSeconds is advertised on 503 responses for transient failures.
const RetryAfterSeconds = 1

func WriteJSON(w http.ResponseWriter, logger *zap.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// WriteError maps a typed error to its HTTP status and error body. Unknown
// errors are logged and answered with a generic 500.
func WriteError(w http.ResponseWriter, logger *zap.Logger, traceID string, err error) {
	resp := dto.ErrorResponse{
		TraceID:   traceID,
		Timestamp: time.Now().UTC(),
	}

	if ve, ok := apperrors.IsValidationError(err); ok {
		resp.Status = http.StatusBadRequest
		resp.Code = ve.Code
		resp.Message = ve.Message
		resp.Fields = ve.Details
		logger.Warn("request rejected", zap.String("code", ve.Code), zap.String("reason", ve.Message))
	} else if nf, ok := apperrors.IsNotFoundError(err); ok {
		resp.Status = http.StatusNotFound
		resp.Code = nf.Code
		resp.Message = nf.Message
		logger.Warn("resource not found", zap.String("code", nf.Code), zap.String("reason", nf.Message))
	} else if ise, ok := apperrors.IsInsufficientStockError(err); ok {
		resp.Status = http.StatusConflict
		resp.Code = apperrors.CodeInsufficientStock
		resp.Message = ise.Error()
		resp.Details = dto.InsufficientStockDetails{Available: ise.Available, Requested: ise.Requested}
		logger.Info("sale rejected", zap.String("productId", ise.ProductID),
			zap.Int("available", ise.Available), zap.Int("requested", ise.Requested))
	} else if ue, ok := apperrors.IsUnauthorizedError(err); ok {
		resp.Status = http.StatusUnauthorized
		resp.Code = apperrors.CodeUnauthorized
		resp.Message = ue.Message
	} else if te, ok := apperrors.IsTransientError(err); ok {
		resp.Status = http.StatusServiceUnavailable
		resp.Code = apperrors.CodeTransient
		resp.Message = te.Message
		resp.Retryable = true
		w.Header().Set("Retry-After", strconv.Itoa(RetryAfterSeconds))
		logger.Warn("transient failure", zap.Error(err))
	} else {
		resp.Status = http.StatusInternalServerError
		resp.Code = apperrors.CodeInternal
		resp.Message = "an unexpected error occurred"
		logger.Error("unexpected error", zap.Error(err))
	}

	WriteJSON(w, logger, resp.Status, resp)
}
