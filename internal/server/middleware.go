package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"stockroom/internal/api"
	"stockroom/internal/domain"
	apperrors "stockroom/internal/errors"
)

// ActorHeader carries the authenticated user id set by the upstream gateway.
const ActorHeader = "X-Actor-ID"

// RequireActor rejects requests without a valid actor id and stores the id in
// the request context for the ledger use cases.
func RequireActor(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actorID := r.Header.Get(ActorHeader)
			if actorID == "" {
				api.WriteError(w, logger, uuid.NewString(), apperrors.NewUnauthorizedError("actor identity is required"))
				return
			}
			if err := uuid.Validate(actorID); err != nil {
				api.WriteError(w, logger, uuid.NewString(), apperrors.NewUnauthorizedError("actor identity is invalid"))
				return
			}
			next.ServeHTTP(w, r.WithContext(domain.WithActor(r.Context(), actorID)))
		})
	}
}

func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.Info("request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("requestId", middleware.GetReqID(r.Context())),
			)
		})
	}
}
