package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/itchan-dev/boards/shared/logger"
	"github.com/itchan-dev/boards/shared/middleware/metrics"
	"github.com/itchan-dev/boards/shared/utils"
)

const RequestIdHeader = "X-Request-Id"

type requestIdKey struct{}

// RequestLog tags each request with an id (reusing a valid incoming
// X-Request-Id) and logs one line when it completes.
func RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get(RequestIdHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIdHeader, id)
		r = r.WithContext(context.WithValue(r.Context(), requestIdKey{}, id))

		wrapped := metrics.NewStatusRecorder(w)
		next.ServeHTTP(wrapped, r)

		level := logger.LevelForStatus(wrapped.Status)
		logger.Log.Log(r.Context(), level, "request",
			"request_id", id,
			"method", r.Method,
			"route", metrics.RoutePattern(r),
			"status", wrapped.Status,
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", utils.GetIP(r),
		)
	})
}

// RequestId returns the id assigned by RequestLog, or "".
func RequestId(ctx context.Context) string {
	id, _ := ctx.Value(requestIdKey{}).(string)
	return id
}
