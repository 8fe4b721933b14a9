package middleware

import (
	"net/http"
	"time"

	"github.com/denmor86/ya-laundry/internal/logger"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// ResponseData - код и размер ответа
type ResponseData struct {
	status int
	size   int
}

// LoggingResponseWriter - http.ResponseWriter, запоминающий код и размер ответа
type LoggingResponseWriter struct {
	http.ResponseWriter
	responseData *ResponseData
	wroteHeader  bool
}

func (r *LoggingResponseWriter) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

func (r *LoggingResponseWriter) WriteHeader(statusCode int) {
	if r.wroteHeader {
		return
	}
	r.wroteHeader = true
	r.ResponseWriter.WriteHeader(statusCode)
	r.responseData.status = statusCode
}

// Unwrap - исходный writer для http.ResponseController
func (r *LoggingResponseWriter) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// LogHandle — middleware-логер для входящих HTTP-запросов.
// Ответы 5xx пишутся с уровнем warn.
func LogHandle(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		responseData := &ResponseData{status: http.StatusOK}
		lw := &LoggingResponseWriter{
			ResponseWriter: w,
			responseData:   responseData,
		}

		h.ServeHTTP(lw, r)

		fields := []any{
			"request_id", chimiddleware.GetReqID(r.Context()),
			"uri", r.RequestURI,
			"method", r.Method,
			"status", responseData.status,
			"duration", time.Since(start),
			"size", responseData.size,
		}
		if responseData.status >= http.StatusInternalServerError {
			logger.Warnw("HTTP request failed", fields...)
			return
		}
		logger.Infow("got incoming HTTP request", fields...)
	})
}
