package api

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/navinbhat12/api-about-nothing/internal/constants"
	"github.com/navinbhat12/api-about-nothing/internal/metrics"
	"github.com/navinbhat12/api-about-nothing/internal/service/listing"
)

// RequestLogger logs one line per completed request.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("Request served",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", chimiddleware.GetReqID(r.Context())),
			)
		})
	}
}

// PrometheusMetrics records request count and latency labelled by route pattern.
func PrometheusMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.RecordAPIRequest(r.Method, route, strconv.Itoa(status), time.Since(start))
	})
}

// ResponseCache is the storage used by CacheResponses. *cache.CacheService
// satisfies it.
type ResponseCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// CacheResponses serves repeated GETs from store. Navigation links embed the
// scheme and host, so both are part of the key. Cache failures fall through
// to the handler.
func CacheResponses(store ResponseCache, ttl time.Duration, forceHTTPS bool, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			links := listing.NewLinkBuilder(r, forceHTTPS)
			key := constants.ResponseCache.KeyPrefix + links.Scheme + "://" + links.Host + r.URL.RequestURI()

			ctx, cancel := context.WithTimeout(r.Context(), constants.ResponseCache.OpTimeout)
			var cached cachedResponse
			found, err := store.Get(ctx, key, &cached)
			cancel()

			switch {
			case err != nil:
				metrics.RecordCacheLookup("error")
				logger.Debug("Response cache unavailable", zap.String("key", key), zap.Error(err))
			case found:
				metrics.RecordCacheLookup("hit")
				w.Header().Set("Content-Type", cached.ContentType)
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(cached.Status)
				_, _ = w.Write(cached.Body)
				return
			default:
				metrics.RecordCacheLookup("miss")
			}

			w.Header().Set("X-Cache", "MISS")
			rec := &recordingWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status != http.StatusOK {
				return
			}

			ctx, cancel = context.WithTimeout(context.WithoutCancel(r.Context()), constants.ResponseCache.OpTimeout)
			defer cancel()
			entry := cachedResponse{
				Status:      rec.status,
				ContentType: rec.Header().Get("Content-Type"),
				Body:        rec.body.Bytes(),
			}
			if err := store.Set(ctx, key, entry, ttl); err != nil {
				logger.Debug("Response cache write failed", zap.String("key", key), zap.Error(err))
			}
		})
	}
}

// recordingWriter copies the response body while passing it through.
type recordingWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (rw *recordingWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *recordingWriter) Write(b []byte) (int, error) {
	rw.body.Write(b)
	return rw.ResponseWriter.Write(b)
}
