package middleware

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/iota-uz/iota-periods/pkg/composables"
	"github.com/iota-uz/iota-periods/pkg/constants"
)

type LoggerOptions struct {
	LogRequestBody  bool
	LogResponseBody bool
	MaxBodyLength   int

	RequestIDHeader string
	RealIPHeader    string
	// Paths under these prefixes get a JSON body when a handler panics.
	APIPrefixes []string
	Repanic     bool
}

func DefaultLoggerOptions() LoggerOptions {
	return LoggerOptions{
		LogRequestBody:  true,
		LogResponseBody: false,
		MaxBodyLength:   512,
		RequestIDHeader: "X-Request-ID",
		RealIPHeader:    "X-Real-IP",
		APIPrefixes:     []string{"/api/", "/periods/api/"},
	}
}

type responseCaptureWriter struct {
	http.ResponseWriter
	statusCode    int
	statusWritten bool
	body          *bytes.Buffer
	maxBody       int
}

func (w *responseCaptureWriter) WriteHeader(code int) {
	if !w.statusWritten {
		w.statusCode = code
		w.statusWritten = true
		w.ResponseWriter.WriteHeader(code)
	}
}

func (w *responseCaptureWriter) Status() int {
	if w.statusCode == 0 {
		return http.StatusOK
	}
	return w.statusCode
}

func (w *responseCaptureWriter) Write(b []byte) (int, error) {
	if room := w.maxBody - w.body.Len(); room > 0 {
		if len(b) < room {
			room = len(b)
		}
		w.body.Write(b[:room])
	}
	w.statusWritten = true
	return w.ResponseWriter.Write(b)
}

func (w *responseCaptureWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (w *responseCaptureWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, fmt.Errorf("underlying ResponseWriter does not implement http.Hijacker")
}

func getRealIP(r *http.Request, header string) string {
	if v := r.Header.Get(header); v != "" {
		return v
	}
	return r.RemoteAddr
}

func getRequestID(r *http.Request, header string) string {
	if v := r.Header.Get(header); v != "" {
		return v
	}
	return uuid.New().String()
}

var tracer = otel.Tracer("periods-middleware")

func TracedMiddleware(name string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracer.Start(
				r.Context(),
				"middleware."+name,
				trace.WithAttributes(
					attribute.String("middleware.name", name),
					attribute.String("http.method", r.Method),
					attribute.String("http.url", r.URL.String()),
				),
			)
			defer span.End()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func formatHeaders(h http.Header) map[string]string {
	headers := make(map[string]string, len(h))
	for key, values := range h {
		if len(values) == 0 {
			continue
		}
		if strings.EqualFold(key, "Authorization") || strings.EqualFold(key, "Cookie") {
			headers[key] = "[redacted]"
			continue
		}
		headers[key] = values[0]
	}
	return headers
}

func formatFormValues(f url.Values) map[string]string {
	formValues := make(map[string]string, len(f))
	for key, values := range f {
		formValues[key] = strings.Join(values, ",")
	}
	return formValues
}

func isAPIPath(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// WithLogger attaches a request-scoped logrus entry and an http.request span to
// every request, logs start and completion, and turns handler panics into 500s.
func WithLogger(logger *logrus.Logger, opts LoggerOptions) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				start := time.Now()
				requestID := getRequestID(r, opts.RequestIDHeader)
				ip := getRealIP(r, opts.RealIPHeader)

				fieldsLogger := logger.WithFields(logrus.Fields{
					"request-id": requestID,
					"path":       r.RequestURI,
					"method":     r.Method,
				})
				fieldsLogger.WithFields(logrus.Fields{
					"host":            r.Host,
					"ip":              ip,
					"user-agent":      r.UserAgent(),
					"request-headers": formatHeaders(r.Header),
				}).Info("request started")

				if opts.LogRequestBody && r.Method == http.MethodPost &&
					strings.Contains(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
					if err := r.ParseForm(); err != nil {
						fieldsLogger.WithError(err).Error("failed to parse form-urlencoded request-body")
						http.Error(w, "failed to parse form-urlencoded request-body", http.StatusBadRequest)
						return
					}
					fieldsLogger.WithField("request-body", formatFormValues(r.PostForm)).Info("form-urlencoded request-body parsed")
				}

				propagator := propagation.TraceContext{}
				ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
				ctx, span := tracer.Start(
					ctx,
					"http.request",
					trace.WithAttributes(
						attribute.String("http.method", r.Method),
						attribute.String("http.route", r.URL.Path),
						attribute.String("http.user_agent", r.UserAgent()),
						attribute.String("http.request_id", requestID),
						attribute.String("net.peer.ip", ip),
					),
				)
				defer span.End()

				if sc := span.SpanContext(); sc.HasTraceID() {
					w.Header().Set("X-Trace-Id", sc.TraceID().String())
					fieldsLogger = fieldsLogger.WithField("trace-id", sc.TraceID().String())
				}
				w.Header().Set("X-Request-Id", requestID)

				wrapped := &responseCaptureWriter{ResponseWriter: w, body: &bytes.Buffer{}, maxBody: opts.MaxBodyLength}

				ctx = composables.WithLogger(ctx, fieldsLogger)
				ctx = context.WithValue(ctx, constants.RequestStart, start)
				ctx = composables.WithParams(ctx, &composables.Params{
					IP:        ip,
					UserAgent: r.UserAgent(),
					RequestID: requestID,
					Request:   r,
					Writer:    wrapped,
				})

				defer func() {
					recovered := recover()
					if recovered == nil {
						return
					}
					fieldsLogger.WithFields(logrus.Fields{
						"panic":    recovered,
						"stack":    string(debug.Stack()),
						"duration": time.Since(start),
					}).Error("panic recovered in request handler")

					if !wrapped.statusWritten {
						if isAPIPath(r.URL.Path, opts.APIPrefixes) {
							wrapped.Header().Set("Content-Type", "application/json")
							wrapped.WriteHeader(http.StatusInternalServerError)
							_ = json.NewEncoder(wrapped).Encode(map[string]any{
								"code":    "INTERNAL_SERVER_ERROR",
								"message": "internal server error",
								"meta":    map[string]string{"request_id": requestID, "path": r.URL.Path},
							})
						} else {
							http.Error(wrapped, "Internal Server Error", http.StatusInternalServerError)
						}
					}
					if opts.Repanic {
						panic(recovered)
					}
				}()

				next.ServeHTTP(wrapped, r.WithContext(ctx))

				statusCode := wrapped.Status()
				duration := time.Since(start)
				entry := fieldsLogger.WithFields(logrus.Fields{
					"duration":     duration,
					"status-code":  statusCode,
					"status-class": statusCode / 100,
				})
				if opts.LogResponseBody && wrapped.body.Len() > 0 {
					entry = entry.WithField("response-body", wrapped.body.String())
				}
				entry.Info("request completed")

				span.SetAttributes(
					attribute.Int64("http.request_duration_ms", duration.Milliseconds()),
					attribute.Int("http.status_code", statusCode),
				)
			},
		)
	}
}
