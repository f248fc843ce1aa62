package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/iota-uz/iota-periods/pkg/composables"
	"github.com/iota-uz/iota-periods/pkg/configuration"
)

var tracer = otel.Tracer("periods-remote")

type Options struct {
	BaseURL string
	// Headers are sent with every call.
	Headers         http.Header
	Timeout         time.Duration
	RequestIDHeader string
	Location        *time.Location
	HTTPClient      *http.Client
}

func OptionsFromConfig(conf *configuration.Configuration) Options {
	return Options{
		BaseURL:         conf.Remote.BaseURL,
		Headers:         conf.Remote.HeaderSet(),
		Timeout:         conf.Remote.Timeout,
		RequestIDHeader: conf.RequestIDHeader,
		Location:        conf.Remote.Location(),
	}
}

// Client talks JSON to the periods API. Every response is wrapped in
// {success, data, errors}.
type Client struct {
	baseURL         *url.URL
	headers         http.Header
	requestIDHeader string
	location        *time.Location
	httpClient      *http.Client
}

func NewClient(opts Options) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(opts.BaseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("invalid periods api base url: %q", opts.BaseURL)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	headers := opts.Headers.Clone()
	if headers == nil {
		headers = http.Header{}
	}
	if headers.Get("Accept") == "" {
		headers.Set("Accept", "application/json")
	}
	return &Client{
		baseURL:         u,
		headers:         headers,
		requestIDHeader: opts.RequestIDHeader,
		location:        loc,
		httpClient:      httpClient,
	}, nil
}

// Location is the zone API dates are read and written in.
func (c *Client) Location() *time.Location {
	return c.location
}

type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

// doJSON performs one call. When data is non-nil the envelope's data member is
// required and decoded into it.
func (c *Client) doJSON(ctx context.Context, op, method, path string, reqBody any, data any) (err error) {
	start := time.Now()
	result := resultOK
	ctx, span := tracer.Start(ctx, "remote."+op, trace.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.path", path),
	))
	defer func() {
		remoteRequests.WithLabelValues(op, result).Inc()
		remoteLatency.WithLabelValues(op, result).Observe(time.Since(start).Seconds())
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, result)
		}
		span.End()
	}()

	logger := composables.UseLogger(ctx).WithField("operation", op)

	// path arrives escaped; keep it that way on the wire
	u := *c.baseURL
	escaped := strings.TrimRight(c.baseURL.EscapedPath(), "/") + path
	unescaped, pErr := url.PathUnescape(escaped)
	if pErr != nil {
		result = resultClientError
		return errors.Wrap(pErr, "build request path")
	}
	u.Path, u.RawPath = unescaped, escaped

	var body io.Reader
	if reqBody != nil {
		b, mErr := json.Marshal(reqBody)
		if mErr != nil {
			result = resultClientError
			return errors.Wrap(mErr, "marshal request")
		}
		body = bytes.NewReader(b)
	}

	req, rErr := http.NewRequestWithContext(ctx, method, u.String(), body)
	if rErr != nil {
		result = resultClientError
		return errors.Wrap(rErr, "build request")
	}
	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if reqBody != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.requestIDHeader != "" {
		id, ok := composables.UseRequestID(ctx)
		if !ok {
			id = uuid.NewString()
		}
		req.Header.Set(c.requestIDHeader, id)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, dErr := c.httpClient.Do(req)
	if dErr != nil {
		result = resultTransport
		logger.WithError(dErr).Warn("periods api call failed")
		return errors.WithStack(fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, dErr))
	}
	defer func() { _ = resp.Body.Close() }()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	raw, rdErr := io.ReadAll(resp.Body)
	if rdErr != nil {
		result = resultTransport
		return errors.WithStack(fmt.Errorf("%w: read %s %s: %w", ErrTransport, method, path, rdErr))
	}

	ok2xx := resp.StatusCode >= 200 && resp.StatusCode < 300
	var env envelope
	if len(bytes.TrimSpace(raw)) > 0 {
		if uErr := json.Unmarshal(raw, &env); uErr != nil {
			if !ok2xx {
				result = resultAPIError
				return &APIError{StatusCode: resp.StatusCode}
			}
			result = resultMalformed
			return errors.WithStack(fmt.Errorf("%w: %s %s: %w", ErrMalformedResponse, method, path, uErr))
		}
	}

	if !ok2xx || (env.Success != nil && !*env.Success) {
		result = resultAPIError
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Errors:     env.Errors,
			Message:    payloadMessage(env.Errors),
		}
		logger.WithField("status", resp.StatusCode).WithField("errors", apiErr.Message).Info("periods api rejected call")
		return apiErr
	}

	if data == nil {
		return nil
	}
	if trimmed := bytes.TrimSpace(env.Data); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		result = resultMalformed
		return errors.WithStack(fmt.Errorf("%w: %s %s: missing data", ErrMalformedResponse, method, path))
	}
	if uErr := json.Unmarshal(env.Data, data); uErr != nil {
		result = resultMalformed
		return errors.WithStack(fmt.Errorf("%w: %s %s: %w", ErrMalformedResponse, method, path, uErr))
	}
	return nil
}
