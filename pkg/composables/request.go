package composables

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/iota-periods/pkg/constants"
	"github.com/iota-uz/iota-periods/pkg/shared"
	"github.com/iota-uz/iota-periods/pkg/types"
)

var (
	ErrNoLogger = errors.New("logger not found")
)

type Params struct {
	IP        string
	UserAgent string
	RequestID string
	Request   *http.Request
	Writer    http.ResponseWriter
}

// UseParams returns the request parameters from the context.
// If the parameters are not found, the second return value will be false.
func UseParams(ctx context.Context) (*Params, bool) {
	params, ok := ctx.Value(constants.ParamsKey).(*Params)
	return params, ok
}

func WithParams(ctx context.Context, params *Params) context.Context {
	return context.WithValue(ctx, constants.ParamsKey, params)
}

func UseRequestID(ctx context.Context) (string, bool) {
	params, ok := UseParams(ctx)
	if !ok || params.RequestID == "" {
		return "", false
	}
	return params.RequestID, true
}

func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}

// UseLogger returns the request-scoped logger. Outside of a request it falls
// back to the standard logrus logger.
func UseLogger(ctx context.Context) *logrus.Entry {
	if logger, ok := ctx.Value(constants.LoggerKey).(*logrus.Entry); ok && logger != nil {
		return logger
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

func UseIP(ctx context.Context) (string, bool) {
	params, ok := UseParams(ctx)
	if !ok {
		return "", false
	}
	return params.IP, true
}

func UseUserAgent(ctx context.Context) (string, bool) {
	params, ok := UseParams(ctx)
	if !ok {
		return "", false
	}
	return params.UserAgent, true
}

// UsePageCtx returns the page context from the context.
// If the page context is not found, function will panic.
func UsePageCtx(ctx context.Context) types.PageContextProvider {
	if pageCtx, ok := TryUsePageCtx(ctx); ok {
		return pageCtx
	}
	panic("page context not found")
}

func TryUsePageCtx(ctx context.Context) (types.PageContextProvider, bool) {
	v, ok := ctx.Value(constants.PageContext).(types.PageContextProvider)
	return v, ok && v != nil
}

func WithPageCtx(ctx context.Context, pageCtx types.PageContextProvider) context.Context {
	return context.WithValue(ctx, constants.PageContext, pageCtx)
}

func WithNavItems(ctx context.Context, items []types.NavigationItem) context.Context {
	return context.WithValue(ctx, constants.NavItemsKey, items)
}

func UseNavItems(ctx context.Context) []types.NavigationItem {
	items, _ := ctx.Value(constants.NavItemsKey).([]types.NavigationItem)
	return items
}

// UseFlash reads and clears a flash cookie set with shared.SetFlash.
func UseFlash(w http.ResponseWriter, r *http.Request, name string) ([]byte, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, nil
		}
		return nil, err
	}
	val, err := base64.URLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil, err
	}
	http.SetCookie(w, &http.Cookie{Name: name, Path: "/", MaxAge: -1, Expires: time.Unix(1, 0)})
	return val, nil
}

func UseFlashMap[K comparable, V any](w http.ResponseWriter, r *http.Request, name string) (map[K]V, error) {
	bytes, err := UseFlash(w, r, name)
	if err != nil {
		return nil, err
	}
	var out map[K]V
	if len(bytes) == 0 {
		return out, nil
	}
	return out, json.Unmarshal(bytes, &out)
}

func UseQuery[T comparable](v T, r *http.Request) (T, error) {
	return v, shared.Decoder.Decode(v, r.URL.Query())
}

func UseForm[T comparable](v T, r *http.Request) (T, error) {
	if err := r.ParseForm(); err != nil {
		return v, err
	}
	return v, shared.Decoder.Decode(v, r.Form)
}
