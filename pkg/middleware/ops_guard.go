package middleware

import (
	"crypto/subtle"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/gorilla/mux"

	"github.com/iota-uz/iota-periods/pkg/configuration"
	"github.com/iota-uz/iota-periods/pkg/routing"
)

type OpsGuardConfig struct {
	Options      configuration.OpsGuardOptions
	Production   bool
	RealIPHeader string
	Classifier   *routing.Classifier
}

type opsGuard struct {
	cfg   OpsGuardConfig
	cidrs []netip.Prefix
}

// OpsGuard answers 404 on ops routes for callers that match neither the CIDR
// list, the token nor the basic auth pair. Outside production it is a no-op.
func OpsGuard(cfg OpsGuardConfig) mux.MiddlewareFunc {
	if cfg.Classifier == nil {
		cfg.Classifier = routing.NewClassifier(routing.RulesOrDefault(cfg.Options.AllowlistPath, "server"))
	}
	g := &opsGuard{
		cfg:   cfg,
		cidrs: parseCIDRs(cfg.Options.CIDRs),
	}
	return g.middleware
}

func (g *opsGuard) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.cfg.Production || !g.cfg.Options.Enabled {
			next.ServeHTTP(w, r)
			return
		}
		if g.cfg.Classifier.ClassifyPath(r.URL.Path) != routing.RouteClassOps || g.authorized(r) {
			next.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

func (g *opsGuard) authorized(r *http.Request) bool {
	if len(g.cidrs) > 0 {
		if ip, ok := realIP(r, g.cfg.RealIPHeader); ok {
			if addr, err := netip.ParseAddr(ip); err == nil {
				for _, p := range g.cidrs {
					if p.Contains(addr) {
						return true
					}
				}
			}
		}
	}

	opts := g.cfg.Options
	if token := strings.TrimSpace(opts.Token); token != "" {
		if subtle.ConstantTimeCompare([]byte(opsToken(r)), []byte(token)) == 1 {
			return true
		}
	}

	if strings.TrimSpace(opts.BasicAuthUser) != "" || strings.TrimSpace(opts.BasicAuthPass) != "" {
		u, p, ok := r.BasicAuth()
		if ok &&
			subtle.ConstantTimeCompare([]byte(u), []byte(opts.BasicAuthUser)) == 1 &&
			subtle.ConstantTimeCompare([]byte(p), []byte(opts.BasicAuthPass)) == 1 {
			return true
		}
	}
	return false
}

func parseCIDRs(raw string) []netip.Prefix {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\n' || r == '\t'
	})
	out := make([]netip.Prefix, 0, len(parts))
	for _, part := range parts {
		if p, err := netip.ParsePrefix(part); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func opsToken(r *http.Request) string {
	if t := strings.TrimSpace(r.Header.Get("X-Ops-Token")); t != "" {
		return t
	}
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(auth) > len("bearer ") && strings.EqualFold(auth[:len("bearer ")], "bearer ") {
		return strings.TrimSpace(auth[len("bearer "):])
	}
	return ""
}

func realIP(r *http.Request, header string) (string, bool) {
	if header != "" {
		if v := strings.TrimSpace(r.Header.Get(header)); v != "" {
			// X-Forwarded-For style lists: the first hop is the client
			if i := strings.IndexByte(v, ','); i >= 0 {
				v = strings.TrimSpace(v[:i])
			}
			return stripPort(v)
		}
	}
	return stripPort(r.RemoteAddr)
}

func stripPort(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if host, _, err := net.SplitHostPort(s); err == nil {
		return host, true
	}
	return s, true
}
