// Package csrf reads the anti-forgery token that mutating requests must echo
// back to the server. The token lives in a cookie and can rotate at any time,
// so it is re-read on every call and never cached.
package csrf

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	// DefaultCookieName is the cookie Django stores the token in.
	DefaultCookieName = "csrftoken"
	// DefaultHeaderName is the header Django expects the token in.
	DefaultHeaderName = "X-CSRFToken"
)

// ErrMissingToken is returned when the token cookie is absent at request time.
var ErrMissingToken = errors.New("csrf token cookie not present")

// TokenFromCookieString finds the name=value segment for name in a raw
// Cookie header string and returns value up to the next ';'.
// The second return is false when name does not appear.
func TokenFromCookieString(raw, name string) (string, bool) {
	if name == "" {
		return "", false
	}
	prefix := name + "="
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimLeft(part, " \t")
		if strings.HasPrefix(part, prefix) {
			return strings.TrimRight(part[len(prefix):], " \t"), true
		}
	}
	return "", false
}

// CookieSource returns the current raw cookie string.
type CookieSource func() string

// StaticSource always returns raw. Useful for tests and one-shot commands.
func StaticSource(raw string) CookieSource {
	return func() string { return raw }
}

// JarSource serializes the cookies a jar would send to u.
func JarSource(jar http.CookieJar, u *url.URL) CookieSource {
	return func() string {
		if jar == nil || u == nil {
			return ""
		}
		cookies := jar.Cookies(u)
		parts := make([]string, 0, len(cookies))
		for _, c := range cookies {
			parts = append(parts, c.Name+"="+c.Value)
		}
		return strings.Join(parts, "; ")
	}
}

// Provider hands out the current token for one cookie name.
type Provider struct {
	name   string
	source CookieSource
}

// NewProvider creates a provider reading cookie name from source.
// An empty name falls back to DefaultCookieName.
func NewProvider(name string, source CookieSource) *Provider {
	if name == "" {
		name = DefaultCookieName
	}
	return &Provider{name: name, source: source}
}

// Name returns the cookie name the provider looks for
func (p *Provider) Name() string {
	return p.name
}

// Token re-reads the cookie source and returns the token.
// Absent or empty values return an error wrapping ErrMissingToken.
func (p *Provider) Token() (string, error) {
	if p == nil || p.source == nil {
		return "", ErrMissingToken
	}
	tok, ok := TokenFromCookieString(p.source(), p.name)
	if !ok || tok == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingToken, p.name)
	}
	return tok, nil
}
