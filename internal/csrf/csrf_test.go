package csrf

import (
	"errors"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"testing"
)

func TestTokenFromCookieString(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		cookie string
		want   string
		wantOK bool
	}{
		{"only cookie", "csrftoken=abc123", "csrftoken", "abc123", true},
		{"first of many", "csrftoken=abc; sessionid=xyz", "csrftoken", "abc", true},
		{"last of many", "sessionid=xyz; csrftoken=abc", "csrftoken", "abc", true},
		{"middle", "a=1; csrftoken=tok; b=2", "csrftoken", "tok", true},
		{"value with equals", "csrftoken=a=b=c; x=1", "csrftoken", "a=b=c", true},
		{"empty value", "csrftoken=; x=1", "csrftoken", "", true},
		{"absent", "sessionid=xyz", "csrftoken", "", false},
		{"empty string", "", "csrftoken", "", false},
		{"suffix of another name", "xcsrftoken=nope", "csrftoken", "", false},
		{"prefix of another name", "csrftoken2=nope", "csrftoken", "", false},
		{"empty name", "csrftoken=abc", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TokenFromCookieString(tt.raw, tt.cookie)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("token = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProviderRereadsSource(t *testing.T) {
	raw := "csrftoken=first"
	p := NewProvider("", func() string { return raw })

	tok, err := p.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if tok != "first" {
		t.Errorf("token = %q, want first", tok)
	}

	raw = "csrftoken=rotated"
	tok, err = p.Token()
	if err != nil {
		t.Fatalf("Token after rotation: %v", err)
	}
	if tok != "rotated" {
		t.Errorf("token = %q, want rotated", tok)
	}
}

func TestProviderMissingToken(t *testing.T) {
	cases := []struct {
		name string
		p    *Provider
	}{
		{"absent cookie", NewProvider("csrftoken", StaticSource("sessionid=1"))},
		{"empty cookie", NewProvider("csrftoken", StaticSource("csrftoken="))},
		{"nil source", NewProvider("csrftoken", nil)},
		{"nil provider", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.p.Token()
			if !errors.Is(err, ErrMissingToken) {
				t.Errorf("err = %v, want ErrMissingToken", err)
			}
		})
	}
}

func TestJarSource(t *testing.T) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	u, _ := url.Parse("http://example.test/employees/")
	jar.SetCookies(u, []*http.Cookie{
		{Name: "sessionid", Value: "s1", Path: "/"},
		{Name: "csrftoken", Value: "jar-token", Path: "/"},
	})

	p := NewProvider(DefaultCookieName, JarSource(jar, u))
	tok, err := p.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if tok != "jar-token" {
		t.Errorf("token = %q, want jar-token", tok)
	}

	if got := JarSource(nil, u)(); got != "" {
		t.Errorf("nil jar source = %q, want empty", got)
	}
}
