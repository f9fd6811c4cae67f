package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestForceHTTPS(t *testing.T) {
	cases := []struct {
		name    string
		enabled bool
		url     string
		proto   string
		code    int
	}{
		{"disabled", false, "http://example.com/a", "", http.StatusOK},
		{"redirects", true, "http://example.com/a?amp=1", "", http.StatusPermanentRedirect},
		{"localhost", true, "http://localhost:8080/", "", http.StatusOK},
		{"loopback ip", true, "http://127.0.0.1:8080/", "", http.StatusOK},
		{"proxied tls", true, "http://example.com/", "https", http.StatusOK},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, c.url, nil)
		if c.proto != "" {
			req.Header.Set("X-Forwarded-Proto", c.proto)
		}
		rec := httptest.NewRecorder()
		ForceHTTPS(c.enabled)(ok).ServeHTTP(rec, req)
		if rec.Code != c.code {
			t.Errorf("%s: code = %d, want %d", c.name, rec.Code, c.code)
		}
		if c.code == http.StatusPermanentRedirect {
			if loc := rec.Header().Get("Location"); loc != "https://example.com/a?amp=1" {
				t.Errorf("%s: Location = %s", c.name, loc)
			}
		}
	}
}

func TestSecurity_SetsDefaultsWithoutOverriding(t *testing.T) {
	h := Security(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rec.Header().Get("X-Frame-Options"); got != "SAMEORIGIN" {
		t.Errorf("X-Frame-Options = %s", got)
	}
	if rec.Header().Get("Content-Security-Policy") == "" {
		t.Error("CSP missing")
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %s", got)
	}
}
