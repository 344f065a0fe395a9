package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func realIPProbe(trusted []string) (http.Handler, *string) {
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.RemoteAddr
	})
	return TrustedRealIP(trusted)(inner), &seen
}

func TestTrustedRealIP_TrustedProxy(t *testing.T) {
	h, seen := realIPProbe([]string{"10.0.0.0/8"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	req.Header.Set("X-Real-IP", "203.0.113.9")

	h.ServeHTTP(httptest.NewRecorder(), req)

	if *seen != "203.0.113.9" {
		t.Errorf("RemoteAddr = %q, want forwarded IP", *seen)
	}
}

func TestTrustedRealIP_UntrustedClientCannotSpoof(t *testing.T) {
	h, seen := realIPProbe([]string{"10.0.0.0/8"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.7:5555"
	req.Header.Set("X-Real-IP", "203.0.113.9")

	h.ServeHTTP(httptest.NewRecorder(), req)

	if *seen != "198.51.100.7:5555" {
		t.Errorf("RemoteAddr = %q, want original address", *seen)
	}
}

func TestTrustedRealIP_XForwardedForFirstHop(t *testing.T) {
	h, seen := realIPProbe([]string{"127.0.0.1"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "127.0.0.1:9999"
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	h.ServeHTTP(httptest.NewRecorder(), req)

	if *seen != "203.0.113.9" {
		t.Errorf("RemoteAddr = %q, want first X-Forwarded-For hop", *seen)
	}
}

func TestTrustedRealIP_InvalidHeaderIgnored(t *testing.T) {
	h, seen := realIPProbe([]string{"10.0.0.0/8"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	req.Header.Set("X-Real-IP", "not-an-ip")

	h.ServeHTTP(httptest.NewRecorder(), req)

	if *seen != "10.1.2.3:5555" {
		t.Errorf("RemoteAddr = %q, want original address", *seen)
	}
}
