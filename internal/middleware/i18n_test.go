package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDetectLocaleHeaderPriority(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Locale", "fr")
	r.Header.Set("Accept-Language", "en-US")
	if got := detectLocale(r, "en", ""); got != "fr" {
		t.Fatalf("detectLocale() = %s, want fr (X-Locale wins)", got)
	}
}

func TestDetectLocaleAcceptLanguage(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"fr-FR,fr;q=0.9,en;q=0.8", "fr"},
		{"en-US,en;q=0.9", "en"},
		{"de-DE", "en"},
		{"", "en"},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			r.Header.Set("Accept-Language", tc.header)
		}
		if got := detectLocale(r, "en", ""); got != tc.want {
			t.Fatalf("detectLocale(%q) = %s, want %s", tc.header, got, tc.want)
		}
	}
}

func TestDetectLocaleFromCountry(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := detectLocale(r, "", "FR"); got != "fr" {
		t.Fatalf("detectLocale(country=FR) = %s, want fr", got)
	}
	if got := detectLocale(r, "", "DE"); got != "en" {
		t.Fatalf("detectLocale(country=DE) = %s, want en", got)
	}
}

func TestResolveCountryHeaders(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("CF-IPCountry", "fr")
	if got := ResolveCountry(r, nil); got != "FR" {
		t.Fatalf("ResolveCountry() = %s, want FR", got)
	}
}

func TestResolveCountryLookupFallback(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "203.0.113.7:1234"
	lookup := func(ip string) (string, error) {
		if ip != "203.0.113.7" {
			t.Fatalf("lookup got ip %s", ip)
		}
		return "fr", nil
	}
	if got := ResolveCountry(r, lookup); got != "FR" {
		t.Fatalf("ResolveCountry() = %s, want FR", got)
	}
}

func TestI18NMiddlewareStoresContext(t *testing.T) {
	var gotLocale, gotCountry string
	h := I18N("en", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLocale = LocaleFromContext(r.Context())
		gotCountry = CountryFromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Accept-Language", "fr-FR")
	h.ServeHTTP(httptest.NewRecorder(), r)

	if gotLocale != "fr" {
		t.Fatalf("locale in context = %s, want fr", gotLocale)
	}
	if gotCountry != "FR" {
		t.Fatalf("country in context = %s, want FR", gotCountry)
	}
}
