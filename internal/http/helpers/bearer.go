package helpers

import (
	"net/http"
	"net/url"
	"strings"
)

// BearerFrom devuelve el valor crudo del header Authorization.
func BearerFrom(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("Authorization"))
}

// ValidRedirect acepta sólo URLs absolutas http(s); vacío también es válido.
func ValidRedirect(raw string) bool {
	if raw == "" {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
