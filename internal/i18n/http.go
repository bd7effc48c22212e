package i18n

import (
	"net/http"
	"strings"
	"time"
)

// CookieName holds the visitor's language preference.
const CookieName = "language"

// CookieStore persists the locale as a response cookie.
type CookieStore struct {
	W      http.ResponseWriter
	Secure bool
}

func (s CookieStore) SaveLocale(code string) {
	if s.W == nil {
		return
	}
	http.SetCookie(s.W, &http.Cookie{
		Name:     CookieName,
		Value:    code,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// RequestLocale picks the locale for a request: a known language cookie,
// then Accept-Language, then the catalog default.
func RequestLocale(r *http.Request, c *Catalog) string {
	if r == nil {
		return c.Default()
	}
	if cookie, err := r.Cookie(CookieName); err == nil && c.Has(cookie.Value) {
		return cookie.Value
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		return c.Match(accept)
	}
	return c.Default()
}
