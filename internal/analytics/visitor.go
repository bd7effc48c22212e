package analytics

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// GACookie is the tag manager's client-id cookie.
const GACookie = "_ga"

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// VisitorID returns the tag manager client id when the request carries one,
// otherwise a synthesized visitor_<ms>_<random> identifier.
func VisitorID(r *http.Request, now time.Time) string {
	if r != nil {
		if c, err := r.Cookie(GACookie); err == nil {
			if id, ok := ClientIDFromGA(c.Value); ok {
				return id
			}
		}
	}
	return SynthesizeVisitorID(now)
}

// ClientIDFromGA extracts "<random>.<timestamp>" from a GA1.<n>.<random>.<timestamp>
// cookie value.
func ClientIDFromGA(value string) (string, bool) {
	parts := strings.Split(value, ".")
	if len(parts) < 4 || !strings.HasPrefix(parts[0], "GA") {
		return "", false
	}
	id := strings.Join(parts[len(parts)-2:], ".")
	if strings.Trim(id, ".") == "" {
		return "", false
	}
	return id, true
}

// SynthesizeVisitorID builds visitor_<unix-ms>_<9 base36 chars>.
func SynthesizeVisitorID(now time.Time) string {
	buf := make([]byte, 9)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails on a broken platform; fall back to the clock.
		return fmt.Sprintf("visitor_%d", now.UnixMilli())
	}
	for i, b := range buf {
		buf[i] = base36[int(b)%len(base36)]
	}
	return fmt.Sprintf("visitor_%d_%s", now.UnixMilli(), buf)
}
