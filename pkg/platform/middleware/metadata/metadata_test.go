package metadata

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"

	"bibliodesk/pkg/requestcontext"
)

const chromeLinuxUA = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

func runMetadata(t *testing.T, m *Middleware, mutate func(*http.Request)) (ip, ua, device string) {
	t.Helper()
	h := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ip = requestcontext.ClientIP(ctx)
		ua = requestcontext.UserAgent(ctx)
		device = requestcontext.Device(ctx)
	}))
	req := httptest.NewRequest(http.MethodGet, "/console/borrows", nil)
	req.RemoteAddr = "203.0.113.9:4431"
	if mutate != nil {
		mutate(req)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	return ip, ua, device
}

func TestRemoteAddrUsedByDefault(t *testing.T) {
	ip, _, _ := runMetadata(t, NewMiddleware(nil), nil)
	assert.Equal(t, "203.0.113.9", ip)
}

func TestXFFIgnoredFromUntrustedProxy(t *testing.T) {
	ip, _, _ := runMetadata(t, NewMiddleware(nil), func(r *http.Request) {
		r.Header.Set("X-Forwarded-For", "198.51.100.1")
	})
	assert.Equal(t, "203.0.113.9", ip)
}

func TestXFFTrustedFromConfiguredProxy(t *testing.T) {
	cfg := &Config{TrustedProxies: []netip.Prefix{netip.MustParsePrefix("203.0.113.0/24")}}
	ip, _, _ := runMetadata(t, NewMiddleware(cfg), func(r *http.Request) {
		r.Header.Set("X-Forwarded-For", "198.51.100.1, 203.0.113.9")
	})
	assert.Equal(t, "198.51.100.1", ip)
}

func TestDeviceDescriptionParsed(t *testing.T) {
	_, ua, device := runMetadata(t, NewMiddleware(nil), func(r *http.Request) {
		r.Header.Set("User-Agent", chromeLinuxUA)
	})
	assert.Equal(t, chromeLinuxUA, ua)
	assert.Contains(t, device, "Chrome 126")
	assert.Contains(t, device, "on ")
}

func TestDescribeDeviceUnknown(t *testing.T) {
	assert.Equal(t, "unknown", DescribeDevice(""))
}
