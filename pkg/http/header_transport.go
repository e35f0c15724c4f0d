package http

import "net/http"

type headerTransport struct {
	key       string
	value     string
	transport http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())

	if t.value != "" {
		reqCopy.Header.Set(t.key, t.value)
	}

	return t.transport.RoundTrip(reqCopy)
}

// WithStaticHeader injects a fixed header into every outbound request, e.g.
// the HTTP-Referer that OpenRouter requires.
func WithStaticHeader(key, value string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &headerTransport{
			key:       key,
			value:     value,
			transport: rt,
		}
	})
}
