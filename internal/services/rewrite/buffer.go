package rewrite

import (
	"bytes"
	"net/http"
)

// responseBuffer captures a downstream response so it can be rewritten
// before anything reaches the client.
type responseBuffer struct {
	header      http.Header
	statusCode  int
	body        bytes.Buffer
	headerWrote bool
}

func newResponseBuffer() *responseBuffer {
	return &responseBuffer{
		header:     make(http.Header),
		statusCode: http.StatusOK,
	}
}

func (w *responseBuffer) Header() http.Header {
	return w.header
}

func (w *responseBuffer) WriteHeader(status int) {
	if w.headerWrote {
		return
	}
	w.headerWrote = true
	w.statusCode = status
}

func (w *responseBuffer) Write(body []byte) (int, error) {
	if !w.headerWrote {
		w.WriteHeader(http.StatusOK)
	}
	return w.body.Write(body)
}

// flush copies the captured response, with body, to dst.
func (w *responseBuffer) flush(dst http.ResponseWriter, body []byte) {
	copyHeaders(dst.Header(), w.header)
	dst.WriteHeader(w.statusCode)
	if len(body) > 0 {
		_, _ = dst.Write(body)
	}
}

func copyHeaders(dst, src http.Header) {
	for key, values := range src {
		for _, value := range values {
			dst.Add(key, value)
		}
	}
}
