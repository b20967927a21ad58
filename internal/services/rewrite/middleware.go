package rewrite

import (
	"bytes"
	"log"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gothicvibe/rtlpage/internal/direction"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/gothicvibe/rtlpage/internal/services/rewrite"

// SpanName is the span opened around each HTML rewrite.
const SpanName = "rewrite.direction"

// Middleware returns a handler that runs in over every HTML response from
// next. Non-HTML, encoded or non-200 responses pass through unchanged.
func Middleware(in *direction.Initializer, next http.Handler) http.Handler {
	if in == nil {
		in = direction.Default()
	}
	tracer := otel.Tracer(tracerName)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if next == nil {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Range") != "" {
			// Partial bodies cannot be parsed as documents.
			r = r.Clone(r.Context())
			r.Header.Del("Range")
		}

		buf := newResponseBuffer()
		next.ServeHTTP(buf, r)

		body := buf.body.Bytes()
		if !shouldRewrite(buf, body) {
			buf.flush(w, body)
			return
		}
		buf.header.Del("Content-Length")
		buf.header.Del("Accept-Ranges")
		if r.Method == http.MethodHead {
			buf.flush(w, nil)
			return
		}

		_, span := tracer.Start(r.Context(), SpanName,
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attribute.String("http.route", r.URL.Path)),
		)
		defer span.End()

		var out bytes.Buffer
		out.Grow(len(body) + len(body)/8)
		report, err := Document(in, bytes.NewReader(body), &out)
		if err != nil {
			log.Printf("rewrite %s: %v", r.URL.Path, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "rewrite failed")
			buf.header.Set("Content-Length", strconv.Itoa(len(body)))
			buf.flush(w, body)
			return
		}
		span.SetAttributes(reportAttributes(report)...)

		buf.header.Set("Content-Length", strconv.Itoa(out.Len()))
		buf.flush(w, out.Bytes())
	})
}

func shouldRewrite(buf *responseBuffer, body []byte) bool {
	if buf.statusCode != http.StatusOK {
		return false
	}
	if enc := strings.TrimSpace(buf.header.Get("Content-Encoding")); enc != "" && !strings.EqualFold(enc, "identity") {
		return false
	}
	contentType := buf.header.Get("Content-Type")
	if contentType == "" {
		if len(body) == 0 {
			return false
		}
		contentType = http.DetectContentType(body)
		buf.header.Set("Content-Type", contentType)
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html"
}

func reportAttributes(report direction.Report) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(report.Matched)+2)
	attrs = append(attrs,
		attribute.Bool("rewrite.root_found", report.RootFound),
		attribute.Int("rewrite.matched.total", report.Total()),
	)
	for role, n := range report.Matched {
		attrs = append(attrs, attribute.Int("rewrite.matched."+string(role), n))
	}
	return attrs
}
