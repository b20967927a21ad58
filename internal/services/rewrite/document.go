// Package rewrite hosts the direction initializer: it parses HTML, runs the
// initializer once per document and renders the result, either for a single
// stream or for every HTML response leaving an HTTP handler.
package rewrite

import (
	"fmt"
	"io"

	"github.com/gothicvibe/rtlpage/internal/direction"
	"golang.org/x/net/html"
)

// Document parses an HTML document from src, applies in once and renders the
// result to dst.
func Document(in *direction.Initializer, src io.Reader, dst io.Writer) (direction.Report, error) {
	if in == nil {
		in = direction.Default()
	}
	doc, err := html.Parse(src)
	if err != nil {
		return direction.Report{}, fmt.Errorf("parse html: %w", err)
	}
	report := in.Apply(doc)
	if err := html.Render(dst, doc); err != nil {
		return report, fmt.Errorf("render html: %w", err)
	}
	return report, nil
}
