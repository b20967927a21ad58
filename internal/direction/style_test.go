package direction

import (
	"testing"

	"golang.org/x/net/html"
)

func TestParseStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		style string
		want  []Declaration
	}{
		{name: "empty", style: "", want: nil},
		{
			name:  "simple",
			style: "color: red; Direction:LTR",
			want:  []Declaration{{"color", "red"}, {"direction", "LTR"}},
		},
		{
			name:  "stray separators",
			style: " ;; color:red;; ",
			want:  []Declaration{{"color", "red"}},
		},
		{
			name:  "missing value",
			style: "color; margin: 0",
			want:  []Declaration{{"margin", "0"}},
		},
		{
			name:  "function with commas",
			style: "color: rgb(0, 0, 0); width: 1px",
			want:  []Declaration{{"color", "rgb(0, 0, 0)"}, {"width", "1px"}},
		},
		{
			name:  "semicolon inside url",
			style: "background: url(a;b.png); top: 0",
			want:  []Declaration{{"background", "url(a;b.png)"}, {"top", "0"}},
		},
		{
			name:  "comment dropped",
			style: "color: red /* note */; top: 0",
			want:  []Declaration{{"color", "red"}, {"top", "0"}},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ParseStyle(tt.style)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseStyle(%q) = %v, want %v", tt.style, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("ParseStyle(%q)[%d] = %v, want %v", tt.style, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseStyleQuotedSemicolon(t *testing.T) {
	t.Parallel()

	got := ParseStyle(`font-family: "A; B"; color: red`)
	if len(got) != 2 {
		t.Fatalf("declarations = %v, want 2", got)
	}
	if got[0].Property != "font-family" || got[1].Property != "color" {
		t.Fatalf("properties = %q, %q", got[0].Property, got[1].Property)
	}
}

func TestSetStyleProperty(t *testing.T) {
	t.Parallel()

	n := &html.Node{Type: html.ElementNode, Data: "div"}
	SetStyleProperty(n, "direction", "ltr")
	if got := Attr(n, "style"); got != "direction: ltr" {
		t.Fatalf("style = %q, want %q", got, "direction: ltr")
	}

	SetStyleProperty(n, "Text-Align", "left")
	SetStyleProperty(n, "direction", "rtl")
	if got, want := Attr(n, "style"), "direction: rtl; text-align: left"; got != want {
		t.Fatalf("style = %q, want %q", got, want)
	}
	if len(n.Attr) != 1 {
		t.Fatalf("attrs = %v, want a single style attribute", n.Attr)
	}
}

func TestParseStyleKeepsCustomProperties(t *testing.T) {
	t.Parallel()

	got := ParseStyle("--Brand-Color: red; --empty: ; COLOR: var(--Brand-Color)")
	want := []Declaration{{"--Brand-Color", "red"}, {"--empty", ""}, {"color", "var(--Brand-Color)"}}
	if len(got) != len(want) {
		t.Fatalf("ParseStyle() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ParseStyle()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSetStylePropertyLeavesCustomPropertiesAlone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		style string
		want  string
	}{
		{
			style: "--Brand-Color: red; color: var(--Brand-Color)",
			want:  "--Brand-Color: red; color: var(--Brand-Color); direction: rtl",
		},
		{
			style: "--empty: ; color: red",
			want:  "--empty: ; color: red; direction: rtl",
		},
	}
	for _, tt := range tests {
		tt := tt
		n := &html.Node{Type: html.ElementNode, Data: "nav", Attr: []html.Attribute{{Key: "style", Val: tt.style}}}
		SetStyleProperty(n, "direction", "rtl")
		if got := Attr(n, "style"); got != tt.want {
			t.Fatalf("style %q = %q, want %q", tt.style, got, tt.want)
		}
	}
}

func TestSetAttrReplacesInPlace(t *testing.T) {
	t.Parallel()

	n := &html.Node{Type: html.ElementNode, Data: "html", Attr: []html.Attribute{
		{Key: "lang", Val: "en"},
		{Key: "class", Val: "no-js"},
	}}
	SetAttr(n, "lang", "ar")
	SetAttr(n, "dir", "rtl")

	want := []html.Attribute{{Key: "lang", Val: "ar"}, {Key: "class", Val: "no-js"}, {Key: "dir", Val: "rtl"}}
	if len(n.Attr) != len(want) {
		t.Fatalf("attrs = %v, want %v", n.Attr, want)
	}
	for i := range want {
		if n.Attr[i] != want[i] {
			t.Fatalf("attr[%d] = %v, want %v", i, n.Attr[i], want[i])
		}
	}
}
