/*
 * MIT License
 *
 * Copyright (c) 2024 The Loadforge Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package iovars

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	libval "github.com/nabbar/loadforge/script/value"
)

func init() {
	_ = libval.Default.Register("html-document", func() libval.Variable { return NewHtmlDocument() })
}

// HtmlDocument is the scripted HTML document leaf (§4.10): parse a
// response body and extract links, images, frames, and plain text.
type HtmlDocument struct {
	libval.Dispatcher

	raw  string
	root *html.Node
}

// NewHtmlDocument returns an empty document; parse fills it from an
// HttpResponse's body.
func NewHtmlDocument() *HtmlDocument {
	d := &HtmlDocument{}
	d.Dispatcher = libval.NewDispatcher([]libval.Method{
		{Signature: libval.Signature{Name: "parse", ArgTypes: []string{"http-response"}, ReturnType: "boolean"}, Call: func(a []libval.Variable) (libval.Variable, error) {
			resp := a[0].(*HttpResponse)
			return libval.NewBoolean(d.parse(resp.body) == nil), nil
		}},
		{Signature: libval.Signature{Name: "links", ArgTypes: nil, ReturnType: "string-array"}, Call: func(a []libval.Variable) (libval.Variable, error) {
			return libval.NewStringArray(d.attrValues("a", "href")), nil
		}},
		{Signature: libval.Signature{Name: "images", ArgTypes: nil, ReturnType: "string-array"}, Call: func(a []libval.Variable) (libval.Variable, error) {
			return libval.NewStringArray(d.attrValues("img", "src")), nil
		}},
		{Signature: libval.Signature{Name: "frames", ArgTypes: nil, ReturnType: "string-array"}, Call: func(a []libval.Variable) (libval.Variable, error) {
			srcs := d.attrValues("frame", "src")
			srcs = append(srcs, d.attrValues("iframe", "src")...)
			return libval.NewStringArray(srcs), nil
		}},
		{Signature: libval.Signature{Name: "associatedfiles", ArgTypes: nil, ReturnType: "string-array"}, Call: func(a []libval.Variable) (libval.Variable, error) {
			files := d.attrValues("link", "href")
			files = append(files, d.attrValues("script", "src")...)
			return libval.NewStringArray(files), nil
		}},
		{Signature: libval.Signature{Name: "text", ArgTypes: nil, ReturnType: "string"}, Call: func(a []libval.Variable) (libval.Variable, error) {
			return libval.NewString(d.text()), nil
		}},
	})
	return d
}

func (d *HtmlDocument) parse(body string) error {
	root, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return err
	}
	d.raw = body
	d.root = root
	return nil
}

// attrValues walks the tree collecting the named attribute off every
// element matching tagName.
func (d *HtmlDocument) attrValues(tagName, attrName string) []string {
	if d.root == nil {
		return nil
	}

	var out []string
	a := atom.Lookup([]byte(tagName))

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.DataAtom == a || strings.EqualFold(n.Data, tagName)) {
			for _, attr := range n.Attr {
				if strings.EqualFold(attr.Key, attrName) {
					out = append(out, attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return out
}

func (d *HtmlDocument) text() string {
	if d.root == nil {
		return ""
	}

	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return sb.String()
}

func (d *HtmlDocument) TypeName() string { return "html-document" }

func (d *HtmlDocument) AssignFrom(other libval.Variable) error {
	o, ok := other.(*HtmlDocument)
	if !ok {
		return libval.ErrTypeMismatch
	}
	return d.parse(o.raw)
}

func (d *HtmlDocument) String() string { return d.raw }

func (d *HtmlDocument) StatTrackers() []libval.StatTracker { return nil }
