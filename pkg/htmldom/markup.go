package htmldom

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoElement is returned by ParseRoot when the markup has no element.
var ErrNoElement = errors.New("htmldom: markup contains no element")

// Parse parses a fragment into a detached <body> container.
func Parse(markup string) (*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return nil, fmt.Errorf("htmldom: parse: %w", err)
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}
	return body, nil
}

// ParseRoot parses a fragment and returns its first element. The element
// stays attached to the container returned by Parse.
func ParseRoot(markup string) (*html.Node, error) {
	body, err := Parse(markup)
	if err != nil {
		return nil, err
	}
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c, nil
		}
	}
	return nil, ErrNoElement
}

// Render serializes n and its subtree.
func Render(n *html.Node) (string, error) {
	if n == nil {
		return "", nil
	}
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// InnerHTML serializes the children of n. Render errors produce "".
func InnerHTML(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return ""
		}
	}
	return sb.String()
}

// Attr returns the value of a non-namespaced attribute.
func Attr(n *html.Node, name string) (string, bool) {
	if n == nil || n.Type != html.ElementNode {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// TrimWhitespace removes whitespace-only text nodes below n, except inside
// <pre> and <textarea>.
func TrimWhitespace(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch {
		case c.Type == html.TextNode && strings.TrimSpace(c.Data) == "":
			n.RemoveChild(c)
		case c.Type == html.ElementNode && c.Data != "pre" && c.Data != "textarea":
			TrimWhitespace(c)
		}
		c = next
	}
}
