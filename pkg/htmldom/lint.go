package htmldom

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"

	rerrors "github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// Lint tokenizes markup and reports closing tags without a matching open
// element (R003). A closing tag closes the last open element of the same
// name; elements it skips over are reported as unclosed. </br> and </p>
// are accepted as the browser repairs them.
func Lint(file, markup string) ([]*rerrors.Error, error) {
	type open struct {
		tag       string
		line, col int
	}
	var (
		diags []*rerrors.Error
		stack []open
	)
	pos := newPositionTracker(markup)
	z := html.NewTokenizer(strings.NewReader(markup))

	for {
		tt := z.Next()
		line, col := pos.advance(len(z.Raw()))
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return diags, err
			}
			for i := len(stack) - 1; i >= 0; i-- {
				diags = append(diags, unclosed(file, stack[i].tag, stack[i].line, stack[i].col))
			}
			return diags, nil

		case html.StartTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if !vdom.IsVoidElement(tag) {
				stack = append(stack, open{tag: tag, line: line, col: col})
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			idx := -1
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].tag == tag {
					idx = i
					break
				}
			}
			if idx < 0 {
				if tag != "br" && tag != "p" {
					diags = append(diags, rerrors.New("R003").
						WithTag(tag).
						WithLocation(file, line, col).
						WithDetailf("tag </%s> has no matching open element", tag))
				}
				continue
			}
			for i := len(stack) - 1; i > idx; i-- {
				diags = append(diags, unclosed(file, stack[i].tag, stack[i].line, stack[i].col))
			}
			stack = stack[:idx]
		}
	}
}

func unclosed(file, tag string, line, col int) *rerrors.Error {
	return rerrors.New("R003").
		WithTag(tag).
		WithLocation(file, line, col).
		WithDetailf("tag <%s> has no matching end tag", tag)
}

// positionTracker maps token byte offsets to 1-based lines and columns.
type positionTracker struct {
	src       string
	offset    int
	line, col int
}

func newPositionTracker(src string) *positionTracker {
	return &positionTracker{src: src, line: 1, col: 1}
}

// advance returns the position of the token starting at the current offset
// and moves past n bytes.
func (p *positionTracker) advance(n int) (line, col int) {
	line, col = p.line, p.col
	end := p.offset + n
	if end > len(p.src) {
		end = len(p.src)
	}
	for _, r := range p.src[p.offset:end] {
		if r == '\n' {
			p.line++
			p.col = 1
		} else {
			p.col++
		}
	}
	p.offset = end
	return line, col
}
