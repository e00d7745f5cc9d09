package patch

import (
	"log/slog"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// Diagnostic is an advisory report. It never aborts a pass.
type Diagnostic = errors.Error

func (p *Patcher) report(d *Diagnostic) {
	p.stats.Diagnostics++
	if p.cfg.Reporter != nil {
		p.cfg.Reporter(d)
		return
	}
	attrs := []any{slog.String("code", d.Code)}
	if d.Tag != "" {
		attrs = append(attrs, slog.String("tag", d.Tag))
	}
	if d.Key != "" {
		attrs = append(attrs, slog.String("key", d.Key))
	}
	if d.Detail != "" {
		attrs = append(attrs, slog.String("detail", d.Detail))
	}
	p.logger.Warn(d.Message, attrs...)
}

func (p *Patcher) checkDuplicateKeys(children []*vdom.VNode) {
	for _, key := range vdom.DuplicateKeys(children) {
		p.report(errors.New("R001").
			WithKey(key).
			WithDetailf("Duplicate keys detected: '%s'. This may cause an update error.", key))
	}
}

func (p *Patcher) isUnknownElement(v *vdom.VNode, inVPre bool) bool {
	return !inVPre &&
		v.NS == "" &&
		!p.cfg.isIgnored(v.Tag) &&
		p.cfg.IsUnknownElement(v.Tag)
}

func (p *Patcher) reportUnknownElement(v *vdom.VNode) {
	p.report(errors.New("R002").
		WithTag(v.Tag).
		WithSuggestion("Register the component, or add the tag to the ignored elements"))
}

// hydrationBail reports the first child-level mismatch of this Patcher.
// Later mismatches are silent.
func (p *Patcher) hydrationBail(code string, v *vdom.VNode, detail string) {
	if !p.cfg.DevMode || p.hydrationBailed {
		return
	}
	p.hydrationBailed = true
	p.report(errors.New(code).WithTag(v.Tag).WithKey(v.Key).WithDetail(detail))
}

func diagnosticHydrationBail(v *vdom.VNode) *Diagnostic {
	return errors.New("H044").WithTag(v.Tag).WithKey(v.Key)
}
