//
//  Copyright © Manetu Inc. All rights reserved.
//

package templates

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/xbrldq/dqengine/pkg/common"
	"github.com/xbrldq/dqengine/pkg/filing"
	"github.com/xbrldq/dqengine/pkg/rules"
)

// GlobalResolver resolves qualified global references
// (${prefix:LocalName...}) to the concept's fact in the required context.
type GlobalResolver interface {
	ResolveGlobal(prefix, local string) (*filing.Fact, error)
}

// Rendered is the output of rendering one template entry.
type Rendered struct {
	Message string
	Hints   []string
	Content []string
}

// Renderer resolves placeholders against binding sets. The zero value
// renders templates that use no global references.
type Renderer struct {
	Globals GlobalResolver
}

// The standard fact-properties paragraphs appended to every violation
// that binds fact1, as published with the DQC rule set.
var factPropertyTemplates = []*Template{
	MustCompile("The properties of this ${fact1.name} fact are:"),
	MustCompile("Period: ${fact1.period}"),
	MustCompile("Dimensions: ${fact1.dimensions}"),
	MustCompile("Unit: ${fact1.unit}"),
	MustCompile("Rule version: ${ruleVersion}"),
}

// Render selects the entry body for the variation key, resolves every
// placeholder against the binding set, and returns the final message,
// hints and content paragraphs. When fact1 is bound, the standard
// fact-properties paragraphs are appended to the content.
//
// Unknown variation keys and unresolvable placeholders are loud authoring
// errors; a silently blank diagnostic would be worse than a failure during
// rule authoring.
func (r *Renderer) Render(e *Entry, variation rules.Variation, b rules.Bindings) (*Rendered, error) {
	body, err := e.Select(variation)
	if err != nil {
		return nil, err
	}

	msg, err := r.renderTemplate(body.Msg, b)
	if err != nil {
		return nil, err
	}

	out := &Rendered{Message: fmt.Sprintf("[%s] %s", e.ID, msg)}

	for _, hint := range body.Hints {
		text, err := r.renderTemplate(hint, b)
		if err != nil {
			return nil, err
		}
		out.Hints = append(out.Hints, text)
	}
	for _, para := range body.Content {
		text, err := r.renderTemplate(para, b)
		if err != nil {
			return nil, err
		}
		out.Content = append(out.Content, text)
	}

	if _, ok := b.Fact("fact1"); ok {
		for _, para := range factPropertyTemplates {
			text, err := r.renderTemplate(para, b)
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, text)
		}
	}
	return out, nil
}

func (r *Renderer) renderTemplate(t *Template, b rules.Bindings) (string, error) {
	var sb strings.Builder
	for _, p := range t.parts {
		if p.expr == nil {
			sb.WriteString(p.literal)
			continue
		}
		text, err := r.resolve(p.expr, b)
		if err != nil {
			return "", err
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

func (r *Renderer) resolve(expr *pathExpr, b rules.Bindings) (string, error) {
	var current interface{}

	if expr.isGlobal() {
		if r.Globals == nil {
			return "", common.NewError(common.TemplateResolution,
				"global reference ${%s} with no resolver", expr.source)
		}
		fact, err := r.Globals.ResolveGlobal(expr.globalPrefix, expr.globalLocal)
		if err != nil {
			return "", err
		}
		current = fact
	} else {
		bound, ok := b[expr.root]
		if !ok {
			return "", common.NewError(common.MissingBinding,
				"no binding %q for placeholder ${%s}", expr.root, expr.source)
		}
		current = bound
	}

	for _, seg := range expr.segments {
		next, err := project(current, seg)
		if err != nil {
			return "", common.NewError(common.TemplateResolution,
				"${%s}: %v", expr.source, err)
		}
		current = next
	}

	return stringify(current), nil
}

// project applies one path segment to a bound value. The vocabulary is
// closed per bound type; anything else is an authoring error.
func project(v interface{}, seg string) (interface{}, error) {
	switch val := v.(type) {
	case *filing.Fact:
		switch seg {
		case "fact":
			return val, nil
		case "name", "qname":
			return val.QName().Prefixed(), nil
		case "localName":
			return val.QName().Local, nil
		case "label":
			return val.Concept.DisplayLabel(), nil
		case "value":
			if val.Nil {
				return "nil", nil
			}
			return val.Value, nil
		case "context":
			return val.Context, nil
		case "period":
			return val.Context.Period, nil
		case "dimensions":
			return val.Context.DimensionsString(), nil
		case "unit":
			return val.Unit.String(), nil
		case "decimals":
			if val.Decimals == nil {
				return "none", nil
			}
			return strconv.Itoa(*val.Decimals), nil
		}
		return nil, fmt.Errorf("unknown fact property %q", seg)

	case *filing.Concept:
		switch seg {
		case "name":
			return val.Name.Prefixed(), nil
		case "localName":
			return val.Name.Local, nil
		case "label":
			return val.DisplayLabel(), nil
		}
		return nil, fmt.Errorf("unknown concept property %q", seg)

	case filing.Period:
		switch seg {
		case "startDate":
			return filing.FormatDate(val.Start), nil
		case "endDate", "instant":
			return filing.FormatDate(val.EndDate()), nil
		case "durationDays":
			return strconv.Itoa(val.DurationDays()), nil
		}
		return nil, fmt.Errorf("unknown period property %q", seg)

	case *filing.Context:
		switch seg {
		case "period":
			return val.Period, nil
		case "dimensions":
			return val.DimensionsString(), nil
		case "id":
			return val.ID, nil
		case "entity":
			return val.Entity, nil
		}
		return nil, fmt.Errorf("unknown context property %q", seg)

	default:
		return nil, fmt.Errorf("property %q not applicable to %T", seg, v)
	}
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case *filing.Fact:
		return val.QName().Prefixed()
	case *filing.Concept:
		return val.Name.Prefixed()
	case *filing.Context:
		return val.ID
	case filing.Period:
		return val.String()
	case rules.Info:
		return val.Version
	case decimal.Decimal:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}
