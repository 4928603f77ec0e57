//
//  Copyright © Manetu Inc. All rights reserved.
//

// Package v1 parses version dqengine.xbrldq.io/v1 filing interchange
// documents.
package v1

import (
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/xbrldq/dqengine/pkg/filing"
)

type qnameRef struct {
	Namespace string `yaml:"namespace"`
	Name      string `yaml:"name"`
	Prefix    string `yaml:"prefix,omitempty"`
}

func (q qnameRef) qname() filing.QName {
	return filing.QName{Namespace: q.Namespace, Local: q.Name, Prefix: q.Prefix}
}

type conceptDoc struct {
	qnameRef            `yaml:",inline"`
	Label               string `yaml:"label"`
	Balance             string `yaml:"balance"`
	PeriodType          string `yaml:"periodType"`
	Numeric             bool   `yaml:"numeric"`
	Abstract            bool   `yaml:"abstract"`
	Dimension           bool   `yaml:"dimension"`
	Deprecated          bool   `yaml:"deprecated"`
	DeprecationGuidance string `yaml:"deprecationGuidance"`
}

type dimensionDefaultDoc struct {
	Axis   qnameRef `yaml:"axis"`
	Member qnameRef `yaml:"member"`
}

type dimensionDomainDoc struct {
	Axis   qnameRef `yaml:"axis"`
	Member qnameRef `yaml:"member"`
	Role   string   `yaml:"role"`
}

type relationshipDoc struct {
	Source qnameRef `yaml:"source"`
	Target qnameRef `yaml:"target"`
	Weight float64  `yaml:"weight"`
	Order  float64  `yaml:"order"`
}

type networkDoc struct {
	Kind          string            `yaml:"kind"`
	Role          string            `yaml:"role"`
	Relationships []relationshipDoc `yaml:"relationships"`
}

type dimensionValueDoc struct {
	Axis   qnameRef  `yaml:"axis"`
	Member *qnameRef `yaml:"member,omitempty"`
	Typed  string    `yaml:"typed,omitempty"`
}

type contextDoc struct {
	ID         string              `yaml:"id"`
	Entity     string              `yaml:"entity"`
	Instant    string              `yaml:"instant,omitempty"`
	Start      string              `yaml:"start,omitempty"`
	End        string              `yaml:"end,omitempty"`
	Dimensions []dimensionValueDoc `yaml:"dimensions"`
}

type unitDoc struct {
	Numerator   []string `yaml:"numerator"`
	Denominator []string `yaml:"denominator"`
}

type factDoc struct {
	Concept   qnameRef `yaml:"concept"`
	Context   string   `yaml:"context"`
	Value     string   `yaml:"value"`
	Nil       bool     `yaml:"nil"`
	Decimals  *int     `yaml:"decimals,omitempty"`
	Precision *int     `yaml:"precision,omitempty"`
	Unit      *unitDoc `yaml:"unit,omitempty"`
}

type filingDoc struct {
	Schemas           []string              `yaml:"schemas"`
	Concepts          []conceptDoc          `yaml:"concepts"`
	DimensionDefaults []dimensionDefaultDoc `yaml:"dimensionDefaults"`
	DimensionDomains  []dimensionDomainDoc  `yaml:"dimensionDomains"`
	Networks          []networkDoc          `yaml:"networks"`
	Contexts          []contextDoc          `yaml:"contexts"`
	Facts             []factDoc             `yaml:"facts"`
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}

// Parse builds a filing from a v1 interchange document, resolving all
// concept and context references and verifying the model invariants.
func Parse(data []byte) (*filing.Filing, error) {
	var doc filingDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "parsing filing document")
	}

	dts := filing.NewDTS()
	for _, ns := range doc.Schemas {
		dts.AddSchema(filing.Schema{TargetNamespace: ns})
	}

	for _, c := range doc.Concepts {
		concept := &filing.Concept{
			Name:                c.qname(),
			Label:               c.Label,
			Balance:             filing.BalanceType(c.Balance),
			Period:              filing.PeriodType(c.PeriodType),
			Numeric:             c.Numeric,
			Abstract:            c.Abstract,
			Dimension:           c.Dimension,
			Deprecated:          c.Deprecated,
			DeprecationGuidance: c.DeprecationGuidance,
		}
		if concept.Balance == "" {
			concept.Balance = filing.BalanceNone
		}
		dts.AddConcept(concept)
	}

	resolve := func(ref qnameRef, role string) (*filing.Concept, error) {
		c := dts.ResolveConcept(ref.qname())
		if c == nil {
			return nil, errors.Errorf("%s references undefined concept %s", role, ref.qname())
		}
		return c, nil
	}

	for _, dd := range doc.DimensionDefaults {
		member, err := resolve(dd.Member, "dimension default")
		if err != nil {
			return nil, err
		}
		dts.SetDimensionDefault(dd.Axis.qname(), member)
	}

	for _, dom := range doc.DimensionDomains {
		axis, err := resolve(dom.Axis, "dimension domain")
		if err != nil {
			return nil, err
		}
		member, err := resolve(dom.Member, "dimension domain")
		if err != nil {
			return nil, err
		}
		dts.AddDimensionDomain(filing.DimensionDomain{Axis: axis, Member: member, Role: dom.Role})
	}

	for _, nd := range doc.Networks {
		rels := make([]*filing.Relationship, 0, len(nd.Relationships))
		for _, rd := range nd.Relationships {
			source, err := resolve(rd.Source, "relationship")
			if err != nil {
				return nil, err
			}
			target, err := resolve(rd.Target, "relationship")
			if err != nil {
				return nil, err
			}
			rels = append(rels, &filing.Relationship{
				Source: source,
				Target: target,
				Weight: rd.Weight,
				Order:  rd.Order,
			})
		}
		dts.AddNetwork(filing.NetworkKind(nd.Kind), filing.NewNetwork(nd.Role, rels))
	}

	contexts := make(map[string]*filing.Context, len(doc.Contexts))
	for _, cd := range doc.Contexts {
		ctx := &filing.Context{ID: cd.ID, Entity: cd.Entity}

		switch {
		case cd.Instant != "":
			at, err := parseDate(cd.Instant)
			if err != nil {
				return nil, errors.Wrapf(err, "context %q instant", cd.ID)
			}
			ctx.Period = filing.NewInstant(at)
		case cd.Start != "" && cd.End != "":
			start, err := parseDate(cd.Start)
			if err != nil {
				return nil, errors.Wrapf(err, "context %q start", cd.ID)
			}
			end, err := parseDate(cd.End)
			if err != nil {
				return nil, errors.Wrapf(err, "context %q end", cd.ID)
			}
			ctx.Period = filing.NewDuration(start, end)
		default:
			return nil, errors.Errorf("context %q has neither instant nor start/end", cd.ID)
		}

		for _, dv := range cd.Dimensions {
			axis, err := resolve(dv.Axis, "context dimension")
			if err != nil {
				return nil, err
			}
			value := filing.DimensionValue{Axis: axis, Typed: dv.Typed}
			if dv.Member != nil {
				member, err := resolve(*dv.Member, "context dimension")
				if err != nil {
					return nil, err
				}
				value.Member = member
			}
			ctx.Dimensions = append(ctx.Dimensions, value)
		}

		if _, dup := contexts[cd.ID]; dup {
			return nil, errors.Errorf("duplicate context id %q", cd.ID)
		}
		contexts[cd.ID] = ctx
	}

	facts := make([]*filing.Fact, 0, len(doc.Facts))
	for i, fd := range doc.Facts {
		concept, err := resolve(fd.Concept, "fact")
		if err != nil {
			return nil, err
		}
		ctx, ok := contexts[fd.Context]
		if !ok {
			return nil, errors.Errorf("fact %d references unknown context %q", i, fd.Context)
		}
		fact := &filing.Fact{
			Concept:   concept,
			Context:   ctx,
			Value:     fd.Value,
			Nil:       fd.Nil,
			Decimals:  fd.Decimals,
			Precision: fd.Precision,
		}
		if fd.Unit != nil {
			fact.Unit = filing.Unit{Numerator: fd.Unit.Numerator, Denominator: fd.Unit.Denominator}
		}
		facts = append(facts, fact)
	}

	instance := &filing.Filing{
		DTS:      dts,
		Contexts: contexts,
		Facts:    filing.NewFactSet(facts),
	}
	if err := instance.CheckInvariants(); err != nil {
		return nil, err
	}
	return instance, nil
}
