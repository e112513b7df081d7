package report

import (
	"fmt"

	"github.com/seu-repo/lapeco-hr/internal/domain"
)

// Definition is a report's metadata together with its live handler.
type Definition struct {
	Meta    domain.ReportMeta
	Handler Handler
}

// Registry is the catalog of report definitions. It is built once and
// never mutated; Extend returns a new registry.
type Registry struct {
	order []domain.ReportID
	defs  map[domain.ReportID]Definition
}

// NewRegistry builds an immutable registry from defs in the given order.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{defs: make(map[domain.ReportID]Definition, len(defs))}
	if err := r.add(defs); err != nil {
		return nil, err
	}
	return r, nil
}

// Extend returns a registry holding the receiver's definitions plus defs.
func (r *Registry) Extend(defs ...Definition) (*Registry, error) {
	next := &Registry{
		order: append([]domain.ReportID(nil), r.order...),
		defs:  make(map[domain.ReportID]Definition, len(r.defs)+len(defs)),
	}
	for id, def := range r.defs {
		next.defs[id] = def
	}
	if err := next.add(defs); err != nil {
		return nil, err
	}
	return next, nil
}

// Lookup returns the definition registered under id, or ErrUnknownReport.
func (r *Registry) Lookup(id domain.ReportID) (Definition, error) {
	def, ok := r.defs[id]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", domain.ErrUnknownReport, id)
	}
	return def, nil
}

// List returns report metadata in catalog order.
func (r *Registry) List() []domain.ReportMeta {
	metas := make([]domain.ReportMeta, 0, len(r.order))
	for _, id := range r.order {
		metas = append(metas, r.defs[id].Meta)
	}
	return metas
}

// Len returns the number of registered reports.
func (r *Registry) Len() int {
	return len(r.order)
}

func (r *Registry) add(defs []Definition) error {
	for _, def := range defs {
		if err := validateDefinition(def); err != nil {
			return err
		}
		if _, exists := r.defs[def.Meta.ID]; exists {
			return fmt.Errorf("report %q is already registered", def.Meta.ID)
		}
		r.defs[def.Meta.ID] = def
		r.order = append(r.order, def.Meta.ID)
	}
	return nil
}

func validateDefinition(def Definition) error {
	m := def.Meta
	if m.ID == "" {
		return fmt.Errorf("report id cannot be empty")
	}
	if !m.Category.Valid() {
		return fmt.Errorf("report %q: unknown category %q", m.ID, m.Category)
	}
	if !m.Params.Valid() {
		return fmt.Errorf("report %q: unknown params component %q", m.ID, m.Params)
	}
	if m.RequiresParams != (m.Params != domain.ParamsNone) {
		return fmt.Errorf("report %q: requires_params=%t does not match params component %q",
			m.ID, m.RequiresParams, m.Params)
	}
	if def.Handler == nil {
		return fmt.Errorf("report %q: %w: %q", m.ID, domain.ErrUnknownHandler, m.HandlerKey)
	}
	switch def.Handler.(type) {
	case Synthesizer, Retriever:
	default:
		return fmt.Errorf("report %q: handler %q is neither a synthesizer nor a retriever", m.ID, m.HandlerKey)
	}
	return nil
}
