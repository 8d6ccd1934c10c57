// Package panels declares the console's business areas and the actions each
// one exposes.
package panels

import (
	"fmt"
	"sort"
	"strings"

	"github.com/noelruault/lazyops/internal/action"
	"github.com/noelruault/lazyops/internal/i18n"
)

// Panel is one business area of the console.
type Panel struct {
	ID       string
	Title    i18n.Text
	WebPath  string // page of the web console for this area
	Realtime bool   // panel is fed by the dashboard channel
	Actions  []action.Descriptor
}

// Registry indexes panels and their actions.
type Registry struct {
	panels  []Panel
	actions map[string]action.Descriptor
}

// NewRegistry validates and indexes panels. Each descriptor's Panel field is
// set to its owning panel id.
func NewRegistry(panels ...Panel) (*Registry, error) {
	r := &Registry{actions: make(map[string]action.Descriptor)}
	seen := make(map[string]bool)
	for _, p := range panels {
		if p.ID == "" {
			return nil, fmt.Errorf("panel without id")
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate panel %q", p.ID)
		}
		seen[p.ID] = true

		p.Actions = append([]action.Descriptor(nil), p.Actions...)
		for i := range p.Actions {
			p.Actions[i].Panel = p.ID
			d := p.Actions[i]
			if err := d.Validate(); err != nil {
				return nil, err
			}
			if _, dup := r.actions[d.Key()]; dup {
				return nil, fmt.Errorf("duplicate action %q", d.Key())
			}
			r.actions[d.Key()] = d
		}
		r.panels = append(r.panels, p)
	}
	return r, nil
}

// Default returns the built-in catalog.
func Default() *Registry {
	r, err := NewRegistry(
		Dashboard,
		Alerts,
		AI,
		Assets,
		Billing,
		Compliance,
		TaskCenter,
		Reporting,
		Observability,
		OpenPlatform,
		Identity,
		Outcomes,
	)
	if err != nil {
		panic(err)
	}
	return r
}

// Panels returns the panels in declaration order.
func (r *Registry) Panels() []Panel {
	return append([]Panel(nil), r.panels...)
}

// Panel returns the panel with id.
func (r *Registry) Panel(id string) (Panel, bool) {
	for _, p := range r.panels {
		if p.ID == id {
			return p, true
		}
	}
	return Panel{}, false
}

// Action looks up an action by its panel.action key.
func (r *Registry) Action(key string) (action.Descriptor, bool) {
	d, ok := r.actions[strings.TrimSpace(key)]
	return d, ok
}

// Keys returns all action keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.actions))
	for k := range r.actions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
