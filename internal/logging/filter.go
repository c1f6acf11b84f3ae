package logging

import (
	"context"
	"log/slog"
	"sync"
)

// componentKey is the attribute that identifies the emitting component.
const componentKey = "component"

// ComponentFilterHandler filters records by a per-component minimum level.
//
// The component is taken from a "component" attribute attached with
// Logger.With, or failing that from the record's own attributes. Components
// without an override use the default level. Handlers derived through
// WithAttrs and WithGroup share the same override table, so SetLevel on the
// root handler affects every scoped logger.
type ComponentFilterHandler struct {
	next         slog.Handler
	defaultLevel slog.Level
	levels       *levelTable
	component    string
}

type levelTable struct {
	mu     sync.RWMutex
	levels map[string]slog.Level
	min    slog.Level // lowest of the default and all overrides
}

// NewComponentFilterHandler wraps next, passing records at or above
// defaultLevel unless a component override says otherwise.
func NewComponentFilterHandler(next slog.Handler, defaultLevel slog.Level) *ComponentFilterHandler {
	return &ComponentFilterHandler{
		next:         next,
		defaultLevel: defaultLevel,
		levels: &levelTable{
			levels: make(map[string]slog.Level),
			min:    defaultLevel,
		},
	}
}

// SetLevel overrides the minimum level for component.
func (h *ComponentFilterHandler) SetLevel(component string, level slog.Level) {
	t := h.levels
	t.mu.Lock()
	defer t.mu.Unlock()
	t.levels[component] = level
	t.recompute(h.defaultLevel)
}

// Level returns the effective minimum level for component.
func (h *ComponentFilterHandler) Level(component string) slog.Level {
	t := h.levels
	t.mu.RLock()
	defer t.mu.RUnlock()
	if l, ok := t.levels[component]; ok {
		return l
	}
	return h.defaultLevel
}

// DefaultLevel returns the level used for components without an override.
func (h *ComponentFilterHandler) DefaultLevel() slog.Level {
	return h.defaultLevel
}

// Enabled reports whether a record at level could pass. When the component
// is not yet known the loosest configured level is used and Handle makes
// the final decision.
func (h *ComponentFilterHandler) Enabled(ctx context.Context, level slog.Level) bool {
	var threshold slog.Level
	if h.component != "" {
		threshold = h.Level(h.component)
	} else {
		h.levels.mu.RLock()
		threshold = h.levels.min
		h.levels.mu.RUnlock()
	}
	if level < threshold {
		return false
	}
	return h.next.Enabled(ctx, level)
}

func (h *ComponentFilterHandler) Handle(ctx context.Context, r slog.Record) error {
	component := h.component
	if component == "" {
		r.Attrs(func(a slog.Attr) bool {
			if a.Key == componentKey {
				component = a.Value.String()
				return false
			}
			return true
		})
	}
	if r.Level < h.Level(component) {
		return nil
	}
	return h.next.Handle(ctx, r)
}

func (h *ComponentFilterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	component := h.component
	for _, a := range attrs {
		if a.Key == componentKey {
			component = a.Value.String()
		}
	}
	return &ComponentFilterHandler{
		next:         h.next.WithAttrs(attrs),
		defaultLevel: h.defaultLevel,
		levels:       h.levels,
		component:    component,
	}
}

func (h *ComponentFilterHandler) WithGroup(name string) slog.Handler {
	return &ComponentFilterHandler{
		next:         h.next.WithGroup(name),
		defaultLevel: h.defaultLevel,
		levels:       h.levels,
		component:    h.component,
	}
}

func (t *levelTable) recompute(defaultLevel slog.Level) {
	t.min = defaultLevel
	for _, l := range t.levels {
		if l < t.min {
			t.min = l
		}
	}
}
