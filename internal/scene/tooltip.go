package scene

// Tooltip is a screen-space text node shown next to the pointer.
type Tooltip struct {
	Text    string
	Visible bool
	Left    float64 // Surface pixel coordinates of the top-left corner
	Top     float64
}

// TooltipRegistry owns one tooltip per planet, keyed by planet name.
type TooltipRegistry struct {
	nodes map[string]*Tooltip
	order []string
}

// NewTooltipRegistry creates an empty registry.
func NewTooltipRegistry() *TooltipRegistry {
	return &TooltipRegistry{nodes: make(map[string]*Tooltip)}
}

// Attach creates a hidden tooltip for name, replacing any previous node.
func (r *TooltipRegistry) Attach(name, text string) *Tooltip {
	if _, ok := r.nodes[name]; !ok {
		r.order = append(r.order, name)
	}
	t := &Tooltip{Text: text}
	r.nodes[name] = t
	return t
}

// Detach removes the tooltip for name. It reports whether a node existed.
func (r *TooltipRegistry) Detach(name string) bool {
	if _, ok := r.nodes[name]; !ok {
		return false
	}
	delete(r.nodes, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Get returns the tooltip for name.
func (r *TooltipRegistry) Get(name string) (*Tooltip, bool) {
	t, ok := r.nodes[name]
	return t, ok
}

// Len returns the number of attached tooltips.
func (r *TooltipRegistry) Len() int {
	return len(r.nodes)
}

// HideAll hides every tooltip.
func (r *TooltipRegistry) HideAll() {
	for _, t := range r.nodes {
		t.Visible = false
	}
}

// Show hides every tooltip, then shows the one for name at (left, top).
// Returns false if name has no tooltip.
func (r *TooltipRegistry) Show(name string, left, top float64) bool {
	r.HideAll()
	t, ok := r.nodes[name]
	if !ok {
		return false
	}
	t.Left = left
	t.Top = top
	t.Visible = true
	return true
}

// Visible returns the currently shown tooltip, if any.
func (r *TooltipRegistry) Visible() (*Tooltip, bool) {
	for _, name := range r.order {
		if t := r.nodes[name]; t.Visible {
			return t, true
		}
	}
	return nil, false
}

// VisibleCount returns how many tooltips are shown.
func (r *TooltipRegistry) VisibleCount() int {
	n := 0
	for _, t := range r.nodes {
		if t.Visible {
			n++
		}
	}
	return n
}
