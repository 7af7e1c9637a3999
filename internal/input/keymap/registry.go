package keymap

// Registry is an ordered, append-only collection of bindings.
//
// A Registry is owned by one script run and is not safe for concurrent use:
// the run's bind calls write to it and the host reads it after the run.
type Registry struct {
	bindings []Binding
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Push appends bindings in the given order.
func (r *Registry) Push(bindings ...Binding) {
	r.bindings = append(r.bindings, bindings...)
}

// Len returns the number of bindings.
func (r *Registry) Len() int {
	return len(r.bindings)
}

// Bindings returns a copy of all bindings in insertion order.
func (r *Registry) Bindings() []Binding {
	out := make([]Binding, len(r.bindings))
	copy(out, r.bindings)
	return out
}

// Each calls fn for every binding in insertion order.
// Iteration stops early if fn returns false.
func (r *Registry) Each(fn func(i int, b Binding) bool) {
	for i, b := range r.bindings {
		if !fn(i, b) {
			return
		}
	}
}

// Drain returns all bindings and leaves the registry empty.
func (r *Registry) Drain() []Binding {
	out := r.bindings
	r.bindings = nil
	return out
}
