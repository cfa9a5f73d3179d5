// Package interp smooths discrete simulation state for rendering.
// A fixed-step loop advances state in coarse ticks; between two ticks
// the renderer blends the previous and current snapshots by the loop's
// interpolation alpha so motion does not visibly stutter.
package interp

// Entry mirrors one externally-owned numeric vector (a position, a
// rotation, a color). It never owns the simulation state: a sample
// function reads the live values on each Capture.
//
// Protocol: Capture once before each fixed step (rotates current into
// previous), Interpolate once per rendered frame, then read Values.
type Entry struct {
	sample func() []float64

	previous     []float64
	current      []float64
	interpolated []float64
}

// NewEntry creates an entry mirroring the vector produced by sample.
// The initial previous/current snapshots are both seeded from sample
// so the first interpolation is well-defined.
func NewEntry(sample func() []float64) *Entry {
	e := &Entry{sample: sample}
	seed := sample()
	e.previous = append([]float64(nil), seed...)
	e.current = append([]float64(nil), seed...)
	e.interpolated = append([]float64(nil), seed...)
	return e
}

// Capture rotates the current snapshot into previous and re-samples
// the live state into current. Call once before each fixed step.
func (e *Entry) Capture() {
	e.previous, e.current = e.current, e.previous
	live := e.sample()
	if len(e.current) != len(live) {
		e.current = make([]float64, len(live))
	}
	copy(e.current, live)
}

// Interpolate blends previous and current by alpha and stores the
// result. Alpha outside [0,1] is clamped.
func (e *Entry) Interpolate(alpha float64) {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	n := len(e.current)
	if len(e.interpolated) != n {
		e.interpolated = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		prev := e.current[i]
		if i < len(e.previous) {
			prev = e.previous[i]
		}
		e.interpolated[i] = prev + (e.current[i]-prev)*alpha
	}
}

// Values returns the blended snapshot from the last Interpolate call.
// The returned slice is owned by the entry; callers must not retain it.
func (e *Entry) Values() []float64 {
	return e.interpolated
}

// Registry holds named entries so a consumer can capture and
// interpolate every animated property in one call per phase.
type Registry struct {
	names   []string
	entries map[string]*Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Add registers an entry under name, replacing any previous entry.
func (r *Registry) Add(name string, e *Entry) {
	if _, exists := r.entries[name]; !exists {
		r.names = append(r.names, name)
	}
	r.entries[name] = e
}

// Remove drops the named entry.
func (r *Registry) Remove(name string) {
	if _, exists := r.entries[name]; !exists {
		return
	}
	delete(r.entries, name)
	for i, n := range r.names {
		if n == name {
			r.names = append(r.names[:i], r.names[i+1:]...)
			break
		}
	}
}

// Get returns the named entry, or nil.
func (r *Registry) Get(name string) *Entry {
	return r.entries[name]
}

// CaptureAll captures every entry in registration order.
func (r *Registry) CaptureAll() {
	for _, name := range r.names {
		r.entries[name].Capture()
	}
}

// InterpolateAll interpolates every entry with the same alpha.
func (r *Registry) InterpolateAll(alpha float64) {
	for _, name := range r.names {
		r.entries[name].Interpolate(alpha)
	}
}
