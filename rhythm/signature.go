package rhythm

// Signature is a time signature made of Groups accent groups of Divisions subdivisions each.
type Signature struct {
	ID        string
	Groups    int
	Divisions int
}

// Total returns the number of subdivisions in one bar.
func (s Signature) Total() int {
	return s.Groups * s.Divisions
}

// Registry holds the available signatures in registration order.
type Registry struct {
	order []Signature
	index map[string]int
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		order: make([]Signature, 0),
		index: make(map[string]int),
	}
}

// Register adds a signature. Registration is meant to happen once at startup.
func (r *Registry) Register(id string, groups, divisions int) error {
	if id == "" {
		return invalid("register", ErrInvalidSignature, "empty id")
	}
	if groups < 1 || divisions < 1 {
		return invalid("register", ErrInvalidSignature, "%s: groups=%d divisions=%d", id, groups, divisions)
	}
	if _, found := r.index[id]; found {
		return invalid("register", ErrDuplicateSignature, "%s", id)
	}

	r.index[id] = len(r.order)
	r.order = append(r.order, Signature{ID: id, Groups: groups, Divisions: divisions})
	return nil
}

// Get returns the signature registered under id.
func (r *Registry) Get(id string) (Signature, bool) {
	i, found := r.index[id]
	if !found {
		return Signature{}, false
	}
	return r.order[i], true
}

// IndexOf returns the registration position of id, or -1.
func (r *Registry) IndexOf(id string) int {
	if i, found := r.index[id]; found {
		return i
	}
	return -1
}

// List returns the registered signatures in registration order.
func (r *Registry) List() []Signature {
	out := make([]Signature, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered signatures.
func (r *Registry) Len() int {
	return len(r.order)
}

// Default returns preferred when it is registered, otherwise the first registered signature.
func (r *Registry) Default(preferred string) (Signature, bool) {
	if s, found := r.Get(preferred); found {
		return s, true
	}
	if len(r.order) == 0 {
		return Signature{}, false
	}
	return r.order[0], true
}
