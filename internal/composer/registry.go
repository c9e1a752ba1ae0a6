package composer

import "github.com/google/uuid"

// Registry holds the ordered attachments of a single draft.
// It performs no kind-specific validation and is not safe for concurrent use;
// the owning Composer serializes access.
type Registry struct {
	items []Attachment
	newID func() string
}

// NewRegistry returns an empty registry that assigns UUIDs.
func NewRegistry() *Registry {
	return &Registry{newID: uuid.NewString}
}

// Add appends a new attachment and returns it.
func (r *Registry) Add(p Payload, displayName string) Attachment {
	a := Attachment{
		ID:      r.newID(),
		Name:    displayName,
		Payload: p,
	}
	r.items = append(r.items, a)
	return a
}

// Remove drops the attachment with the given id. Unknown ids are ignored.
func (r *Registry) Remove(id string) {
	for i, a := range r.items {
		if a.ID == id {
			r.items = append(r.items[:i:i], r.items[i+1:]...)
			return
		}
	}
}

// List returns a snapshot in insertion order.
func (r *Registry) List() []Attachment {
	out := make([]Attachment, len(r.items))
	copy(out, r.items)
	return out
}

func (r *Registry) Len() int {
	return len(r.items)
}

// Clear empties the registry.
func (r *Registry) Clear() {
	r.items = nil
}
