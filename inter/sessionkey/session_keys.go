package sessionkey

import (
	"fmt"
)

// Keys is the session key bundle registered for one collator. The runtime
// currently expects a single block-authoring (aura) key; further fields are
// appended here and listed in Fields when the runtime grows them.
type Keys struct {
	Aura PubKey `json:"aura"`
}

// Field names one entry of a bundle. Name is the runtime's four-byte key
// type id of the entry.
type Field struct {
	Name string
	Key  PubKey
}

// TypeID returns Name as the runtime's fixed-width key type id.
func (f Field) TypeID() []byte {
	id := make([]byte, 4)
	copy(id, f.Name)
	return id
}

// Fields lists the bundle entries in their canonical order.
func (k Keys) Fields() []Field {
	return []Field{
		{Name: "aura", Key: k.Aura},
	}
}

// Validate checks every field of the bundle.
func (k Keys) Validate() error {
	for _, f := range k.Fields() {
		if err := f.Key.Validate(); err != nil {
			return fmt.Errorf("session key %q: %w", f.Name, err)
		}
	}
	return nil
}

// Equal compares every field.
func (k Keys) Equal(other Keys) bool {
	a, b := k.Fields(), other.Fields()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || !a[i].Key.Equal(b[i].Key) {
			return false
		}
	}
	return true
}

// Contains reports whether key appears in any field of the bundle.
func (k Keys) Contains(key PubKey) bool {
	for _, f := range k.Fields() {
		if f.Key.Equal(key) {
			return true
		}
	}
	return false
}

// WrapFunc adapts a raw consensus key into the bundle shape the runtime
// expects.
type WrapFunc func(PubKey) Keys

// AuraOnly is the WrapFunc for runtimes whose bundle holds only the aura key.
func AuraOnly(key PubKey) Keys {
	return Keys{Aura: key}
}
