package forms

import (
	"github.com/voltrak-labs/showroom/internal/resources"
)

// Buffer is the edit buffer of one resource: empty for create, or seeded from
// a row for update.
type Buffer[T any] struct {
	blank func() T
	id    func(T) *int64
	value T
}

// NewBuffer creates a buffer holding res's empty template.
func NewBuffer[T any](res resources.Resource[T]) *Buffer[T] {
	b := &Buffer[T]{blank: res.Blank, id: res.ID}
	b.Reset()
	return b
}

// Reset restores the empty template.
func (b *Buffer[T]) Reset() {
	b.value = b.blank()
}

// Edit seeds the buffer from row.
func (b *Buffer[T]) Edit(row T) {
	b.value = row
}

// Set replaces the whole buffer.
func (b *Buffer[T]) Set(v T) {
	b.value = v
}

// Current returns the buffer without validating it.
func (b *Buffer[T]) Current() T {
	return b.value
}

// Editing reports whether the buffer holds an existing record.
func (b *Buffer[T]) Editing() bool {
	return b.id(b.value) != nil
}

// SetField assigns text input to one field by JSON name.
func (b *Buffer[T]) SetField(name, value string) error {
	return SetField(&b.value, name, value)
}

// Value returns the buffer after checking its required fields.
func (b *Buffer[T]) Value() (T, error) {
	if err := Validate(b.value); err != nil {
		var zero T
		return zero, err
	}
	return b.value, nil
}
