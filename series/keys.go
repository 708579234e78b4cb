package series

import (
	"fmt"
	"slices"

	"github.com/arloliu/datets/datekey"
	"github.com/arloliu/datets/errs"
)

// keyBuffer is an immutable, strictly ascending run of dense date keys.
//
// A *keyBuffer is never written after construction, so series produced by
// value-only transforms hold the same pointer as their source. Pointer
// identity is what the alignment engine checks for its index-for-index path.
type keyBuffer struct {
	keys []int
}

var emptyKeys = &keyBuffer{}

// newKeyBuffer copies keys after checking they are valid and strictly ascending.
func newKeyBuffer(keys []int) (*keyBuffer, error) {
	if len(keys) == 0 {
		return emptyKeys, nil
	}
	if err := checkKeys(keys); err != nil {
		return nil, err
	}

	return &keyBuffer{keys: slices.Clone(keys)}, nil
}

// ownKeyBuffer takes ownership of keys without copying or validating.
// Callers must guarantee the slice is ascending and never written again.
func ownKeyBuffer(keys []int) *keyBuffer {
	if len(keys) == 0 {
		return emptyKeys
	}

	return &keyBuffer{keys: keys}
}

func checkKeys(keys []int) error {
	for i, key := range keys {
		if err := datekey.Validate(key); err != nil {
			return fmt.Errorf("index %d: %w", i, err)
		}
		if i > 0 && key <= keys[i-1] {
			return fmt.Errorf("%w: key %d at index %d follows %d", errs.ErrInvalidOrder, key, i, keys[i-1])
		}
	}

	return nil
}

func (b *keyBuffer) len() int {
	return len(b.keys)
}

func (b *keyBuffer) at(i int) int {
	return b.keys[i]
}

// search returns the position of key, or the insertion point and false.
func (b *keyBuffer) search(key int) (int, bool) {
	return slices.BinarySearch(b.keys, key)
}

// window copies keys[from:to] into a fresh buffer.
func (b *keyBuffer) window(from, to int) *keyBuffer {
	if from == 0 && to == len(b.keys) {
		return b
	}

	return ownKeyBuffer(slices.Clone(b.keys[from:to]))
}

// clone returns a mutable copy of the keys.
func (b *keyBuffer) clone() []int {
	return slices.Clone(b.keys)
}
