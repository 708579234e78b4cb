package series

import (
	"github.com/arloliu/datets/datekey"
	"github.com/arloliu/datets/errs"
)

// Entry is a (key, value) pair produced during iteration.
type Entry[V any] struct {
	Key   int
	Value V
}

// Date returns the entry key decoded as a date.
func (e Entry[V]) Date() datekey.Date {
	return datekey.MustDecode(e.Key)
}

// EntryIterator is a forward-only cursor over the entries of a series or builder.
//
// A fresh iterator sits before the first entry: the Current accessors fail
// with ErrIteratorNotStarted until Next, NextKey or NextDate has advanced it.
// Advancing past the last entry fails with ErrNoMoreElements.
type EntryIterator[V any] interface {
	// HasNext reports whether another entry follows. It does not advance.
	HasNext() bool
	// Next advances and returns the entry.
	Next() (Entry[V], error)
	// NextKey advances and returns the key.
	NextKey() (int, error)
	// NextDate advances and returns the key as a date.
	NextDate() (datekey.Date, error)
	// CurrentKey returns the key of the current entry.
	CurrentKey() (int, error)
	// CurrentDate returns the date of the current entry.
	CurrentDate() (datekey.Date, error)
	// CurrentValue returns the value of the current entry.
	CurrentValue() (V, error)
	// Remove deletes the current entry from the backing builder and steps back.
	// Until the next advance there is no current entry: Remove and the Current
	// accessors fail with ErrEntryRemoved.
	// Iterators over an immutable series return ErrUnsupportedMutation.
	Remove() error
}

// cursor implements EntryIterator over any Reader. remove is nil for
// read-only sources.
type cursor[V any] struct {
	src    Reader[V]
	remove  func(i int)
	pos     int
	removed bool // current entry was removed; cleared by the next advance
}

var _ EntryIterator[any] = (*cursor[any])(nil)

func (c *cursor[V]) HasNext() bool {
	return c.pos+1 < c.src.Len()
}

func (c *cursor[V]) advance() error {
	if !c.HasNext() {
		return errs.ErrNoMoreElements
	}
	c.pos++
	c.removed = false

	return nil
}

func (c *cursor[V]) started() error {
	if c.removed {
		return errs.ErrEntryRemoved
	}
	if c.pos < 0 {
		return errs.ErrIteratorNotStarted
	}

	return nil
}

func (c *cursor[V]) Next() (Entry[V], error) {
	if err := c.advance(); err != nil {
		return Entry[V]{}, err
	}

	key, _ := c.src.KeyAt(c.pos)
	value, _ := c.src.ValueAt(c.pos)

	return Entry[V]{Key: key, Value: value}, nil
}

func (c *cursor[V]) NextKey() (int, error) {
	if err := c.advance(); err != nil {
		return 0, err
	}

	key, _ := c.src.KeyAt(c.pos)

	return key, nil
}

func (c *cursor[V]) NextDate() (datekey.Date, error) {
	key, err := c.NextKey()
	if err != nil {
		return datekey.Date{}, err
	}

	return datekey.MustDecode(key), nil
}

func (c *cursor[V]) CurrentKey() (int, error) {
	if err := c.started(); err != nil {
		return 0, err
	}

	key, _ := c.src.KeyAt(c.pos)

	return key, nil
}

func (c *cursor[V]) CurrentDate() (datekey.Date, error) {
	key, err := c.CurrentKey()
	if err != nil {
		return datekey.Date{}, err
	}

	return datekey.MustDecode(key), nil
}

func (c *cursor[V]) CurrentValue() (V, error) {
	if err := c.started(); err != nil {
		var zero V
		return zero, err
	}

	value, _ := c.src.ValueAt(c.pos)

	return value, nil
}

func (c *cursor[V]) Remove() error {
	if c.remove == nil {
		return errs.ErrUnsupportedMutation
	}
	if err := c.started(); err != nil {
		return err
	}

	c.remove(c.pos)
	c.pos--
	c.removed = true

	return nil
}
