// Package options implements generic functional options.
//
// A package exposes constructors returning Option[*config] and applies them
// to its config struct with Apply:
//
//	func WithLevel(level int) options.Option[*config] {
//	    return options.New(func(c *config) error {
//	        if level < 0 {
//	            return errInvalidLevel
//	        }
//	        c.level = level
//	        return nil
//	    })
//	}
package options

import "fmt"

// Option configures a target of type T, usually a pointer to a config struct.
type Option[T any] interface {
	apply(T) error
}

type optionFunc[T any] func(T) error

func (f optionFunc[T]) apply(target T) error {
	return f(target)
}

// New wraps fn as an Option. An error from fn aborts Apply.
func New[T any](fn func(T) error) Option[T] {
	return optionFunc[T](fn)
}

// NoError wraps an infallible fn as an Option.
func NoError[T any](fn func(T)) Option[T] {
	return optionFunc[T](func(target T) error {
		fn(target)
		return nil
	})
}

// Apply applies opts to target in order and stops at the first error. Nil
// options are skipped.
func Apply[T any](target T, opts ...Option[T]) error {
	for i, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return fmt.Errorf("option %d: %w", i, err)
		}
	}

	return nil
}
