package main

import (
	"errors"
	"fmt"
)

type cleanupFunc struct {
	name string
	fn   func() error
}

// cleanupStack runs deferred teardown in reverse order of push and
// reports every failure, not just the first.
type cleanupStack []cleanupFunc

func (cs *cleanupStack) push(name string, fn func() error) {
	*cs = append(*cs, cleanupFunc{name: name, fn: fn})
}

func (cs *cleanupStack) run() error {
	var errs []error
	for i := len(*cs) - 1; i >= 0; i-- {
		c := (*cs)[i]
		if err := c.fn(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.name, err))
		}
	}
	*cs = nil
	return errors.Join(errs...)
}
