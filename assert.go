package main

import "github.com/pkg/errors"

// Assert panics with a stack-carrying error when cond is false. It guards
// invariants that can only be broken by a programming error.
func Assert(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(errors.Errorf("assertion failed: "+format, args...))
	}
}
