package testutil

import "errors"

// ErrSimulated is a sentinel error for testing degraded paths (store down, host refusing spawns).
var ErrSimulated = errors.New("simulated error for testing")
