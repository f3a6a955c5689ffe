package core

import "errors"

// ErrAlreadyExists is returned by repositories when an insert loses a race on
// a unique constraint. Callers decide whether that outcome is benign; for
// starred messages it is how a concurrent promotion attempt reports "someone
// else got there first".
var ErrAlreadyExists = errors.New("already exists")
