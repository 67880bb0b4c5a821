package repo

import "errors"

// ErrNotFound is returned by repositories when a document is absent.
// Services translate it into the resource-specific error before it reaches a
// handler.
var ErrNotFound = errors.New("document not found")
