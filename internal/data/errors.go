package data

import "errors"

// ErrNilRequest is returned when a repository write receives a nil request.
var ErrNilRequest = errors.New("request is required")
