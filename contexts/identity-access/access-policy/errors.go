package accesspolicy

import "errors"

var (
	ErrUnauthenticated  = errors.New("no authenticated caller bound")
	ErrPermissionDenied = errors.New("permission denied")
)
