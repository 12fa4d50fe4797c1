package auth

import "errors"

// ErrPermissionDenied is returned when a caller's role or row ownership does
// not admit the attempted operation. The server maps it to 403.
var ErrPermissionDenied = errors.New("permission denied")
