package scene

import "errors"

// ErrUnauthenticated is returned by mutations when no caller identity was
// resolved. Reads never return it; they degrade to empty results instead.
var ErrUnauthenticated = errors.New("not authenticated")

// ErrAccessDenied covers both "record does not exist" and "record exists but
// is not yours". The two causes are never distinguished to callers, so the
// existence of private records cannot be probed.
var ErrAccessDenied = errors.New("not found or access denied")
