package testutil

import (
	"net/http"

	"vardef/pkg/requestcontext"
)

// WithCaller stores a caller on the request context the way the auth middleware does.
func WithCaller(req *http.Request, user string, groups ...string) *http.Request {
	return req.WithContext(requestcontext.WithUser(req.Context(), user, groups))
}
