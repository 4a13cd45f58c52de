package testutil

import (
	"net/http"

	"donorcheck/pkg/requestcontext"
)

// WithIdentity stamps the resolved submitter identity on the request context,
// simulating what the identity middleware does for authenticated requests.
func WithIdentity(req *http.Request, email, name string) *http.Request {
	ctx := req.Context()
	if email != "" {
		ctx = requestcontext.WithUserEmail(ctx, email)
	}
	if name != "" {
		ctx = requestcontext.WithUserName(ctx, name)
	}
	return req.WithContext(ctx)
}

// WithRequestID stamps a request id on the request context.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}
