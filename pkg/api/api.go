// Package api defines the REST endpoints and wire constants shared by the
// showroom client and the development backend.
package api

// Version of the showroom client.
const Version = "0.1.0"

// PathPrefix is prepended to every endpoint: {backend}/api/{endpoint}.
const PathPrefix = "/api"

// Endpoints, relative to PathPrefix.
const (
	EndpointProducts  = "products"
	EndpointQnA       = "qna"
	EndpointAwards    = "awards"
	EndpointMedia     = "media"
	EndpointRequests  = "requests"
	EndpointApply     = "apply"
	EndpointBlogs     = "blogs"
	EndpointSubscribe = "subscribe"
)

// HTTP headers
const (
	HeaderContentType = "Content-Type"
)

// Content types
const (
	ContentTypeJSON = "application/json"
)

// ErrorResponse is the backend's failure envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
