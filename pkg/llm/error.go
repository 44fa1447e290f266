// Package llm provides the wire representations of requests sent to a local
// model server and the untyped responses it returns.
package llm

// ErrorResponse is the body the model server sends when it rejects a request.
type ErrorResponse struct {
	Error string `json:"error"`
}
