package llm

// Response is any JSON value returned by the server. Its schema belongs to the
// server and is not validated here; objects decode to map[string]any.
type Response any
