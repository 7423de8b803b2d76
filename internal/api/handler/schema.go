package handler

// errorResponse mirrors the envelope rendered by the central error handler;
// referenced by the swagger annotations.
type errorResponse struct {
	Message string `json:"message"`
}

// messageResponse is returned by delete endpoints.
type messageResponse struct {
	Message string `json:"message"`
}
