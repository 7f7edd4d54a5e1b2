package utils

// ErrorResponse is the JSON error body shared by all controllers.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
