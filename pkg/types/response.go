package types

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// MessageResponse is the body of mutations that only acknowledge.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreatedResponse is the body of a successful gift creation.
type CreatedResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}
