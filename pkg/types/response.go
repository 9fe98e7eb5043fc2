package types

// SuccessEnvelope wraps every 2xx JSON body; the payload sits under "data".
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error body: a stable machine code, a message safe
// to show storefront clients, and optional field-level validation details.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
