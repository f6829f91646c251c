package model

// APIResponse is the envelope every endpoint responds with
type APIResponse struct {
	Success bool          `json:"success"`
	Data    interface{}   `json:"data,omitempty"`
	Error   string        `json:"error,omitempty"`
	Message string        `json:"message,omitempty"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse documents a failed request
type ErrorResponse struct {
	Success bool          `json:"success" example:"false"`
	Error   string        `json:"error" example:"Invoice not found"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// MessageResponse documents a successful request that carries no data
type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Invoice deleted successfully"`
}

// HealthResponse reports service status
type HealthResponse struct {
	Message     string `json:"message,omitempty"`
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
	Storage     string `json:"storage"`
}
