package types

// MessageResponse is the body of every error response and of confirmations
// that carry no record
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
