package dto

// ServiceInfoResponse describes the service on the root endpoint.
type ServiceInfoResponse struct {
	Message     string `json:"message"`
	Endpoint    string `json:"endpoint"`
	Input       string `json:"input"`
	Output      string `json:"output"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
}
