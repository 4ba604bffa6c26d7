package model

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type PingResponse struct {
	Message string `json:"message"`
}
