package api

type ErrorResponse struct {
	Error  string `json:"error" example:"something went wrong"`
	Reason string `json:"reason,omitempty" example:"no_entitlement"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
