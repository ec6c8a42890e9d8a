package request_models

type PlanTripRequest struct {
	City      string `json:"city" binding:"required"`
	Days      int    `json:"days" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
}
