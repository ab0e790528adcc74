package dto

type CreateReportRequest struct {
	FacilityID  string `json:"facilityId" binding:"required"`
	Description string `json:"description" binding:"required"`
	PriorityID  int    `json:"priorityId" binding:"required"`
	Photo       string `json:"photo"`
}

type UpdateReportRequest struct {
	Description *string `json:"description"`
	Status      *string `json:"status" binding:"omitempty,oneof=pending in_progress resolved verified escalated"`
	Note        string  `json:"note"`
}

type UpdateReportStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in_progress resolved verified escalated"`
	Note   string `json:"note"`
}

type CreateFacilityRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
}
