package dto

type CreateWellnessRequest struct {
	Date        string   `json:"date" binding:"required"` // YYYY-MM-DD
	StressLevel *int     `json:"stressLevel" binding:"required,min=0,max=5"`
	SleepHours  *float64 `json:"sleepHours" binding:"required,min=0,max=24"`
	DietQuality int      `json:"dietQuality" binding:"required,min=1,max=3"`
	Comment     string   `json:"comment"`
}

type UpdateWellnessRequest struct {
	StressLevel *int     `json:"stressLevel" binding:"omitempty,min=0,max=5"`
	SleepHours  *float64 `json:"sleepHours" binding:"omitempty,min=0,max=24"`
	DietQuality *int     `json:"dietQuality" binding:"omitempty,min=1,max=3"`
	Comment     *string  `json:"comment"`
}

type CreateEmergencyRequest struct {
	Channel      string `json:"channel" binding:"required,oneof=quick_help wellness_form other"`
	Description  string `json:"description" binding:"required"`
	Confidential *bool  `json:"confidential"`
}

type UpdateEmergencyRequest struct {
	Status       *string `json:"status" binding:"omitempty,oneof=open in_attention closed"`
	Confidential *bool   `json:"confidential"`
}
