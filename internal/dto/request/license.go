package request

import "time"

type SubmitLicenseRequest struct {
	Number    string    `json:"number" validate:"required,min=5,max=50"`
	ImageURL  string    `json:"image_url" validate:"required,url"`
	ExpiresOn time.Time `json:"expires_on" validate:"required"`
}

type ReviewLicenseRequest struct {
	Status       string  `json:"status" validate:"required,oneof=verified rejected"`
	RejectReason *string `json:"reject_reason,omitempty" validate:"omitempty,min=3,max=500"`
}
