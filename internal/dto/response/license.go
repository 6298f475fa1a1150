package response

import (
	"time"

	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/entity"
)

type LicenseResponse struct {
	ID           string               `json:"id"`
	UserID       string               `json:"user_id"`
	Number       string               `json:"number"`
	ImageURL     string               `json:"image_url"`
	ExpiresOn    time.Time            `json:"expires_on"`
	Status       entity.LicenseStatus `json:"status"`
	RejectReason *string              `json:"reject_reason,omitempty"`
	ReviewedAt   *time.Time           `json:"reviewed_at,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

// Helper converters
func LicenseToResponse(license *entity.License) LicenseResponse {
	return LicenseResponse{
		ID:           license.ID.String(),
		UserID:       license.UserID.String(),
		Number:       license.Number,
		ImageURL:     license.ImageURL,
		ExpiresOn:    license.ExpiresOn,
		Status:       license.Status,
		RejectReason: license.RejectReason,
		ReviewedAt:   license.ReviewedAt,
		CreatedAt:    license.CreatedAt,
	}
}

func LicensesToResponse(licenses []*entity.License) []LicenseResponse {
	out := make([]LicenseResponse, 0, len(licenses))
	for _, license := range licenses {
		out = append(out, LicenseToResponse(license))
	}
	return out
}
