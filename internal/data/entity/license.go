package entity

import (
	"time"

	"github.com/google/uuid"
)

type LicenseStatus string

const (
	LicenseStatusPending  LicenseStatus = "pending"
	LicenseStatusVerified LicenseStatus = "verified"
	LicenseStatusRejected LicenseStatus = "rejected"
)

// License is a driving-license KYC record awaiting admin review.
type License struct {
	Base
	UserID       uuid.UUID     `db:"user_id"`
	Number       string        `db:"number"`
	ImageURL     string        `db:"image_url"`
	ExpiresOn    time.Time     `db:"expires_on"`
	Status       LicenseStatus `db:"status"`
	RejectReason *string       `db:"reject_reason"`
	ReviewedBy   *uuid.UUID    `db:"reviewed_by"`
	ReviewedAt   *time.Time    `db:"reviewed_at"`
}
