package response

import (
	"time"

	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/entity"
)

type ValidatePromoResponse struct {
	Valid          bool   `json:"valid"`
	Code           string `json:"code"`
	DiscountAmount int64  `json:"discount_amount"`
	FinalAmount    int64  `json:"final_amount"`
	Reason         string `json:"reason,omitempty"`
}

type PromoResponse struct {
	ID              string     `json:"id"`
	Code            string     `json:"code"`
	DiscountPercent *int       `json:"discount_percent,omitempty"`
	DiscountFlat    *int64     `json:"discount_flat,omitempty"`
	ValidFrom       *time.Time `json:"valid_from,omitempty"`
	ValidUntil      *time.Time `json:"valid_until,omitempty"`
	UsageLimit      *int       `json:"usage_limit,omitempty"`
	UsageCount      int        `json:"usage_count"`
	Active          bool       `json:"active"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Helper converters
func PromoToResponse(promo *entity.PromoCode) PromoResponse {
	return PromoResponse{
		ID:              promo.ID.String(),
		Code:            promo.Code,
		DiscountPercent: promo.DiscountPercent,
		DiscountFlat:    promo.DiscountFlat,
		ValidFrom:       promo.ValidFrom,
		ValidUntil:      promo.ValidUntil,
		UsageLimit:      promo.UsageLimit,
		UsageCount:      promo.UsageCount,
		Active:          promo.Active,
		CreatedAt:       promo.CreatedAt,
	}
}

func PromosToResponse(promos []*entity.PromoCode) []PromoResponse {
	out := make([]PromoResponse, 0, len(promos))
	for _, promo := range promos {
		out = append(out, PromoToResponse(promo))
	}
	return out
}
