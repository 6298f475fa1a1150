package response

import (
	"time"

	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/entity"
)

type FinanceSummaryResponse struct {
	From             time.Time                      `json:"from"`
	To               time.Time                      `json:"to"`
	Revenue          int64                          `json:"revenue"`
	OutstandingHolds int64                          `json:"outstanding_holds"`
	BookingsByStatus map[entity.BookingStatus]int64 `json:"bookings_by_status"`
}

type AuditLogResponse struct {
	ID         string    `json:"id"`
	ActorID    *string   `json:"actor_id,omitempty"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   *string   `json:"entity_id,omitempty"`
	Detail     string    `json:"detail"`
	IPAddress  string    `json:"ip_address"`
	CreatedAt  time.Time `json:"created_at"`
}

// Helper converters
func AuditLogToResponse(record *entity.AuditLog) AuditLogResponse {
	resp := AuditLogResponse{
		ID:         record.ID.String(),
		Action:     record.Action,
		EntityType: record.EntityType,
		Detail:     record.Detail,
		IPAddress:  record.IPAddress,
		CreatedAt:  record.CreatedAt,
	}

	if record.ActorID != nil {
		actor := record.ActorID.String()
		resp.ActorID = &actor
	}
	if record.EntityID != nil {
		target := record.EntityID.String()
		resp.EntityID = &target
	}

	return resp
}

func AuditLogsToResponse(records []*entity.AuditLog) []AuditLogResponse {
	out := make([]AuditLogResponse, 0, len(records))
	for _, record := range records {
		out = append(out, AuditLogToResponse(record))
	}
	return out
}
