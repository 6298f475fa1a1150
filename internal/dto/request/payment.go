package request

type CreateIntentRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
	Mode      string `json:"mode" validate:"required,oneof=hold10 full"`
}

type ConfirmPaymentRequest struct {
	IntentID string `json:"intent_id" validate:"required"`
}

type RefundRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
	Reason    string `json:"reason" validate:"required,min=3,max=500"`
}
