package request

type CreateCarRequest struct {
	Make         string   `json:"make" validate:"required,min=1,max=100"`
	Model        string   `json:"model" validate:"required,min=1,max=100"`
	Year         int      `json:"year" validate:"required,min=1990,max=2100"`
	Seats        int      `json:"seats" validate:"required,min=2,max=20"`
	Fuel         string   `json:"fuel" validate:"required,oneof=petrol diesel electric hybrid"`
	Transmission string   `json:"transmission" validate:"required,oneof=manual automatic"`
	PricePerDay  int64    `json:"price_per_day" validate:"required,min=1"`
	PricePerHour int64    `json:"price_per_hour" validate:"required,min=1"`
	ImageURLs    []string `json:"image_urls" validate:"omitempty,dive,url"`
}

type UpdateCarRequest struct {
	Make         *string  `json:"make,omitempty" validate:"omitempty,min=1,max=100"`
	Model        *string  `json:"model,omitempty" validate:"omitempty,min=1,max=100"`
	Year         *int     `json:"year,omitempty" validate:"omitempty,min=1990,max=2100"`
	Seats        *int     `json:"seats,omitempty" validate:"omitempty,min=2,max=20"`
	Fuel         *string  `json:"fuel,omitempty" validate:"omitempty,oneof=petrol diesel electric hybrid"`
	Transmission *string  `json:"transmission,omitempty" validate:"omitempty,oneof=manual automatic"`
	PricePerDay  *int64   `json:"price_per_day,omitempty" validate:"omitempty,min=1"`
	PricePerHour *int64   `json:"price_per_hour,omitempty" validate:"omitempty,min=1"`
	Status       *string  `json:"status,omitempty" validate:"omitempty,oneof=active published booked maintenance"`
	ImageURLs    []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
}

type CreateMaintenanceRequest struct {
	CarID string `json:"car_id" validate:"required,uuid4"`
	Note  string `json:"note" validate:"required,min=3,max=500"`
}
