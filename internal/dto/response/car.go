package response

import (
	"time"

	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/entity"
)

type CarResponse struct {
	ID           string           `json:"id"`
	Make         string           `json:"make"`
	Model        string           `json:"model"`
	Year         int              `json:"year"`
	Seats        int              `json:"seats"`
	Fuel         string           `json:"fuel"`
	Transmission string           `json:"transmission"`
	PricePerDay  int64            `json:"price_per_day"`
	PricePerHour int64            `json:"price_per_hour"`
	Status       entity.CarStatus `json:"status"`
	ImageURLs    []string         `json:"image_urls"`
	CreatedAt    time.Time        `json:"created_at"`
}

type MaintenanceResponse struct {
	ID        string     `json:"id"`
	CarID     string     `json:"car_id"`
	Note      string     `json:"note"`
	StartAt   time.Time  `json:"start_at"`
	EndAt     *time.Time `json:"end_at,omitempty"`
	Done      bool       `json:"done"`
	CreatedAt time.Time  `json:"created_at"`
}

// Helper converters
func CarToResponse(car *entity.Car) CarResponse {
	return CarResponse{
		ID:           car.ID.String(),
		Make:         car.Make,
		Model:        car.Model,
		Year:         car.Year,
		Seats:        car.Seats,
		Fuel:         car.Fuel,
		Transmission: car.Transmission,
		PricePerDay:  car.PricePerDay,
		PricePerHour: car.PricePerHour,
		Status:       car.Status,
		ImageURLs:    car.ImageURLs,
		CreatedAt:    car.CreatedAt,
	}
}

func CarsToResponse(cars []*entity.Car) []CarResponse {
	out := make([]CarResponse, 0, len(cars))
	for _, car := range cars {
		out = append(out, CarToResponse(car))
	}
	return out
}

func MaintenanceToResponse(record *entity.Maintenance) MaintenanceResponse {
	return MaintenanceResponse{
		ID:        record.ID.String(),
		CarID:     record.CarID.String(),
		Note:      record.Note,
		StartAt:   record.StartAt,
		EndAt:     record.EndAt,
		Done:      record.Done,
		CreatedAt: record.CreatedAt,
	}
}
