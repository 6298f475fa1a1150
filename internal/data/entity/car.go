package entity

type CarStatus string

const (
	CarStatusActive      CarStatus = "active"
	CarStatusPublished   CarStatus = "published"
	CarStatusBooked      CarStatus = "booked"
	CarStatusMaintenance CarStatus = "maintenance"
)

// Car prices are in paise.
type Car struct {
	Base
	Make         string    `db:"make"`
	Model        string    `db:"model"`
	Year         int       `db:"year"`
	Seats        int       `db:"seats"`
	Fuel         string    `db:"fuel"`
	Transmission string    `db:"transmission"`
	PricePerDay  int64     `db:"price_per_day"`
	PricePerHour int64     `db:"price_per_hour"`
	Status       CarStatus `db:"status"`
	ImageURLs    []string  `db:"image_urls"`
}

// Bookable reports whether customers may place new bookings on the car.
func (c *Car) Bookable() bool {
	return c.Status == CarStatusActive || c.Status == CarStatusPublished
}
