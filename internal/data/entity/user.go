package entity

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleStaff    UserRole = "staff"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	Base
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	Phone        string   `db:"phone"`
	PasswordHash string   `db:"password_hash"`
	Role         UserRole `db:"role"`
	Suspended    bool     `db:"suspended"`
}
