package models

// Roles a user can hold. The role is embedded in issued tokens but no
// endpoint currently grants admin any extra visibility.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a row in the users table.
type User struct {
	ID             int64  `db:"id" json:"id"`
	FirstName      string `db:"first_name" json:"first_name"`
	LastName       string `db:"last_name" json:"last_name"`
	Email          string `db:"email" json:"email"`
	Username       string `db:"username" json:"username"`
	IsActive       bool   `db:"is_active" json:"is_active"`
	Role           string `db:"role" json:"role"`
	HashedPassword string `db:"hashed_password" json:"-"`
}

// Identity is the decoded assertion carried by a verified token.
type Identity struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// RegisterRequest defines the structure for a user registration request.
type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required" validate:"required"`
	LastName  string `json:"last_name" binding:"required" validate:"required"`
	Email     string `json:"email" binding:"required,email" validate:"required,email"`
	Username  string `json:"username" binding:"required,min=3,max=20" validate:"required,min=3,max=20"`
	Password  string `json:"password" binding:"required,min=6,max=50" validate:"required,min=6,max=50"`
	Role      string `json:"role" binding:"omitempty,oneof=user admin" validate:"omitempty,oneof=user admin"`
}

// LoginRequest defines the structure for a user login request.
type LoginRequest struct {
	Username string `json:"username" binding:"required" validate:"required"`
	Password string `json:"password" binding:"required" validate:"required"`
}

// LoginResponse defines the structure for a successful login response.
type LoginResponse struct {
	Token string `json:"token"`
}

// ChangePasswordRequest carries the current and replacement passwords.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required" validate:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6,max=50" validate:"required,min=6,max=50"`
}
