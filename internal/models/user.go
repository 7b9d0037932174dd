// internal/models/user.go
package models

// User is the identity returned by /auth/me and /users.
type User struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Role              Role      `json:"role"`
	SuccessfulRepairs int       `json:"successful_repairs"`
	FailedRepairs     int       `json:"failed_repairs"`
	CreatedAt         Timestamp `json:"created_at"`
}

// Credentials is the body of POST /auth/login.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration is the body of POST /auth/register.
type Registration struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"role" validate:"required,oneof=health_staff technician manager quality"`
}

// LoginResponse is what POST /auth/login returns.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// SuccessRate is successful / (successful + failed) as a percentage, 0 when
// the technician has no finished repairs.
func (u User) SuccessRate() float64 {
	total := u.SuccessfulRepairs + u.FailedRepairs
	if total == 0 {
		return 0
	}
	return float64(u.SuccessfulRepairs) / float64(total) * 100
}
