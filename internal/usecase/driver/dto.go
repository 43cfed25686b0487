package driver

import (
	"time"

	domainUser "logitrack/internal/domain/user"

	"github.com/google/uuid"
)

type CreateDriverRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// DriverResponse never carries the password hash; the hash has no JSON
// representation anywhere in the API.
type DriverResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func ToDriverResponse(u *domainUser.User) *DriverResponse {
	if u == nil {
		return nil
	}
	return &DriverResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
	}
}
