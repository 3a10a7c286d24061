package models

const (
	RoleAgent    = "agent"
	RoleCustomer = "customer"
)

type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash,omitempty"`
	Role         string `json:"role"` // agent | customer
}

// Public strips the credential hash for anything that leaves the process.
func (u User) Public() map[string]any {
	return map[string]any{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}
}
