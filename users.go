package shopkeeper

import "time"

const RoleAdmin = "admin"

// User is an account on the backend's users collection. Only admins may use
// the back office.
type User struct {
	ID           UserID    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	MobileNumber string    `json:"mobile_number"`
	Role         string    `json:"role"`
	Labels       []string  `json:"labels"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsAdmin reports whether the account may pass the session gate.
func (user *User) IsAdmin() bool {
	if user.Role == RoleAdmin {
		return true
	}
	for _, label := range user.Labels {
		if label == RoleAdmin {
			return true
		}
	}
	return false
}
