package models

// StaffUser is the signed-in front desk or admin user
type StaffUser struct {
	UserID   string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Location string `json:"location,omitempty"`
}

// IsAdmin reports whether the user may add clients outside the wizard
func (u *StaffUser) IsAdmin() bool {
	return u != nil && (u.Role == "admin" || u.Role == "owner")
}
