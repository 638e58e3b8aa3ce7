package domain

import "time"

// Roles a user account can carry.
const (
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

// User represents an account belonging to an institution. A superadmin
// belongs to no institution.
type User struct {
	ID            uint64       `json:"id"`
	Name          string       `json:"name"`
	Email         string       `gorm:"index" json:"email"`
	Password      string       `json:"-"` // bcrypt hash
	Role          string       `gorm:"default:admin" json:"role"`
	InstitutionID *uint64      `json:"institutionId"`
	Institution   *Institution `json:"institution,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

// SafeUser is the sanitized user shape returned by the API
type SafeUser struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AdminUserView is the shape returned to superadmins on /admin/users
type AdminUserView struct {
	ID          uint64              `json:"id"`
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	Role        string              `json:"role"`
	Institution *InstitutionSummary `json:"institution"`
}

// ToSafeUser converts a User to a SafeUser
func (u *User) ToSafeUser() SafeUser {
	return SafeUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

func (u *User) ToAdminView() AdminUserView {
	view := AdminUserView{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
	if u.Institution != nil {
		s := u.Institution.ToSummary()
		view.Institution = &s
	}
	return view
}
