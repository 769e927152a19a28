package models

import "time"

const (
	RoleManager               = "manager"
	RoleEmployee              = "employee"
	RoleIndividualContributor = "individual contributor"
	RoleHR                    = "hr"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleManager, RoleEmployee, RoleIndividualContributor, RoleHR:
		return true
	default:
		return false
	}
}

type Profile struct {
	ID         string
	Email      string
	Password   string
	FullName   *string
	Role       string
	Department *string
	HireDate   *time.Time
	ManagerID  *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (p *Profile) IsManager() bool {
	return p.Role == RoleManager
}

// DisplayName falls back to the email when the full name is unset.
func (p *Profile) DisplayName() string {
	if p.FullName != nil && *p.FullName != "" {
		return *p.FullName
	}
	return p.Email
}
