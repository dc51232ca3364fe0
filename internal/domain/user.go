package domain

import (
	"fmt"
	"strings"
	"time"
)

// UserRole enumerates staff seniority levels.
type UserRole string

const (
	UserRoleManager  UserRole = "Manager"
	UserRoleSenior   UserRole = "Senior"
	UserRoleJunior   UserRole = "Junior"
	UserRoleTeamLead UserRole = "Team Lead"
	UserRoleIntern   UserRole = "Intern"
)

// UserRoles lists every valid role.
func UserRoles() []UserRole {
	return []UserRole{UserRoleManager, UserRoleSenior, UserRoleJunior, UserRoleTeamLead, UserRoleIntern}
}

// ParseUserRole matches raw input against the known roles, ignoring case.
func ParseUserRole(raw string) (UserRole, error) {
	raw = strings.TrimSpace(raw)
	for _, r := range UserRoles() {
		if strings.EqualFold(raw, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", raw)
}

// User is a recruiter or staff member who manages interviews.
type User struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Department   Department
	Role         UserRole
	Phone        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
