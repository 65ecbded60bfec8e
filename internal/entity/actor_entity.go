package entity

import "strings"

type Role string

const (
	RoleSales  Role = "SALES"
	RoleRD     Role = "RD"
	RoleExec   Role = "EXEC"
	RoleAdmin  Role = "ADMIN"
	RoleViewer Role = "VIEWER"
)

// Actor is the authenticated identity a mutation is attributed to.
type Actor struct {
	UserId       string
	Name         string
	Role         Role
	Organization string
}

func NormalizeRole(raw string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(raw)))
}

// HasRole matches case-insensitively.
func (a Actor) HasRole(roles ...Role) bool {
	own := NormalizeRole(string(a.Role))
	for _, r := range roles {
		if own == NormalizeRole(string(r)) {
			return true
		}
	}
	return false
}

// UserIdPtr returns nil for an anonymous actor.
func (a Actor) UserIdPtr() *string {
	if a.UserId == "" {
		return nil
	}
	id := a.UserId
	return &id
}

func (a Actor) NamePtr() *string {
	if a.Name == "" {
		return nil
	}
	n := a.Name
	return &n
}
