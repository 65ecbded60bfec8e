package entity

import (
	"github.com/google/uuid"
)

type RDGroupRole string

const (
	RDGroupRoleLead    RDGroupRole = "LEAD"
	RDGroupRoleSupport RDGroupRole = "SUPPORT"
)

type RDGroup struct {
	Id       uuid.UUID
	Name     string
	Category string
}

type RequestRDGroup struct {
	Id        uuid.UUID
	RequestId uuid.UUID
	RDGroupId uuid.UUID
	Role      RDGroupRole
}

// RDGroupLoad counts active requests linked to a group.
type RDGroupLoad struct {
	RDGroupId      uuid.UUID
	Name           string
	Category       string
	ActiveRequests int64
}
