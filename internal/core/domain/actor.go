package domain

// ActorRole is the role an authenticated caller holds within a tenant.
type ActorRole string

const (
	RoleAdmin      ActorRole = "ADMIN"
	RoleAccountant ActorRole = "ACCOUNTANT"
	RoleReadOnly   ActorRole = "READONLY"
	// RoleSystem is used by background jobs such as the reconciliation scheduler.
	RoleSystem ActorRole = "SYSTEM"
)

// IsValid reports whether r is one of the known roles.
func (r ActorRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleAccountant, RoleReadOnly, RoleSystem:
		return true
	}
	return false
}

// CanWrite reports whether the role may mutate ledger data. Unknown and empty roles cannot.
func (r ActorRole) CanWrite() bool {
	switch r {
	case RoleAdmin, RoleAccountant, RoleSystem:
		return true
	}
	return false
}

// Actor identifies who performs a ledger operation.
type Actor struct {
	UserID string    `json:"userID"`
	Role   ActorRole `json:"role"`
}

// IsPrivileged reports whether the actor may reopen or lock fiscal periods.
func (a Actor) IsPrivileged() bool {
	return a.Role == RoleAdmin || a.Role == RoleSystem
}

// CanWrite reports whether the actor may mutate ledger data.
func (a Actor) CanWrite() bool {
	return a.UserID != "" && a.Role.CanWrite()
}

// SystemActor is the actor used for scheduled work.
func SystemActor() Actor {
	return Actor{UserID: "system", Role: RoleSystem}
}
