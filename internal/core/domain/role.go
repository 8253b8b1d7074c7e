package domain

// Role is a named grant that can be assigned to users. Roles are created by
// the seed step only; the service contract never mutates or deletes them.
type Role struct {
	ID       string `json:"id"`
	RoleName string `json:"roleName"`
}
