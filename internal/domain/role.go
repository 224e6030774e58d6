package domain

// RoleCode enumerates seeded access levels. Read-only at runtime.
type RoleCode string

const (
	RoleCompanyAdmin RoleCode = "company_admin"
	RoleAgent        RoleCode = "agent"
)

// Valid reports whether the code is one of the seeded roles.
func (c RoleCode) Valid() bool {
	return c == RoleCompanyAdmin || c == RoleAgent
}

// Role is a row in the seeded role lookup table.
type Role struct {
	ID   int64
	Code RoleCode
}
