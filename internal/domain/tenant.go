package domain

import "time"

// Tenant is one customer organization, the unit of data isolation. Every
// tenant-scoped row carries its ID.
type Tenant struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
