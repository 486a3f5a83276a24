// Package identity manages tenants, their users and login.
package identity

import "time"

// Branding is the tenant's visual configuration.
type Branding struct {
	PrimaryColor string `json:"primaryColor"`
	AccentColor  string `json:"accentColor"`
	SurfaceColor string `json:"surfaceColor"`
	DarkMode     bool   `json:"darkMode"`
}

// Settings holds tenant-level configuration stored as JSON.
type Settings struct {
	Branding        Branding  `json:"branding"`
	SupportEmail    string    `json:"supportEmail"`
	MaintenanceMode bool      `json:"maintenanceMode"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Tenant is one isolated customer organisation.
type Tenant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Locale    string    `json:"locale"`
	Timezone  string    `json:"timezone"`
	Currency  string    `json:"currency"`
	Settings  Settings  `json:"settings"`
	CreatedAt time.Time `json:"createdAt"`
}

// User is an authenticatable account inside a tenant.
type User struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenantId"`
	Email        string    `json:"email"`
	GivenName    string    `json:"givenName"`
	FamilyName   string    `json:"familyName"`
	Roles        []string  `json:"roles"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}
