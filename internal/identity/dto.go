package identity

type CreateTenantRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	Slug         string `json:"slug" validate:"required,max=60,lowercase"`
	Locale       string `json:"locale,omitempty"`
	Timezone     string `json:"timezone,omitempty"`
	Currency     string `json:"currency,omitempty" validate:"omitempty,len=3"`
	SupportEmail string `json:"supportEmail,omitempty" validate:"omitempty,email"`
	PrimaryColor string `json:"primaryColor,omitempty" validate:"omitempty,hexcolor"`
	AccentColor  string `json:"accentColor,omitempty" validate:"omitempty,hexcolor"`
}

type CreateUserRequest struct {
	Email      string   `json:"email" validate:"required,email"`
	GivenName  string   `json:"givenName" validate:"required,max=100"`
	FamilyName string   `json:"familyName" validate:"required,max=100"`
	Password   string   `json:"password" validate:"required,min=10"`
	Roles      []string `json:"roles" validate:"required,min=1"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Tenant   string `json:"tenant" validate:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresIn int64  `json:"expiresIn"`
}
