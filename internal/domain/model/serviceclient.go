package model

// ServiceClient is a machine credential allowed to call the backend API.
type ServiceClient struct {
	ID         int64   `json:"id"`
	ClientID   string  `json:"client_id"`
	Roles      string  `json:"roles"`
	Active     bool    `json:"activo"`
	AllowedIPs *string `json:"allowed_ips,omitempty"`
	LastUsedAt *string `json:"last_used_at,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// ServiceClientQuery filters the service client listing.
type ServiceClientQuery struct {
	Search     string
	OnlyActive bool
}

// ServiceClientCreate is the body of a service client creation call. When
// Token is set the backend uses it verbatim instead of generating one.
type ServiceClientCreate struct {
	ClientID   string  `json:"client_id" validate:"required,max=120"`
	Roles      string  `json:"roles,omitempty" validate:"omitempty,max=255"`
	Active     *bool   `json:"activo,omitempty"`
	AllowedIPs *string `json:"allowed_ips,omitempty"`
	Token      *string `json:"token,omitempty" validate:"omitempty,min=16"`
}

// ServiceClientUpdate is the body of a service client update call.
type ServiceClientUpdate struct {
	Roles      *string `json:"roles,omitempty" validate:"omitempty,max=255"`
	Active     *bool   `json:"activo,omitempty"`
	AllowedIPs *string `json:"allowed_ips,omitempty"`
}

// ServiceClientCreated is returned by create and rotate. Token is the only
// time the plaintext secret is visible.
type ServiceClientCreated struct {
	ServiceClient ServiceClient `json:"service_client"`
	Token         string        `json:"token"`
}
