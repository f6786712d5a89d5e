package models

import "strings"

type Admin struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Session pairs an opaque token with the admin it was issued for.
type Session struct {
	Token string `json:"token"`
	Admin Admin  `json:"admin"`
}

func (a Admin) Validate() error {
	if strings.TrimSpace(a.Email) == "" {
		return Invalid("email", "is required")
	}
	if !oneOf(a.Role, RoleAdmin, RoleSuperAdmin) {
		return Invalid("role", "unknown role %q", a.Role)
	}
	return nil
}

// Credentials are the login form fields.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	if c.Email == "" || c.Password == "" {
		return &ValidationError{Message: "Email and password are required"}
	}
	return nil
}
