// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

package models

// Role constants define the user roles recognized by the backend.
const (
	// RoleCustomer is the default role assigned on registration.
	RoleCustomer = "CUSTOMER"

	// RoleAdmin grants access to the bus/route/trip management console.
	RoleAdmin = "ADMIN"
)

// ValidRoles contains all valid role names for validation.
var ValidRoles = []string{RoleCustomer, RoleAdmin}

// IsValidRole checks if a role name is valid.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User is the authenticated identity returned by the auth endpoints.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phoneNumber,omitempty"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phoneNumber" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=CUSTOMER ADMIN"`
}

// AuthResponse is returned by both login and register. Some backend
// versions send the user id as "userId", others as "id"; UserID resolves
// whichever is present.
type AuthResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"userId"`
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// ResolveUserID returns the user id regardless of which field the
// backend populated.
func (a *AuthResponse) ResolveUserID() int64 {
	if a.UserID != 0 {
		return a.UserID
	}
	return a.ID
}

// ToUser builds the session identity from an auth response.
func (a *AuthResponse) ToUser() User {
	return User{
		ID:    a.ResolveUserID(),
		Name:  a.Name,
		Email: a.Email,
		Role:  a.Role,
	}
}
