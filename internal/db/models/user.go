// Package models - user.go defines the User model for tenant-scoped accounts. The
// only users this service creates are the per-tenant default super admins; the
// hashed password never leaves the service, so any User handed to a caller must
// go through Sanitized first.
package models

import "time"

// UserPermission grants read/write access to one application route
type UserPermission struct {
	Route    string `json:"route"`
	Readable bool   `json:"readable"`
	Writable bool   `json:"writable"`
}

// UserPagePreference controls visibility of one application page
type UserPagePreference struct {
	Route   string `json:"route"`
	Visible bool   `json:"visible"`
}

// User represents a user account belonging to a tenant
type User struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	Username        string                 `json:"username"`
	Email           string                 `json:"email"`
	Password        string                 `json:"-"`
	Role            string                 `json:"role"`
	TenantID        string                 `json:"tenant"`
	IsDefault       bool                   `json:"isDefault"`
	IsEmailVerified bool                   `json:"isEmailVerified"`
	TermsAccepted   bool                   `json:"termsAndConditionsAccepted"`
	Activated       bool                   `json:"activated"`
	Permissions     []UserPermission       `json:"permissions"`
	PagePreferences []UserPagePreference   `json:"pagePreferences"`
	Meta            map[string]interface{} `json:"meta,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

// Sanitized returns a copy of the user with the password hash cleared.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Password = ""
	return &c
}
