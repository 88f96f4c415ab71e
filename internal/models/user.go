package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// CanManageProducts reports whether the role may create, edit or delete
// catalog entries.
func (r Role) CanManageProducts() bool {
	return r == RoleSeller || r == RoleAdmin
}

// IsShopper reports whether the role has a cart and wishlist.
func (r Role) IsShopper() bool {
	return r == RoleUser
}

// User is the profile record the backend keeps for an account. Field names
// mirror the wire format.
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Role         Role      `json:"role,omitempty"`
	ProfilePhoto string    `json:"profilePhoto,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitzero"`
}

// Session is the identity derived from the bearer token. It is transient
// view state; only the token itself survives restarts.
type Session struct {
	UserID string
	Role   Role
	Token  string
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Claims is the subset of the token payload the client decodes locally.
// The token is never verified client-side; the server is the authority for
// every mutating request.
type Claims struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// FileUpload is a form file attachment (profile photo, product image).
type FileUpload struct {
	Name    string
	Content []byte
}

// SignupForm is submitted as multipart form data.
type SignupForm struct {
	Name         string `validate:"required"`
	Email        string `validate:"required,email"`
	Password     string `validate:"required,min=6"`
	Role         Role   `validate:"required,oneof=user seller admin"`
	ProfilePhoto *FileUpload
}

// ProfileUpdateForm is submitted as multipart form data. The photo is
// optional; a nil upload keeps the current one.
type ProfileUpdateForm struct {
	Name         string `validate:"required"`
	ProfilePhoto *FileUpload
}
