package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister = "account created successfully"
	MessageSuccessLogin    = "login successful"
	MessageSuccessGetUser  = "user retrieved successfully"

	MessageFailedRegister = "failed to create account"
	MessageFailedLogin    = "invalid email or password"
	MessageFailedGetUser  = "failed to retrieve user"

	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrCredentialsInvalid = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type (
	RegisterRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		Role     string `json:"role" validate:"omitempty,oneof=user business admin"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	User struct {
		ID        uint      `json:"id"`
		Email     string    `json:"email"`
		Role      string    `json:"role"`
		CreatedAt time.Time `json:"created_at"`
	}

	AuthResponse struct {
		Token string `json:"token"`
		User  *User  `json:"user"`
	}
)
