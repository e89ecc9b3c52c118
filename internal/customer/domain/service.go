package domain

import (
	"context"
	"errors"
)

type CreateCustomerRequest struct {
	Name     string
	Email    string
	ImageURL string
}

type GetCustomerRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateCustomerRequest) (Customer, error)
	// List returns every customer ordered by name, for the invoice
	// form's counterparty select.
	List(context.Context) ([]Customer, error)
	GetByID(context.Context, GetCustomerRequest) (Customer, error)
}

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrInvalidID    = errors.New("invalid_id")
	ErrEmailTaken   = errors.New("email_taken")
	ErrNotFound     = errors.New("not_found")
)
