package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrForbidden indicates the caller lacks ownership or role for the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput indicates a malformed or incomplete request payload.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyCart indicates a checkout was attempted against an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInsufficientStock indicates a stock decrement would drive stock below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrAlreadyVoided indicates a mutation was attempted on a voided invoice.
	ErrAlreadyVoided = errors.New("invoice already voided")
)
