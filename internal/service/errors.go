package service

import "errors"

// Error kinds the HTTP layer maps onto status codes. Services return
// these (or wrap them) instead of generic failures.
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInsufficientBalance = errors.New("insufficient neocoins")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAlreadyMember       = errors.New("user already has an active hive membership")
	ErrHiveFull            = errors.New("hive is full")
)
