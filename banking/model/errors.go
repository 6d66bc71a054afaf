package model

import "errors"

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountClosed     = errors.New("account closed")
	ErrAlreadyOpen       = errors.New("account already open")
	ErrAlreadyClosed     = errors.New("account already closed")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSelfTransfer      = errors.New("transfer source and destination are the same account")
	ErrInvalidAmount     = errors.New("amount must not be negative")
	ErrBalanceOverflow   = errors.New("balance would overflow")
	ErrUnknownOpcode     = errors.New("unknown opcode")
)
