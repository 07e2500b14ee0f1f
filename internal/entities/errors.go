// Package entities contains core business entities and errors.
package entities

import "errors"

var (
	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrTxConflict signals a concurrent-modification conflict (serialization
	// failure or deadlock); the whole operation may be retried.
	ErrTxConflict = errors.New("transaction conflict")
	// ErrBatchWrite signals a failed batch insert; rows committed before the
	// failing batch stay committed.
	ErrBatchWrite = errors.New("batch write failed")
	// ErrConnection signals the store is unreachable or the connection
	// dropped; fatal for the current invocation.
	ErrConnection = errors.New("storage connection failed")
)
