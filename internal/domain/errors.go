package domain

import "errors"

var (
	ErrKeyNotFound      = errors.New("key not found")
	ErrSnapshotNotFound = errors.New("rate snapshot not found")
	ErrSnapshotInvalid  = errors.New("rate snapshot is invalid")
	ErrEmptyRateTable   = errors.New("rate table is empty")
	ErrRateNotFound     = errors.New("rate not found")
)
