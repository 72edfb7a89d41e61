package storage

import "errors"

var (
	ErrNotFound      = errors.New("object not found")
	ErrFolderEmpty   = errors.New("folder name is empty")
	ErrUnknownDriver = errors.New("unknown storage driver")
	ErrLockNotHeld   = errors.New("lock is held by another owner")
)

var (
	ErrFileTooLarge    = errors.New("file size exceeds limit")
	ErrInvalidFileType = errors.New("invalid file type")
)
