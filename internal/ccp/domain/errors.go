package domain

import "errors"

// Exported error variables allow callers to use errors.Is() for error checking.
var (
	ErrProfileNotFound = errors.New("profile does not exist")
	ErrProfileExists   = errors.New("profile already exists")
	ErrBackupNotFound  = errors.New("backup does not exist")
	ErrTypeMismatch    = errors.New("path traverses a non-object value")
	ErrKeyPathEmpty    = errors.New("key path cannot be empty")

	ErrProfileNameEmpty        = errors.New("profile name cannot be empty")
	ErrProfileNameDot          = errors.New("profile name cannot be '.' or '..'")
	ErrProfileNameNonPrintable = errors.New("profile name contains non-printable characters")
	ErrProfileNameInvalidChars = errors.New("profile name contains invalid characters (<>:\"/|?*)")
	ErrProfileNameReserved     = errors.New("profile name is a reserved system filename")
	ErrProfileNameNullByte     = errors.New("profile name contains null byte")
)
