package core

import "fmt"

// Error codes for the operation-boundary error taxonomy. Every one of these
// is recovered locally and surfaced to callers as a declined operation, never
// as a fault that escapes to the UI layer.
const (
	ErrCodeMalformedPath   = "MALFORMED_PATH"
	ErrCodeBlockedProperty = "BLOCKED_PROPERTY"
	ErrCodeUnsafeContent   = "UNSAFE_CONTENT"
	ErrCodeStorageQuota    = "STORAGE_QUOTA"
)

// MalformedPathError reports bad path syntax. The operation is aborted with
// no mutation.
type MalformedPathError struct {
	Raw    string
	Reason string
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("malformed path %q: %s", e.Raw, e.Reason)
}

func (e *MalformedPathError) Code() string { return ErrCodeMalformedPath }

func NewMalformedPathError(raw, reason string) *MalformedPathError {
	return &MalformedPathError{Raw: raw, Reason: reason}
}

// BlockedPropertyError reports a guard rejection of a path segment. The whole
// operation is aborted and the rejection is security-logged.
type BlockedPropertyError struct {
	Key  string
	Path string
}

func (e *BlockedPropertyError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("blocked property %q in path %q", e.Key, e.Path)
	}
	return fmt.Sprintf("blocked property %q", e.Key)
}

func (e *BlockedPropertyError) Code() string { return ErrCodeBlockedProperty }

func NewBlockedPropertyError(key, path string) *BlockedPropertyError {
	return &BlockedPropertyError{Key: key, Path: path}
}

// UnsafeContentError reports a sanitizer rejection. The value is discarded
// and the field marked invalid.
type UnsafeContentError struct {
	Field   string
	Pattern string
}

func (e *UnsafeContentError) Error() string {
	return fmt.Sprintf("unsafe content in %q (matched %s)", e.Field, e.Pattern)
}

func (e *UnsafeContentError) Code() string { return ErrCodeUnsafeContent }

func NewUnsafeContentError(field, pattern string) *UnsafeContentError {
	return &UnsafeContentError{Field: field, Pattern: pattern}
}

// StorageQuotaError reports a serialized tree exceeding the configured
// ceiling. Persist is skipped on the save path; loads are rejected outright.
type StorageQuotaError struct {
	Key   string
	Size  int
	Limit int
}

func (e *StorageQuotaError) Error() string {
	return fmt.Sprintf("serialized tree for %q is %d bytes, limit %d", e.Key, e.Size, e.Limit)
}

func (e *StorageQuotaError) Code() string { return ErrCodeStorageQuota }

func NewStorageQuotaError(key string, size, limit int) *StorageQuotaError {
	return &StorageQuotaError{Key: key, Size: size, Limit: limit}
}
