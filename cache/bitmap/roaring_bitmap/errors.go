package roaring_bitmap

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord is returned when serialized data cannot be decoded into a set.
var ErrMalformedRecord = errors.New("roaring_bitmap: malformed record")

// MalformedRecordError describes where decoding failed.
//
// It matches ErrMalformedRecord with errors.Is.
type MalformedRecordError struct {
	Offset int // word offset of the offending container record
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("roaring_bitmap: malformed record at word %d: %s", e.Offset, e.Reason)
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

func malformed(offset int, format string, args ...any) error {
	return &MalformedRecordError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}
