package repo_errors

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrInvalidReference = errors.New("referenced record does not exist")
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// Translate maps postgres constraint violations onto the package errors and
// passes everything else through.
func Translate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return ErrAlreadyExists
		case foreignKeyViolation:
			return ErrInvalidReference
		}
	}

	return err
}
