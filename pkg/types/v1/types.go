package v1

import (
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ID identifies a record on the backend.
type ID int64

func (id ID) String() string { return strconv.FormatInt(int64(id), 10) }

// ParseID parses the decimal form produced by ID.String.
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return ID(n), nil
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator used for records and configuration.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Record is implemented by every entity the backend returns.
type Record interface {
	Identifier() ID
	Validate() error
}

// ValidateAll validates each record, stopping at the first failure.
func ValidateAll[T Record](records []T) error {
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Find returns the record with id.
func Find[T Record](items []T, id ID) (T, bool) {
	for _, item := range items {
		if item.Identifier() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}
