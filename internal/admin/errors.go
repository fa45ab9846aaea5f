package admin

import (
	"errors"
)

var (
	// ErrAlreadyRegistered is returned when an entity type is registered twice.
	ErrAlreadyRegistered = errors.New("entity type is already registered")

	// ErrNotRegistered is returned when looking up an entity type that was never registered.
	ErrNotRegistered = errors.New("entity type is not registered")

	// ErrUnknownField is returned when a descriptor references a field the
	// entity type does not declare. Registration fails at startup in this case.
	ErrUnknownField = errors.New("descriptor references unknown field")

	// ErrNilModel is returned when registering a nil model.
	ErrNilModel = errors.New("model cannot be nil")
)
