package shelter

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrPersistence  = errors.New("persistence failure")

	// ErrDogNotAvailable es el rechazo de StartTrial sobre un perro que no está Available.
	// Es una condición recuperable que la capa de presentación muestra al usuario.
	ErrDogNotAvailable = fmt.Errorf("%w: dog is not available for trial", ErrInvalidState)
)
