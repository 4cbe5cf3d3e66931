// SPDX-License-Identifier: MIT

package config

import "errors"

var (
	// ErrUnknownKey indicates a key that is not a solver parameter.
	ErrUnknownKey = errors.New("config: unknown key")

	// ErrMalformed indicates a line or document that cannot be parsed.
	ErrMalformed = errors.New("config: malformed parameter file")

	// ErrInvalid indicates a value rejected by validation.
	ErrInvalid = errors.New("config: invalid value")
)
