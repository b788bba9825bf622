package domain

import (
	"errors"
	"fmt"
)

// ErrExhausted is returned when no free candidate was found
var ErrExhausted = errors.New("no free candidate")

// Disambiguate returns the first free name among candidate, candidate-1,
// candidate-2, ... trying at most maxAttempts suffixes.
func Disambiguate(candidate string, maxAttempts int, isFree func(string) (bool, error)) (string, error) {
	for i := 0; i <= maxAttempts; i++ {
		name := candidate
		if i > 0 {
			name = fmt.Sprintf("%s-%d", candidate, i)
		}
		free, err := isFree(name)
		if err != nil {
			return "", err
		}
		if free {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w for %s after %d attempts", ErrExhausted, candidate, maxAttempts)
}
