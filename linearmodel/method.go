package linearmodel

import (
	"fmt"
	"strings"
)

// Method selects the algorithm used to solve for the slope and intercept. The zero value is Matrix.
type Method int

const (
	// Matrix solves the normal equations (XᵀX)⁻¹Xᵀy over a design matrix with an intercept column
	Matrix Method = iota
	// Formula uses the closed form summation identities for simple least squares
	Formula
)

var methodNames = map[Method]string{
	Matrix:  "matrix",
	Formula: "formula",
}

// ParseMethod converts a method name into a Method. An empty name returns the default Matrix method.
func ParseMethod(name string) (Method, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Matrix, nil
	}
	for m, n := range methodNames {
		if n == name {
			return m, nil
		}
	}
	return Matrix, fmt.Errorf("%q, %w", name, ErrUnknownMethod)
}

func (m Method) String() string {
	if n, exists := methodNames[m]; exists {
		return n
	}
	return fmt.Sprintf("method(%d)", int(m))
}

// Valid returns an error if the method has no registered solver
func (m Method) Valid() error {
	if _, exists := solvers[m]; !exists {
		return fmt.Errorf("%s, %w", m, ErrUnknownMethod)
	}
	return nil
}

func (m Method) MarshalText() ([]byte, error) {
	if err := m.Valid(); err != nil {
		return nil, err
	}
	return []byte(m.String()), nil
}

func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
