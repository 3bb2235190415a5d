package roles

import "strings"

// Role constants for the ranked scale used by access checks.
const (
	Basic = "basic"
	Admin = "admin"
)

// Default role assigned at registration when none is supplied.
const Default = "student"

// MaxNameLen bounds the length of a trimmed role name at registration.
const MaxNameLen = 32

// roleScale defines the hierarchy levels (higher number = more privileges).
// Role names outside the scale (e.g. "student") rank at the floor of the
// scale: any authenticated identity counts as at least basic, and only roles
// on the scale can clear a higher bar.
var roleScale = map[string]int{
	Basic: 0,
	Admin: 1,
}

// Rank returns the hierarchy level for a role. Roles not on the scale rank
// as 0, the same level as basic.
func Rank(role string) int {
	if level, ok := roleScale[role]; ok {
		return level
	}
	return 0
}

// Satisfies reports whether actual has at least the privileges of required.
// An empty required role means no restriction and always passes.
func Satisfies(actual, required string) bool {
	if required == "" {
		return true
	}
	return Rank(actual) >= Rank(required)
}

// Normalize applies the registration rules to a requested role name and
// returns the value to store. Missing or blank input falls back to Default.
// The reserved "admin" role and over-long names are rejected; both checks run
// against the trimmed value.
func Normalize(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Default, nil
	}
	if trimmed == Admin {
		return "", ErrReserved
	}
	if len(trimmed) > MaxNameLen {
		return "", ErrTooLong
	}
	return trimmed, nil
}
