// Package auth validates login submissions against the domain policy and
// produces the session identity. No remote service is involved.
package auth

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mzeinebou/edusmart/internal/model"
)

// ValidationError reports malformed login input (bad email, missing name).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}

// AccessDeniedError reports an email outside the accepted domains.
type AccessDeniedError struct {
	Email string
}

func (e *AccessDeniedError) Error() string {
	return "access denied for " + e.Email
}

// Policy holds the domain rules a login must satisfy.
type Policy struct {
	// InstitutionSuffix accepts institutional addresses (e.g. ".isgi.mr").
	InstitutionSuffix string
	// PublicSuffix accepts one public mail provider (e.g. "@gmail.com").
	PublicSuffix string
	// AdminEmail is the single privileged address. It always logs in as a
	// teacher under AdminDisplayName, whatever the form submitted.
	AdminEmail       string
	AdminDisplayName string
}

// DefaultPolicy returns the policy the application ships with.
func DefaultPolicy() Policy {
	return Policy{
		InstitutionSuffix: ".isgi.mr",
		PublicSuffix:      "@gmail.com",
		AdminEmail:        "mzeinebou@gmail.com",
		AdminDisplayName:  "Administrateur Zeinebou",
	}
}

// Input is a login form submission, before normalization.
type Input struct {
	Email     string
	FirstName string
	LastName  string
	Role      model.Role
}

// Login normalizes the input, checks it against the policy and returns the
// resulting identity. It returns *ValidationError for malformed input and
// *AccessDeniedError for emails outside the accepted domains.
func Login(p Policy, in Input) (model.Identity, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)

	if !strings.Contains(email, "@") {
		return model.Identity{}, &ValidationError{Field: "email", Reason: "missing @"}
	}
	if first == "" || last == "" {
		return model.Identity{}, &ValidationError{Field: "name", Reason: "first and last name are required"}
	}

	if email == strings.ToLower(p.AdminEmail) {
		return model.Identity{
			Email:       email,
			Role:        model.RoleTeacher,
			DisplayName: p.AdminDisplayName,
		}, nil
	}

	if !strings.HasSuffix(email, p.InstitutionSuffix) && !strings.HasSuffix(email, p.PublicSuffix) {
		return model.Identity{}, &AccessDeniedError{Email: email}
	}

	role := in.Role
	if !role.Valid() {
		role = model.RoleStudent
	}

	return model.Identity{
		Email:       email,
		Role:        role,
		DisplayName: displayName(first, last),
	}, nil
}

// displayName renders "ahmed vall" as "Ahmed VALL".
func displayName(first, last string) string {
	return capitalize(first) + " " + strings.ToUpper(last)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
