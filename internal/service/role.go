package service

import (
	"strings"
	"unicode"

	"library-system/internal/model"
)

// NormalizeRole maps an operator-supplied role token to the storage
// vocabulary. "student" is the UI name for the stored "user" role; unknown
// tokens fall back to "user".
func NormalizeRole(role string) string {
	role = strings.ToLower(strings.TrimSpace(role))
	switch role {
	case "student":
		return model.RoleUser
	case "librarian":
		return model.RoleStaff
	case model.RoleAdmin, model.RoleStaff, model.RoleUser:
		return role
	default:
		return model.RoleUser
	}
}

// DisplayRole maps a stored role to the operator-facing vocabulary. Unknown
// roles display capitalized as-is.
func DisplayRole(dbRole string) string {
	switch r := strings.ToLower(dbRole); r {
	case model.RoleUser:
		return "Student"
	case model.RoleStaff:
		return "Librarian"
	case model.RoleAdmin:
		return "Admin"
	default:
		return capitalize(r)
	}
}

// NormalizeStatus lowercases a status token, defaulting to active when empty.
func NormalizeStatus(status string) string {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return model.StatusActive
	}
	return status
}

// CoerceStatus clamps a status-toggle target to the two stored values:
// anything other than "disabled" means "active".
func CoerceStatus(target string) string {
	if strings.ToLower(strings.TrimSpace(target)) == model.StatusDisabled {
		return model.StatusDisabled
	}
	return model.StatusActive
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
