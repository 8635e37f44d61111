package wizard

import "fmt"

// Role is the closed set of enrollment roles. Every transition that depends on
// the role switches exhaustively on these two values; there is deliberately no
// way to construct a third one through ParseRole.
type Role string

const (
	RoleStudent Role = "student"
	RoleStaff   Role = "staff"
)

func ParseRole(s string) (Role, error) {
	switch s {
	case "", string(RoleStudent):
		return RoleStudent, nil
	case string(RoleStaff):
		return RoleStaff, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}
