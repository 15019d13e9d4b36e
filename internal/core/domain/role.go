package domain

// Role is the privilege level of an account. The wire values are the
// Polish role names used across the E-garderoba system.
type Role string

const (
	RoleDancer  Role = "tancerz"
	RoleManager Role = "kierownik"
	RoleAdmin   Role = "administrator"
)

// rolePriority is the total order over roles. Built once at init, never
// mutated afterwards. Dancer < Manager < Admin.
var rolePriority = map[Role]int{
	RoleDancer:  1,
	RoleManager: 2,
	RoleAdmin:   3,
}

// Priority returns the numeric rank of a role. Unknown or empty roles map
// to 0, below every declared role, so a garbled role value degrades to
// "no privilege" instead of failing.
func Priority(r Role) int {
	return rolePriority[r]
}

// AtLeast reports whether role a is at least as privileged as role b.
func AtLeast(a, b Role) bool {
	return Priority(a) >= Priority(b)
}

// ValidRole reports whether r is one of the declared roles.
func ValidRole(r Role) bool {
	_, ok := rolePriority[r]
	return ok
}
