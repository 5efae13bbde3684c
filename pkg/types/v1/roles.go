package v1

import "sort"

type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleManager      Role = "MANAGER"
	RoleMechanic     Role = "MECHANIC"
	RoleReceptionist Role = "RECEPTIONIST"
	RoleClient       Role = "CLIENT"
)

// Roles lists the known roles from highest to lowest priority.
var Roles = []Role{RoleAdmin, RoleManager, RoleMechanic, RoleReceptionist, RoleClient}

func rolePriority(r Role) int {
	for i, x := range Roles {
		if x == r {
			return i
		}
	}
	return len(Roles)
}

// SortRoles returns the distinct roles ordered by priority. Unknown roles sort
// after known ones, lexically. The input is not modified.
func SortRoles(roles []Role) []Role {
	seen := make(map[Role]bool, len(roles))
	out := make([]Role, 0, len(roles))
	for _, r := range roles {
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := rolePriority(out[i]), rolePriority(out[j])
		if pi != pj {
			return pi < pj
		}
		return out[i] < out[j]
	})
	return out
}

// NextRole cycles through Roles, wrapping after the last one.
func NextRole(r Role) Role {
	i := rolePriority(r)
	if i >= len(Roles)-1 {
		return Roles[0]
	}
	return Roles[i+1]
}

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool { return rolePriority(r) < len(Roles) }
