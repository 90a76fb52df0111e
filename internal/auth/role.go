package auth

import "fmt"

// Role is the closed set of account roles. Handlers switch on it
// exhaustively; unknown values are rejected at the boundary.
type Role string

const (
	RoleMember   Role = "member"
	RoleTrainer  Role = "trainer"
	RoleGymOwner Role = "gym_owner"
	RoleMerchant Role = "merchant"
	RoleAdmin    Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleMember, RoleTrainer, RoleGymOwner, RoleMerchant, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// DashboardPath maps each role to its landing route.
func (r Role) DashboardPath() string {
	switch r {
	case RoleMember:
		return "/dashboard/member"
	case RoleTrainer:
		return "/dashboard/trainer"
	case RoleGymOwner:
		return "/dashboard/gym"
	case RoleMerchant:
		return "/dashboard/merchant"
	case RoleAdmin:
		return "/dashboard/admin"
	default:
		return "/"
	}
}
