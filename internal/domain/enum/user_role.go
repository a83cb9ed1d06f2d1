package enum

// UserRole is the coarse role of a shop user.
type UserRole string

const (
	UserRoleMaster   UserRole = "master"
	UserRoleStaff    UserRole = "staff"
	UserRoleRetailer UserRole = "retailer"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleMaster, UserRoleStaff, UserRoleRetailer:
		return true
	}
	return false
}
