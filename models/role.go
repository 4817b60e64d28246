package models

// Role identifies what kind of account a user holds. A user has exactly one
// role for the lifetime of the account.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleOwner    Role = "OWNER"
	RoleAdmin    Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleOwner, RoleAdmin:
		return true
	}
	return false
}

// Capability is a named permission granted to a role. Authorization checks
// resolve a role to its capability set once, instead of comparing role
// strings at every call site.
type Capability string

const (
	CapBookMachines     Capability = "book_machines"
	CapWriteReviews     Capability = "write_reviews"
	CapManageMachines   Capability = "manage_machines"
	CapFileRecords      Capability = "file_records"
	CapManageCategories Capability = "manage_categories"
	CapVerifyOwners     Capability = "verify_owners"
	CapReviewRecords    Capability = "review_records"
	CapManageUsers      Capability = "manage_users"
)

var roleCapabilities = map[Role][]Capability{
	RoleCustomer: {CapBookMachines, CapWriteReviews},
	RoleOwner:    {CapManageMachines, CapFileRecords},
	RoleAdmin:    {CapManageCategories, CapVerifyOwners, CapReviewRecords, CapManageUsers},
}

// Capabilities returns the capability set granted to a role. Unknown roles
// get an empty set.
func Capabilities(role Role) map[Capability]bool {
	caps := make(map[Capability]bool, len(roleCapabilities[role]))
	for _, c := range roleCapabilities[role] {
		caps[c] = true
	}
	return caps
}
