package domain

// Decision is the outcome of an authorization check. Denial reasons are
// for logs and metrics only; the API surfaces a single ErrNoPermission
// regardless of which rule failed.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Reason: reason}
}

// UserChanges is a partial set of requested field changes against a user.
// Nil means "not present in the request"; a present field equal to the
// stored value does not count as a change.
type UserChanges struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Role      *Role
}

// CanCreateUser: only admins may create accounts.
func CanCreateUser(actor Principal) Decision {
	if actor.Role != RoleAdmin {
		return deny("create requires admin role")
	}
	return allow()
}

// CanListUsers: managers and above may list accounts.
func CanListUsers(actor Principal) Decision {
	if !AtLeast(actor.Role, RoleManager) {
		return deny("list requires manager role or higher")
	}
	return allow()
}

// CanUpdateUser decides whether actor may apply changes to target.
//
// Admins may change anything on anyone. Everyone else may only touch
// their own account, and then only email and phone: a changed first
// name, last name or role on a self-edit is denied. A field present in
// the request but equal to the current stored value is not a change.
func CanUpdateUser(actor Principal, target *User, changes UserChanges) Decision {
	if actor.Role == RoleAdmin {
		return allow()
	}
	if actor.ID != target.ID {
		return deny("cross-user update requires admin role")
	}
	if changes.FirstName != nil && *changes.FirstName != target.FirstName {
		return deny("first name is not self-editable")
	}
	if changes.LastName != nil && *changes.LastName != target.LastName {
		return deny("last name is not self-editable")
	}
	if changes.Role != nil && *changes.Role != target.Role {
		return deny("role is not self-editable")
	}
	return allow()
}

// CanDeleteUser decides whether actor may delete the account with
// targetID. Needs no stored record: the ownership/admin test is on ids
// alone, and runs before any existence check.
func CanDeleteUser(actor Principal, targetID int64) Decision {
	if actor.ID == targetID || actor.Role == RoleAdmin {
		return allow()
	}
	return deny("delete requires ownership or admin role")
}
