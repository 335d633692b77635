package core

import (
	"errors"

	"github.com/google/uuid"
)

const maxUsernameLength = 150

// Borrower is a library member that can take copies on loan.
type Borrower struct {
	BorrowerID  BorrowerIDString
	Username    string
	DisplayName string
}

// BuildBorrower validates and creates a Borrower. The display name falls back to the username.
func BuildBorrower(borrowerID uuid.UUID, username string, displayName string) (Borrower, error) {
	if err := errors.Join(
		checkRequired("username", username),
		checkMaxLength("username", username, maxUsernameLength),
	); err != nil {
		return Borrower{}, err
	}

	if displayName == "" {
		displayName = username
	}

	return Borrower{
		BorrowerID:  borrowerID.String(),
		Username:    username,
		DisplayName: displayName,
	}, nil
}

// Permission is a named right of a staff member.
type Permission string

const (
	// PermissionMarkReturned allows to see all loans, renew and return copies.
	PermissionMarkReturned Permission = "can_mark_returned"

	// PermissionChangeStatus allows to edit the status of a copy manually.
	PermissionChangeStatus Permission = "can_change_status"
)

// Permissions is a set of permissions.
type Permissions []Permission

// Has reports whether the set contains the permission.
func (p Permissions) Has(permission Permission) bool {
	for _, candidate := range p {
		if candidate == permission {
			return true
		}
	}

	return false
}

// ParsePermissions converts names into Permissions, skipping unknown names.
func ParsePermissions(names []string) Permissions {
	permissions := make(Permissions, 0, len(names))
	for _, name := range names {
		switch permission := Permission(name); permission {
		case PermissionMarkReturned, PermissionChangeStatus:
			permissions = append(permissions, permission)
		}
	}

	return permissions
}
