// Package authz holds the access policy as plain functions so the rules can
// be tested without an HTTP harness.
package authz

import "lab-document-tracking/internal/domain"

// CanManageUsers reports whether a role may use the user-administration
// endpoints.
func CanManageUsers(role string) bool {
	return role == domain.RoleSuperadmin
}

// CanDeleteUser forbids self-deletion; anything else is allowed once the
// caller passed CanManageUsers.
func CanDeleteUser(requestorID, targetID uint64) bool {
	return requestorID != targetID
}

// CanOperateOnDocuments requires the caller to belong to an institution.
func CanOperateOnDocuments(institutionID *uint64) bool {
	return institutionID != nil
}
