package service

import (
	"strings"

	"github.com/filedrive/filedrive/internal/ctxkeys"
	"github.com/filedrive/filedrive/internal/model"
)

// HasOrgAccess reports whether the user may act within the given organization
// scope. Access is granted on an explicit membership, or when the org id is
// contained in the user's token identifier - the personal-workspace case,
// where a user's own identity doubles as their organization scope.
func HasOrgAccess(user *model.User, orgID string) bool {
	if user == nil || orgID == "" {
		return false
	}
	if user.Membership(orgID) != nil {
		return true
	}
	return strings.Contains(user.TokenIdentifier, orgID)
}

// CanModerate reports whether the caller may delete or restore the file:
// an admin of the file's organization, or the owner of a personal scope
// matching their own identity subject.
func CanModerate(user *model.User, identity *ctxkeys.Identity, file *model.File) bool {
	if user == nil || identity == nil || file == nil {
		return false
	}
	if user.IsAdmin(file.OrgID) {
		return true
	}
	return IsPersonalScope(identity, file.OrgID)
}

// IsPersonalScope reports whether the org id names the caller's personal
// namespace rather than a shared organization.
func IsPersonalScope(identity *ctxkeys.Identity, orgID string) bool {
	return identity != nil && identity.Subject == orgID
}
