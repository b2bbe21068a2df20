// Package access derives what a user may do with a link.
//
// The store enforces the same rules inside its conditioned statements; this
// package answers the question for links that are already loaded, for
// example to annotate responses.
package access

import "linkshare/internal/models"

// Permission is a user's effective access level on one link.
type Permission int

const (
	None Permission = iota
	Reader
	Writer
	Owner
)

// String returns the name exposed in API responses.
func (p Permission) String() string {
	switch p {
	case Reader:
		return "reader"
	case Writer:
		return "writer"
	case Owner:
		return "owner"
	default:
		return "none"
	}
}

// CanRead reports whether the link may be viewed.
func (p Permission) CanRead() bool { return p >= Reader }

// CanWrite reports whether the link may be updated.
func (p Permission) CanWrite() bool { return p >= Writer }

// CanDelete reports whether the link may be deleted.
func (p Permission) CanDelete() bool { return p == Owner }

// CanManageShares reports whether shares on the link may be created, listed, changed or revoked.
func (p Permission) CanManageShares() bool { return p == Owner }

// Resolve derives userID's permission on link given the share granting
// userID access to it, if any. grant is ignored unless it belongs to userID
// and link.
func Resolve(userID string, link *models.Link, grant *models.Share) Permission {
	if link == nil || userID == "" {
		return None
	}
	if link.UserID == userID {
		return Owner
	}
	if grant == nil || grant.UserID != userID || grant.LinkID != link.ID {
		return None
	}
	if grant.IsWritable {
		return Writer
	}
	return Reader
}

// ForMode is the permission every link returned by a list mode carries.
func ForMode(mode string) Permission {
	switch mode {
	case models.ModeOwn:
		return Owner
	case models.ModeSharedWritable:
		return Writer
	case models.ModeSharedUnwritable:
		return Reader
	default:
		return None
	}
}
