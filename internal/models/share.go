package models

// Share grants one user access to another user's link.
// At most one share exists per (LinkID, UserID).
type Share struct {
	ID         string `json:"id" db:"id"`
	LinkID     string `json:"linkId" db:"link_id"`
	UserID     string `json:"userId" db:"user_id"`
	Email      string `json:"email" db:"email"`
	IsWritable bool   `json:"isWritable" db:"is_writable"`
}

// SharePair is one (link, grantee) combination of a bulk share request.
type SharePair struct {
	LinkID string
	UserID string
}

// ExpandSharePairs returns the cross product of linkIDs and userIDs,
// skipping blanks and repeated pairs while preserving request order.
func ExpandSharePairs(linkIDs, userIDs []string) []SharePair {
	seen := make(map[SharePair]struct{}, len(linkIDs)*len(userIDs))
	var pairs []SharePair
	for _, linkID := range linkIDs {
		if linkID == "" {
			continue
		}
		for _, userID := range userIDs {
			if userID == "" {
				continue
			}
			p := SharePair{LinkID: linkID, UserID: userID}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			pairs = append(pairs, p)
		}
	}
	return pairs
}
