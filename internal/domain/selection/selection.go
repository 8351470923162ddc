// Package selection defines the persisted named record-list entity.
package selection

import "time"

// Selection groups a named list of record ids chosen from search results,
// independent of the originating criteria. Visible to its owner and, when
// Shared, to every user of the same organization.
type Selection struct {
	ID         string
	TenantID   string
	UserID     string
	Name       string
	ContactIDs []string
	Shared     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// VisibleTo reports whether a user of the owning organization may read the
// selection.
func (s Selection) VisibleTo(userID string) bool {
	return s.Shared || s.UserID == userID
}
