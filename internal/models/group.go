package models

// Group represents a fixed set of people who share expenses.
// Membership is set at creation; there is no add/remove operation and groups
// are never deleted.
type Group struct {
	// ID is the unique identifier assigned by the store.
	ID string

	// Name is the display name of the group. Names are unique per creator,
	// not globally.
	Name string

	// Members is the set of member emails. Order carries no meaning.
	Members []string

	// CreatedBy is the email of the user who created the group.
	CreatedBy string

	// CreatedAt is the RFC 3339 timestamp when the group was created.
	CreatedAt string

	// UnregisteredMembers lists member emails that had no account at
	// creation time, recorded for later notification.
	UnregisteredMembers []string
}
