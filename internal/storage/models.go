package storage

// Kind classifies which Discord object an identifier record points at
type Kind string

const (
	KindTicket   Kind = "ticket"
	KindCategory Kind = "category"
	KindChannel  Kind = "channel"
	KindMessage  Kind = "message"
	KindRole     Kind = "role"
)

// Valid reports whether the kind is one of the known object types
func (k Kind) Valid() bool {
	switch k {
	case KindTicket, KindCategory, KindChannel, KindMessage, KindRole:
		return true
	}
	return false
}

// IdentifierRecord links a Discord object id to a logical slot name.
// For tickets the name is the owning user's id.
type IdentifierRecord struct {
	ID       int64
	ObjectID string
	Name     string
	Kind     Kind
}

// MemberRecord tracks a guild member seen by the join listener
type MemberRecord struct {
	MemberID string
	Username string
	JoinedAt string
}
