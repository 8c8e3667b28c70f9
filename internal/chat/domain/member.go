package domain

// GroupMember is a membership row. At most one row exists per
// (group, idNumber) pair.
type GroupMember struct {
	ID       int64
	GroupID  int64
	IDNumber string
}

// MemberInfo is a membership row joined with the member's user profile,
// as returned by the member listing endpoint.
type MemberInfo struct {
	ID        int64   `json:"id"`
	GroupID   int64   `json:"group_id"`
	IDNumber  string  `json:"idNumber"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Avatar    *string `json:"avatar"`
	UserType  string  `json:"userType"`
}
