package domain

import "time"

// Message is a chat message. Seen and System are 0/1 flags, kept as integers
// so responses carry the same values the store does.
type Message struct {
	ID        int64
	GroupID   int64
	UserID    string
	Text      string
	CreatedAt time.Time
	Seen      int64
	System    int64
}

// MessageView is a message joined with its sender's profile, as returned by
// the message listing endpoint.
type MessageView struct {
	ID         int64     `json:"id"`
	GroupID    int64     `json:"group_id"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
	UserID     string    `json:"user_id"`
	Seen       int64     `json:"isSeen"`
	System     int64     `json:"isSystem"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	UserAvatar *string   `json:"user_avatar"`
}
