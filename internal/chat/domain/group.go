package domain

import "time"

// Group is a chat group. Key is the shared join token; Avatar is the web path
// of the uploaded image, nil when none was ever supplied.
type Group struct {
	ID     int64
	Name   string
	Key    string
	Avatar *string
}

// GroupSummary is the list-row shape returned by the group listing endpoints:
// the group annotated with its single most recent message. The latest_* fields
// are nil for groups that have no messages yet; those rows sort last.
type GroupSummary struct {
	Avatar        *string    `json:"avatar"`
	GroupID       int64      `json:"group_id"`
	GroupName     string     `json:"group_name"`
	GroupKey      string     `json:"group_key"`
	LatestMessage *string    `json:"latest_message"`
	MessageTime   *time.Time `json:"message_time"`
	LatestSeen    *int64     `json:"latest_message_isSeen"`
	Sender        *string    `json:"sender"`
}
