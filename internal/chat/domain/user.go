package domain

import "time"

// User is an account row. Accounts are provisioned out of band (there is no
// registration endpoint); this service only mutates and deletes them.
type User struct {
	ID          int64
	IDNumber    string
	FirstName   string
	LastName    string
	Email       string
	Password    string
	Avatar      *string
	AccountName string
	UserType    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DisplayName is the name presented to the identity provider when minting a
// session token: the account name when set, otherwise "First Last".
func (u User) DisplayName() string {
	if u.AccountName != "" {
		return u.AccountName
	}
	return u.FirstName + " " + u.LastName
}
