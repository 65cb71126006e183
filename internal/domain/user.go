package domain

import "time"

type User struct {
	ID        string   `json:"id" yaml:"id"`
	Email     string   `json:"email" yaml:"email"`
	Name      string   `json:"name" yaml:"name"`
	IsAdmin   bool     `json:"isAdmin" yaml:"isAdmin"`
	Phone     string   `json:"phone,omitempty" yaml:"phone"`
	Address   *Address `json:"address,omitempty" yaml:"address"`
	AvatarURL string   `json:"avatarUrl,omitempty" yaml:"avatarUrl"`
	Hash      string   `json:"passwordHash,omitempty" yaml:"-"`
}

// Public strips the credential before the user leaves the process.
func (u User) Public() User {
	u.Hash = ""
	return u
}

type Session struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	LastSeen time.Time `json:"lastSeen"`
}
