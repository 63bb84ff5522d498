package models

type Permission struct {
	Habit    PermissionSet `json:"habit"`
	Wishlist PermissionSet `json:"wishlist"`
	Coins    PermissionSet `json:"coins"`
}

type PermissionSet struct {
	Write    bool `json:"write"`
	Interact bool `json:"interact"`
}

type User struct {
	ID          string       `json:"id"`
	Username    string       `json:"username"`
	Password    string       `json:"password"`
	Avatar      string       `json:"avatarPath,omitempty"`
	IsAdmin     bool         `json:"isAdmin"`
	Permissions []Permission `json:"permissions,omitempty"`
}

// UserData is the content of auth.json.
type UserData struct {
	Users []User `json:"users"`
}
