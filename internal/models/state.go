package models

// State is the full application state as seen by a client.
type State struct {
	Settings Settings     `json:"settings"`
	Habits   HabitsData   `json:"habits"`
	Coins    CoinsData    `json:"coins"`
	Wishlist WishlistData `json:"wishlist"`
	Users    UserData     `json:"users"`
}
