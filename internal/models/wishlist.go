package models

type WishlistItem struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	CoinCost          int      `json:"coinCost"`
	Archived          bool     `json:"archived,omitempty"`
	TargetCompletions *int     `json:"targetCompletions,omitempty"`
	Link              string   `json:"link,omitempty"`
	UserIDs           []string `json:"userIds,omitempty"`
}

// WishlistData is the content of wishlist.json.
type WishlistData struct {
	Items []WishlistItem `json:"items"`
}
