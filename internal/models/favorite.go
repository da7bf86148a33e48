package models

// Favorite is one bookmarked reference-content item. Favorites persist as
// their own document, independent from the profile.
type Favorite struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Type    string `json:"type"`
	Color   string `json:"color"`
	Section string `json:"section"`
}
