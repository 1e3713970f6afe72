package models

// Ad is a classified-ad record. AdID is the external identifier assigned by
// the producer that feeds the ads table; ID is our surrogate key.
type Ad struct {
	ID       int    `json:"id"`
	AdID     int    `json:"ad_id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Views    int    `json:"views"`
	Position int    `json:"position"`
}
