package models

// Lead is an entry in the protected lead listing.
type Lead struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
