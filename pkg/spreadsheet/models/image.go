package models

// Image represents a picture and its anchor.
type Image struct {
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Anchor      string  `json:"anchor"`
	From        Marker  `json:"from"`
	To          *Marker `json:"to,omitempty"`
	W           *int    `json:"w,omitempty"`
	H           *int    `json:"h,omitempty"`
}
