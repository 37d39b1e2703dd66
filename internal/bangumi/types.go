package bangumi

// Subject is a raw Bangumi subject record. Every field except ID and Name is
// best-effort and may be absent.
type Subject struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	NameCN  string  `json:"name_cn"`
	Date    string  `json:"date"`
	Summary string  `json:"summary"`
	Infobox Infobox `json:"infobox"`
	Tags    []Tag   `json:"tags"`
	Rating  Rating  `json:"rating"`
	Images  Images  `json:"images"`
}

// Tag is a user-applied tag with the number of users who applied it.
type Tag struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Rating holds the community score on Bangumi's native 0-10 scale.
type Rating struct {
	Score float64 `json:"score"`
}

// Images holds cover image URLs in the sizes the API provides.
type Images struct {
	Large  string `json:"large"`
	Common string `json:"common"`
	Medium string `json:"medium"`
	Small  string `json:"small"`
	Grid   string `json:"grid"`
}

// RelatedSubject is one entry of a subject's relation list.
type RelatedSubject struct {
	ID   int    `json:"id"`
	Type int    `json:"type"`
	Name string `json:"name"`
}
