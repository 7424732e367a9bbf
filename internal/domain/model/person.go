// Package model contains domain models passed between layers.
package model

// Person is one candidate record returned by a character search.
// Height stays textual because the upstream uses placeholders like "unknown".
type Person struct {
	Name   string `json:"name"`
	Height string `json:"height"`
}

// SearchResult mirrors the body of a people search. Results are ordered by
// upstream relevance; the first entry is the one that counts.
type SearchResult struct {
	Results []Person `json:"results"`
}

// Outcome answers whether the reference height is above the queried person.
// Person is the caller's query verbatim, not the matched record's name.
type Outcome struct {
	Person string `json:"person"`
	Taller bool   `json:"taller"`
}
