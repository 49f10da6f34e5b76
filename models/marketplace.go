package models

// Listing is one shopping result from the grocery search provider, passed
// through with the fields the marketplace cards render.
type Listing struct {
	Position  int     `json:"position,omitempty"`
	Title     string  `json:"title"`
	Link      string  `json:"link,omitempty"`
	Source    string  `json:"source,omitempty"`
	Price     string  `json:"price,omitempty"`
	Extracted float64 `json:"extracted_price,omitempty"`
	Thumbnail string  `json:"thumbnail,omitempty"`
}

// Pagination describes the marketplace paging state; Next is derived from
// whether the current page came back full.
type Pagination struct {
	Current int  `json:"current"`
	Total   int  `json:"total"`
	Next    bool `json:"next"`
}

// MarketplaceResult is the payload of the marketplace search endpoint.
type MarketplaceResult struct {
	ShoppingResults []Listing  `json:"shopping_results"`
	Pagination      Pagination `json:"pagination"`
}
