package feed

// espnEntry mirrors one record in the ESPN scraper dump.
type espnEntry struct {
	Name        string  `json:"name"`
	Team        string  `json:"team"`
	Position    string  `json:"position"`
	Value       float64 `json:"avgAuctionValue"`
	HeadshotURL string  `json:"headshotUrl"`
}

// yahooEntry mirrors one record in the Yahoo scraper dump. Yahoo exposes a
// name and a projected auction value only.
type yahooEntry struct {
	Name  string  `json:"name"`
	Value float64 `json:"yahooAuctionValue"`
}
