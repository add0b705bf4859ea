package prices

// Observation is one scraped price for a url. Timestamp and ExpiresAt are
// epoch seconds; ExpiresAt feeds the table's TTL attribute so stale
// observations age out without anyone deleting them.
type Observation struct {
	ProductURLID string  `json:"productUrlId"`
	Timestamp    int64   `json:"priceTimestamp" example:"1756600000"`
	Price        float64 `json:"price" example:"129.99"`
	ExpiresAt    int64   `json:"expirationTimestamp"`
}
