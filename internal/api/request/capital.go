package request

// RecordCapitalChange is the request body for a manual capital update.
// Amount is the absolute capital figure, not a delta.
type RecordCapitalChange struct {
	Amount float64 `json:"amount"`
	Date   string  `json:"date"` // YYYY-MM-DD; empty means today
}
