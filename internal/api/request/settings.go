package request

// UpdateSettings is the request body for changing user settings. Absent
// fields leave the current value unchanged.
type UpdateSettings struct {
	StartingCash *float64 `json:"startingCash"`
	DisplayName  *string  `json:"displayName"`
	Timezone     *string  `json:"timezone"`
}
