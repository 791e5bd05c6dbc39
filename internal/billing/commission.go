package billing

// Commission returns the commission owed on an invoice value at the given
// percentage. A zero percentage or zero value owes nothing; callers treat
// missing fields as zero before reaching here.
func Commission(value, percent float64) float64 {
	return value * percent / 100
}
