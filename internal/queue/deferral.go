package queue

// DeferralCounts tracks how many times each external recurring task was
// deferred instead of acted on. Reset writes zero rather than deleting
// the key so a reset task stays visible in listings.
type DeferralCounts map[string]int

// Increment bumps the counter for id and returns the new value.
func (c DeferralCounts) Increment(id string) int {
	c[id]++
	return c[id]
}

// Get returns the counter for id, zero if never incremented.
func (c DeferralCounts) Get(id string) int {
	return c[id]
}

// Reset zeroes the counter for id. A no-op if the id was never
// incremented: no key is created.
func (c DeferralCounts) Reset(id string) {
	if _, ok := c[id]; ok {
		c[id] = 0
	}
}
