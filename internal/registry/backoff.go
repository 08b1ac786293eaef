package registry

import (
	"math/rand"
	"time"
)

const (
	backoffBase = 30 * time.Second
	backoffMax  = 8 * time.Minute
)

// CalculateBackoff returns the retry delay after the given number of
// consecutive registry failures: 30s doubled per failure, capped at 8m.
//   - 0 failures: 30s
//   - 1 failure: 1m
//   - 3 failures: 4m
//   - 4+ failures: 8m
func CalculateBackoff(consecutiveFailures int32) time.Duration {
	if consecutiveFailures <= 0 {
		return backoffBase
	}
	if consecutiveFailures >= 5 {
		return backoffMax
	}
	return min(backoffBase<<uint(consecutiveFailures), backoffMax)
}

// AddJitter returns interval shifted by up to ±10% so StormConfigs sharing
// a poll interval do not hit the registry together.
func AddJitter(interval time.Duration) time.Duration {
	spread := int64(interval / 10)
	if spread <= 0 {
		return interval
	}
	return interval + time.Duration(rand.Int63n(2*spread)-spread)
}
