package domain

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateTrackingID builds a citizen-facing tracking identifier: "GR"
// followed by the last six digits of the unix-millisecond timestamp and
// four random digits. Uniqueness is enforced by the database constraint,
// not here.
func GenerateTrackingID() string {
	millis := fmt.Sprintf("%d", time.Now().UnixMilli())
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	return fmt.Sprintf("GR%s%04d", millis, rand.Intn(10000))
}
