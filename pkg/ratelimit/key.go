package ratelimit

import (
	"fmt"
)

// KeyPrefix is the counter-store keyspace owned by this system. Concurrent
// systems sharing the same store must not write keys under this prefix.
const KeyPrefix = "rate_limit:"

// BucketKey derives the counter key for the bucket containing nowSeconds.
//
// The bucket start is aligned to a multiple of windowSeconds since the
// epoch, so for any instant exactly one key is live per user:
//
//	rate_limit:<userID>:<floor(nowSeconds/windowSeconds)*windowSeconds>
func BucketKey(userID string, nowSeconds int64, windowSeconds int) string {
	windowStart := nowSeconds / int64(windowSeconds) * int64(windowSeconds)
	return fmt.Sprintf("%s%s:%d", KeyPrefix, userID, windowStart)
}
