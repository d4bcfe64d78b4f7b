// internal/extract/hash.go
package extract

import "strconv"

// ComputeID derives a stable identifier from a post's content. It is a
// non-cryptographic order-sensitive rolling hash over text|username|
// timestamp; collisions are accepted and resolved by id-keyed overwrite in
// the store.
func ComputeID(text, username, timestampISO string) string {
	combined := text + "|" + username + "|" + timestampISO

	var hash int32
	for _, r := range combined {
		hash = (hash << 5) - hash + int32(r)
	}
	if hash < 0 {
		// math.MinInt32 has no positive counterpart; pin it rather than
		// overflow on negation.
		if hash == -2147483648 {
			hash = 2147483647
		} else {
			hash = -hash
		}
	}
	return strconv.FormatInt(int64(hash), 36)
}
