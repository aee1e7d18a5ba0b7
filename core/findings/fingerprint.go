package findings

import (
	xxhash "github.com/cespare/xxhash/v2"
)

// ComputeFingerprint produces a short, deterministic digest of a finding
// from its rule ID and resolved choice. The components are separated by a
// null byte to avoid ambiguous concatenations. The fingerprint is stable
// across runs, making it suitable for change tracking between scans.
func ComputeFingerprint(ruleID, choice string) string {
	sum := xxhash.Sum64String(ruleID + "\x00" + choice)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}
