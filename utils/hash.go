package utils

import "hash/fnv"

func U64ToBytes(u uint64) []byte {
	return []byte{
		byte(u >> 56), byte(u >> 48), byte(u >> 40), byte(u >> 32),
		byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u),
	}
}

// FingerprintStrings hashes an ordered list of strings. Each element is
// length-prefixed so ["ab", ""] and ["a", "b"] differ.
func FingerprintStrings(parts []string) uint64 {
	h := fnv.New64a()
	for _, p := range parts {
		h.Write(U64ToBytes(uint64(len(p))))
		h.Write([]byte(p))
	}
	return h.Sum64()
}
