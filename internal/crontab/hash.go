package crontab

import "strconv"

// Djb2 hashes input with Daniel J. Bernstein's djb2 function: seed 5381,
// multiplier 33, wrapping 64-bit arithmetic over the raw bytes. It is
// cheap, well distributed, and stable across implementations as long as
// the input bytes are identical, which is what fingerprints rely on.
func Djb2(input string) uint64 {
	var hash uint64 = 5381
	for i := 0; i < len(input); i++ {
		// hash = hash*33 + byte
		hash = (hash << 5) + hash + uint64(input[i])
	}
	return hash
}

// fingerprint derives a job's semi-stable identity from its UID and
// command. The input string format must not change: fingerprints end up
// persisted in users' scripts.
func fingerprint(uid int, command string) uint64 {
	return Djb2("uid(" + strconv.Itoa(uid) + "),command(" + command + ")")
}
