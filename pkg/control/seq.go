package control

import "math/rand"

// nextSeq generates a dialect-1 sequence id, the same scheme
// pkg/enumerate uses for its own queries (command_builder.py picks a
// random 16-bit sequence per command rather than an incrementing one).
func nextSeq() uint16 {
	return uint16(rand.Intn(1 << 16))
}
