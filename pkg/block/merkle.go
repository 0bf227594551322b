package block

import "chain-lens/pkg/chainhash"

// ComputeMerkleRoot computes the Merkle root over an ordered list of txids
// (each already in internal byte order). The coinbase transaction, if any,
// participates like any other; this never inspects transaction content,
// only hashes.
func ComputeMerkleRoot(hashes []chainhash.Hash) chainhash.Hash {
	if len(hashes) == 0 {
		return chainhash.Hash{}
	}
	level := make([]chainhash.Hash, len(hashes))
	copy(level, hashes)

	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}
		next := make([]chainhash.Hash, 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			var buf [64]byte
			copy(buf[:32], level[i][:])
			copy(buf[32:], level[i+1][:])
			next = append(next, chainhash.DoubleSHA256(buf[:]))
		}
		level = next
	}
	return level[0]
}
