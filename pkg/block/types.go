// Package block decodes a single block record from the block-file binary
// format into the in-memory block/transaction graph entities, verifying
// the Merkle root against the header along the way.
package block

import "chain-lens/pkg/chainhash"

// InputRef is one transaction input.
type InputRef struct {
	PrevTxHash      chainhash.Hash
	PrevOutputIndex uint32
	SignatureScript []byte
	Sequence        uint32
}

// OutputRef is one transaction output.
type OutputRef struct {
	Value        uint64 // satoshis
	PubkeyScript []byte
}

// Transaction is a fully-decoded, pre-witness Bitcoin transaction.
type Transaction struct {
	TxID     chainhash.Hash
	Version  int32
	Inputs   []InputRef
	Outputs  []OutputRef
	LockTime uint32
}

// Block is a fully-decoded block: header fields, ordered transactions, and
// the derived fields the resolver assigns exactly once (Height, MainChain).
type Block struct {
	Version        int32
	PrevHeaderHash chainhash.Hash
	MerkleRoot     chainhash.Hash
	Time           uint32
	Bits           uint32
	Nonce          uint32
	Transactions   []Transaction

	// HeaderHash is the block's identity: SHA256(SHA256(80-byte header)).
	HeaderHash chainhash.Hash

	// Height and MainChain are set exactly once, by the resolver, after
	// ingestion completes. Zero/false until then.
	Height    int32
	MainChain bool
}

// TotalOutputSatoshis sums every output value of tx.
func (tx *Transaction) TotalOutputSatoshis() uint64 {
	var total uint64
	for _, out := range tx.Outputs {
		total += out.Value
	}
	return total
}
