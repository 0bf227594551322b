// Package chainindex is the append-only store the Block Decoder feeds into:
// a parent-hash-keyed map of children (supporting forks), a child-to-parent
// map, and a txid-to-parent-hash map. It is mutated only during ingest;
// after the resolve phase it is read-only and safe for unsynchronized
// concurrent reads.
package chainindex

import "chain-lens/pkg/block"
import "chain-lens/pkg/chainhash"

// Store is the Chain Index described in spec §4.3.
type Store struct {
	// childrenOf maps a block's prev_header_hash to the ordered list of
	// blocks (forks) that reference it as parent. Order is insertion
	// order, which is what gives the resolver's BFS tie-break its
	// determinism.
	childrenOf map[chainhash.Hash][]*block.Block

	// parentOf maps a block's own header hash to its prev_header_hash.
	parentOf map[chainhash.Hash]chainhash.Hash

	// txParent maps a txid to the prev_header_hash of the block that
	// contains it. Last-writer-wins on duplicate txids.
	txParent map[chainhash.Hash]chainhash.Hash
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		childrenOf: make(map[chainhash.Hash][]*block.Block),
		parentOf:   make(map[chainhash.Hash]chainhash.Hash),
		txParent:   make(map[chainhash.Hash]chainhash.Hash),
	}
}

// Insert appends b to the store. Rationale for keying children by parent
// hash rather than by the block's own hash: the decoder produces the
// parent hash directly from the header bytes, while the block's own hash
// requires hashing the header first; grouping by parent lets the resolver's
// BFS traverse forks without distinguishing them at insert time.
func (s *Store) Insert(b *block.Block) {
	s.childrenOf[b.PrevHeaderHash] = append(s.childrenOf[b.PrevHeaderHash], b)
	s.parentOf[b.HeaderHash] = b.PrevHeaderHash
	for i := range b.Transactions {
		s.txParent[b.Transactions[i].TxID] = b.PrevHeaderHash
	}
}

// ChildrenOf returns the (possibly empty) ordered list of blocks whose
// parent hash is prevHash.
func (s *Store) ChildrenOf(prevHash chainhash.Hash) []*block.Block {
	return s.childrenOf[prevHash]
}

// ParentOf returns the prev_header_hash recorded for headerHash, or false
// if headerHash is unknown.
func (s *Store) ParentOf(headerHash chainhash.Hash) (chainhash.Hash, bool) {
	h, ok := s.parentOf[headerHash]
	return h, ok
}

// FindBlock resolves headerHash to its containing block via ParentOf then a
// linear scan of ChildrenOf(parent); scan width is bounded by fork width,
// typically 1-2.
func (s *Store) FindBlock(headerHash chainhash.Hash) (*block.Block, bool) {
	parent, ok := s.ParentOf(headerHash)
	if !ok {
		return nil, false
	}
	for _, b := range s.childrenOf[parent] {
		if b.HeaderHash == headerHash {
			return b, true
		}
	}
	return nil, false
}

// FindTx locates the block containing txid and the transaction itself, via
// the same two-step lookup as FindBlock.
func (s *Store) FindTx(txid chainhash.Hash) (*block.Block, *block.Transaction, bool) {
	parent, ok := s.txParent[txid]
	if !ok {
		return nil, nil, false
	}
	for _, b := range s.childrenOf[parent] {
		for i := range b.Transactions {
			if b.Transactions[i].TxID == txid {
				return b, &b.Transactions[i], true
			}
		}
	}
	return nil, nil, false
}

// Merge folds other into s, preserving other's per-parent insertion order
// after s's own. Used when per-file ingestion is parallelized into
// independent partial indices (spec §5): callers must merge the partial
// indices back together in file ingestion order for the BFS tie-break to
// stay deterministic.
func (s *Store) Merge(other *Store) {
	for parent, blocks := range other.childrenOf {
		s.childrenOf[parent] = append(s.childrenOf[parent], blocks...)
	}
	for hash, parent := range other.parentOf {
		s.parentOf[hash] = parent
	}
	for txid, parent := range other.txParent {
		s.txParent[txid] = parent
	}
}

// AllBlocks returns every block in the store, grouped by parent hash in the
// same order childrenOf holds them. Map iteration order over parent hashes
// is unspecified, but a flat block-identity snapshot (for persistence) has
// no need of the parent-to-children grouping the live index uses for
// lookups, so that indeterminism is harmless here.
func (s *Store) AllBlocks() []*block.Block {
	var all []*block.Block
	for _, blocks := range s.childrenOf {
		all = append(all, blocks...)
	}
	return all
}
