// Package resolver implements the Main-Chain Resolver: a single BFS pass
// from the genesis sentinel that computes every block's height, finds the
// deepest tip, and walks back to mark the main chain.
package resolver

import (
	"chain-lens/pkg/chainhash"
	"chain-lens/pkg/chainindex"
)

// Sentinel is the genesis block's parent hash: 32 zero bytes.
var Sentinel chainhash.Hash

// Result is the outcome of a resolve pass: the main chain's tip and its
// height (genesis has height 0).
type Result struct {
	TipHash   chainhash.Hash
	TipHeight int32
	Found     bool
}

// Resolve performs the BFS and backward-walk described in spec §4.4. It
// sets Height on every block reachable from the sentinel hash in store,
// sets MainChain on the blocks from the tip back to genesis, and returns
// the main chain's tip.
//
// Tie-break policy: if two tips have identical depth, the first one
// discovered by BFS wins, which is the insertion order of
// chainindex.Store.ChildrenOf and therefore deterministic given
// deterministic ingestion order.
func Resolve(store *chainindex.Store) Result {
	distance := map[chainhash.Hash]int{Sentinel: 0}
	queue := []chainhash.Hash{Sentinel}

	bestDistance := -1
	var bestTip chainhash.Hash
	found := false

	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]

		for _, b := range store.ChildrenOf(h) {
			hh := b.HeaderHash
			if _, seen := distance[hh]; seen {
				// Duplicate-block semantics: if two identical blocks are
				// ingested (e.g. from different files), only the first
				// encountered by BFS is assigned a height. This matches
				// the content-addressed intent of keying by header hash.
				continue
			}
			d := distance[h] + 1
			distance[hh] = d
			b.Height = d - 1
			queue = append(queue, hh)

			if d > bestDistance {
				bestDistance = d
				bestTip = hh
				found = true
			}
		}
	}

	if !found {
		return Result{}
	}

	current := bestTip
	for {
		parent, ok := store.ParentOf(current)
		if !ok || parent == Sentinel {
			break
		}
		if b, ok := store.FindBlock(current); ok {
			b.MainChain = true
		}
		current = parent
	}
	// current is now the genesis block's header hash: the unique child of
	// the sentinel on the discovered path.
	if genesis, ok := store.FindBlock(current); ok {
		genesis.MainChain = true
	}

	return Result{TipHash: bestTip, TipHeight: int32(bestDistance - 1), Found: true}
}
