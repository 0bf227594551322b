package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"chain-lens/pkg/block"
	"chain-lens/pkg/chainhash"
	"chain-lens/pkg/chainindex"
	"chain-lens/pkg/resolver"
)

func hashOf(b byte) chainhash.Hash {
	var h chainhash.Hash
	h[0] = b
	return h
}

func buildFixture(t *testing.T) (*Service, chainhash.Hash, chainhash.Hash) {
	t.Helper()
	store := chainindex.New()
	genesis := &block.Block{
		Version:        1,
		PrevHeaderHash: resolver.Sentinel,
		HeaderHash:     hashOf(1),
		MerkleRoot:     hashOf(42),
		Transactions: []block.Transaction{
			{TxID: hashOf(5), Outputs: []block.OutputRef{{Value: 5_000_000_000, PubkeyScript: []byte{0xAC}}}},
		},
	}
	store.Insert(genesis)

	result := resolver.Resolve(store)
	require.True(t, result.Found)
	return New(store, result), genesis.HeaderHash, hashOf(5)
}

func TestHeightAndMainChain(t *testing.T) {
	svc, blockHash, _ := buildFixture(t)

	h, err := svc.Height(chainhash.DisplayHex(blockHash))
	require.NoError(t, err)
	require.Equal(t, int32(0), h)

	main, err := svc.IsMainChain(chainhash.DisplayHex(blockHash))
	require.NoError(t, err)
	require.True(t, main)
}

func TestHeightUnknownHash(t *testing.T) {
	svc, _, _ := buildFixture(t)
	_, err := svc.Height("ff" + strings.Repeat("0", 62))
	require.ErrorIs(t, err, &QueryError{Kind: NotFound})
}

func TestHeightMalformedHash(t *testing.T) {
	svc, _, _ := buildFixture(t)
	_, err := svc.Height("not-a-hash")
	require.ErrorIs(t, err, &QueryError{Kind: MalformedHash})
}

func TestLatestTipAndHeight(t *testing.T) {
	svc, blockHash, _ := buildFixture(t)
	require.Equal(t, chainhash.DisplayHex(blockHash), svc.LatestTip())
	require.Equal(t, int32(0), svc.LatestHeight())
}

func TestBlockTransactionsReportsBTCValue(t *testing.T) {
	svc, blockHash, _ := buildFixture(t)
	txs, err := svc.BlockTransactions(chainhash.DisplayHex(blockHash))
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.InDelta(t, 50.0, txs[0].TotalBTC, 1e-9)
}

func TestTransactionInfoAndOutputs(t *testing.T) {
	svc, blockHash, txHash := buildFixture(t)

	info, err := svc.TransactionInfo(chainhash.DisplayHex(txHash))
	require.NoError(t, err)
	require.Equal(t, chainhash.DisplayHex(blockHash), info.BlockHash)
	require.Equal(t, 1, info.OutputCount)

	outs, err := svc.TransactionOutputs(chainhash.DisplayHex(txHash))
	require.NoError(t, err)
	require.Len(t, outs, 1)
	require.Equal(t, uint64(5_000_000_000), outs[0].Satoshi)
	require.Equal(t, "ac", outs[0].Script)
}
