// Package query is the thin, read-only accessor surface described in
// spec §4.5. It is the only part of the core any frontend (HTTP, CLI, or
// otherwise) is expected to call once ingestion and resolution are done;
// the Service it exposes is safe for unsynchronized concurrent reads.
package query

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcutil"

	"chain-lens/pkg/block"
	"chain-lens/pkg/chainhash"
	"chain-lens/pkg/chainindex"
	"chain-lens/pkg/resolver"
)

// Service is a read-only handle over a resolved Store. Construct one after
// ingest + resolve complete; it holds no mutable state of its own besides
// the cached tip from the resolve pass.
type Service struct {
	store     *chainindex.Store
	tipHash   chainhash.Hash
	tipHeight int32
}

// New builds a Service from a resolved store and the resolver's Result.
func New(store *chainindex.Store, result resolver.Result) *Service {
	return &Service{store: store, tipHash: result.TipHash, tipHeight: result.TipHeight}
}

// HeaderFields is the decoded, display-encoded view of a block's header.
type HeaderFields struct {
	Version       int32
	PrevHash      string // display hex
	MerkleRoot    string // display hex
	Time          uint32
	Bits          uint32
	Nonce         uint32
}

// HeaderFields returns the header fields of the block identified by the
// 64-character display-hex hash.
func (s *Service) HeaderFields(hashHex string) (HeaderFields, error) {
	b, err := s.lookupBlock(hashHex)
	if err != nil {
		return HeaderFields{}, err
	}
	return HeaderFields{
		Version:    b.Version,
		PrevHash:   chainhash.DisplayHex(b.PrevHeaderHash),
		MerkleRoot: chainhash.DisplayHex(b.MerkleRoot),
		Time:       b.Time,
		Bits:       b.Bits,
		Nonce:      b.Nonce,
	}, nil
}

// Height returns the height of the block identified by hashHex.
func (s *Service) Height(hashHex string) (int32, error) {
	b, err := s.lookupBlock(hashHex)
	if err != nil {
		return 0, err
	}
	return b.Height, nil
}

// IsMainChain reports whether the block identified by hashHex is on the
// main chain.
func (s *Service) IsMainChain(hashHex string) (bool, error) {
	b, err := s.lookupBlock(hashHex)
	if err != nil {
		return false, err
	}
	return b.MainChain, nil
}

// LatestTip returns the main chain's tip hash in display hex.
func (s *Service) LatestTip() string {
	return chainhash.DisplayHex(s.tipHash)
}

// LatestHeight returns the main chain's height.
func (s *Service) LatestHeight() int32 {
	return s.tipHeight
}

// TxSummary is one transaction's identity and value within a block listing.
type TxSummary struct {
	TxID     string // display hex
	TotalBTC float64
}

// BlockTransactions lists every transaction in the block identified by
// hashHex, with each one's total output value in BTC.
func (s *Service) BlockTransactions(hashHex string) ([]TxSummary, error) {
	b, err := s.lookupBlock(hashHex)
	if err != nil {
		return nil, err
	}
	out := make([]TxSummary, len(b.Transactions))
	for i := range b.Transactions {
		out[i] = TxSummary{
			TxID:     chainhash.DisplayHex(b.Transactions[i].TxID),
			TotalBTC: satoshisToBTC(b.Transactions[i].TotalOutputSatoshis()),
		}
	}
	return out, nil
}

// TxInfo is the summary view of a single transaction.
type TxInfo struct {
	BlockHash   string // display hex
	Version     int32
	InputCount  int
	OutputCount int
	TotalBTC    float64
	LockTime    uint32
}

// TransactionInfo returns summary fields for the transaction identified by
// the 64-character display-hex txid.
func (s *Service) TransactionInfo(txidHex string) (TxInfo, error) {
	b, tx, err := s.lookupTx(txidHex)
	if err != nil {
		return TxInfo{}, err
	}
	return TxInfo{
		BlockHash:   chainhash.DisplayHex(b.HeaderHash),
		Version:     tx.Version,
		InputCount:  len(tx.Inputs),
		OutputCount: len(tx.Outputs),
		TotalBTC:    satoshisToBTC(tx.TotalOutputSatoshis()),
		LockTime:    tx.LockTime,
	}, nil
}

// InputInfo is the display view of one transaction input.
type InputInfo struct {
	PrevTxID string // display hex
	Script   string // hex
	Sequence uint32
}

// TransactionInputs lists the inputs of the transaction identified by
// txidHex.
func (s *Service) TransactionInputs(txidHex string) ([]InputInfo, error) {
	_, tx, err := s.lookupTx(txidHex)
	if err != nil {
		return nil, err
	}
	out := make([]InputInfo, len(tx.Inputs))
	for i, in := range tx.Inputs {
		out[i] = InputInfo{
			PrevTxID: chainhash.DisplayHex(in.PrevTxHash),
			Script:   hex.EncodeToString(in.SignatureScript),
			Sequence: in.Sequence,
		}
	}
	return out, nil
}

// OutputInfo is the display view of one transaction output.
type OutputInfo struct {
	Satoshi uint64
	Script  string // hex
}

// TransactionOutputs lists the outputs of the transaction identified by
// txidHex.
func (s *Service) TransactionOutputs(txidHex string) ([]OutputInfo, error) {
	_, tx, err := s.lookupTx(txidHex)
	if err != nil {
		return nil, err
	}
	out := make([]OutputInfo, len(tx.Outputs))
	for i, o := range tx.Outputs {
		out[i] = OutputInfo{
			Satoshi: o.Value,
			Script:  hex.EncodeToString(o.PubkeyScript),
		}
	}
	return out, nil
}

func (s *Service) lookupBlock(hashHex string) (*block.Block, error) {
	h, err := parseHash(hashHex)
	if err != nil {
		return nil, err
	}
	b, ok := s.store.FindBlock(h)
	if !ok {
		return nil, newQueryError(NotFound, hashHex, nil)
	}
	return b, nil
}

func (s *Service) lookupTx(txidHex string) (*block.Block, *block.Transaction, error) {
	h, err := parseHash(txidHex)
	if err != nil {
		return nil, nil, err
	}
	b, tx, ok := s.store.FindTx(h)
	if !ok {
		return nil, nil, newQueryError(NotFound, txidHex, nil)
	}
	return b, tx, nil
}

func parseHash(hashHex string) (chainhash.Hash, error) {
	h, err := chainhash.ParseDisplayHex(hashHex)
	if err != nil {
		return chainhash.Hash{}, newQueryError(MalformedHash, hashHex, err)
	}
	return h, nil
}

// satoshisToBTC converts an integer satoshi amount to its decimal BTC
// presentation via btcutil.Amount, which is defined over exactly this unit
// (1 Amount == 1 satoshi) and carries the canonical 1e8 divisor.
func satoshisToBTC(sats uint64) float64 {
	return btcutil.Amount(sats).ToBTC()
}
