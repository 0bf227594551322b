package block

import (
	"bytes"
	"errors"

	"chain-lens/pkg/bitreader"
	"chain-lens/pkg/chainhash"
)

// Magic is the mainnet network magic every block record must begin with.
const Magic uint32 = 0xD9B4BEF9

// HeaderSize is the fixed size, in bytes, of a block header:
// version(4) || prev_header_hash(32) || merkle_root(32) || time(4) ||
// nBits(4) || nonce(4).
const HeaderSize = 80

// Decode parses one block record from r, starting at the reader's current
// position: magic, block_size, the 80-byte header, and tx_count
// transactions. It computes each transaction's txid from its exact raw
// bytes, verifies the Merkle root against the header, and computes the
// block's header hash.
//
// On return, r's cursor sits immediately past the last transaction byte;
// the caller (the block-file enumerator) is responsible for the trailing
// 4-byte skip documented in the block-file format.
//
// source names the file being decoded, used only to annotate DecodeErrors.
func Decode(r *bitreader.Reader, source string) (*Block, error) {
	recordStart := r.Position()

	magic, err := r.ReadU32LE()
	if err != nil {
		return nil, wrapTruncated(source, recordStart, err)
	}
	if magic != Magic {
		return nil, newDecodeError(source, recordStart, BadMagic, nil)
	}

	blockSize, err := r.ReadU32LE()
	if err != nil {
		return nil, wrapTruncated(source, r.Position(), err)
	}

	headerStart := r.Position()
	b, err := decodeHeader(r, source)
	if err != nil {
		return nil, err
	}
	headerBytes := append([]byte(nil), r.BytesFrom(headerStart)...)

	txCount, _, err := r.ReadCompactSize()
	if err != nil {
		return nil, wrapTruncated(source, r.Position(), err)
	}

	txids := make([]chainhash.Hash, 0, txCount)
	transactions := make([]Transaction, 0, txCount)
	for i := uint64(0); i < txCount; i++ {
		tx, err := decodeTransaction(r, source)
		if err != nil {
			return nil, err
		}
		txids = append(txids, tx.TxID)
		transactions = append(transactions, *tx)
	}
	b.Transactions = transactions

	if consumed := r.Position() - headerStart; consumed != int(blockSize) {
		return nil, newDecodeError(source, headerStart, SizeMismatch, nil)
	}

	computedRoot := ComputeMerkleRoot(txids)
	if !bytes.Equal(computedRoot[:], b.MerkleRoot[:]) {
		return nil, newDecodeError(source, headerStart, MerkleMismatch, nil)
	}

	b.HeaderHash = chainhash.DoubleSHA256(headerBytes)
	return b, nil
}

func decodeHeader(r *bitreader.Reader, source string) (*Block, error) {
	start := r.Position()
	version, err := r.ReadU32LE()
	if err != nil {
		return nil, wrapTruncated(source, start, err)
	}
	prevHash, err := r.ReadHash32()
	if err != nil {
		return nil, wrapTruncated(source, r.Position(), err)
	}
	merkleRoot, err := r.ReadHash32()
	if err != nil {
		return nil, wrapTruncated(source, r.Position(), err)
	}
	blockTime, err := r.ReadU32LE()
	if err != nil {
		return nil, wrapTruncated(source, r.Position(), err)
	}
	bits, err := r.ReadU32LE()
	if err != nil {
		return nil, wrapTruncated(source, r.Position(), err)
	}
	nonce, err := r.ReadU32LE()
	if err != nil {
		return nil, wrapTruncated(source, r.Position(), err)
	}
	return &Block{
		Version:        int32(version),
		PrevHeaderHash: prevHash,
		MerkleRoot:     merkleRoot,
		Time:           blockTime,
		Bits:           bits,
		Nonce:          nonce,
	}, nil
}

func decodeTransaction(r *bitreader.Reader, source string) (*Transaction, error) {
	txStart := r.Position()

	version, err := r.ReadU32LE()
	if err != nil {
		return nil, wrapTruncated(source, txStart, err)
	}

	inputCount, _, err := r.ReadCompactSize()
	if err != nil {
		return nil, wrapTruncated(source, r.Position(), err)
	}
	inputs := make([]InputRef, 0, inputCount)
	for i := uint64(0); i < inputCount; i++ {
		prevTxHash, err := r.ReadHash32()
		if err != nil {
			return nil, wrapTruncated(source, r.Position(), err)
		}
		prevIndex, err := r.ReadU32LE()
		if err != nil {
			return nil, wrapTruncated(source, r.Position(), err)
		}
		scriptLen, _, err := r.ReadCompactSize()
		if err != nil {
			return nil, wrapTruncated(source, r.Position(), err)
		}
		script, err := r.ReadBytes(int(scriptLen))
		if err != nil {
			return nil, wrapTruncated(source, r.Position(), err)
		}
		sequence, err := r.ReadU32LE()
		if err != nil {
			return nil, wrapTruncated(source, r.Position(), err)
		}
		inputs = append(inputs, InputRef{
			PrevTxHash:      prevTxHash,
			PrevOutputIndex: prevIndex,
			SignatureScript: append([]byte(nil), script...),
			Sequence:        sequence,
		})
	}

	outputCount, _, err := r.ReadCompactSize()
	if err != nil {
		return nil, wrapTruncated(source, r.Position(), err)
	}
	outputs := make([]OutputRef, 0, outputCount)
	for i := uint64(0); i < outputCount; i++ {
		value, err := r.ReadU64LE()
		if err != nil {
			return nil, wrapTruncated(source, r.Position(), err)
		}
		scriptLen, _, err := r.ReadCompactSize()
		if err != nil {
			return nil, wrapTruncated(source, r.Position(), err)
		}
		script, err := r.ReadBytes(int(scriptLen))
		if err != nil {
			return nil, wrapTruncated(source, r.Position(), err)
		}
		outputs = append(outputs, OutputRef{
			Value:        value,
			PubkeyScript: append([]byte(nil), script...),
		})
	}

	locktime, err := r.ReadU32LE()
	if err != nil {
		return nil, wrapTruncated(source, r.Position(), err)
	}

	rawTx := r.BytesFrom(txStart)
	txid := chainhash.DoubleSHA256(rawTx)

	return &Transaction{
		TxID:     txid,
		Version:  int32(version),
		Inputs:   inputs,
		Outputs:  outputs,
		LockTime: locktime,
	}, nil
}

func wrapTruncated(source string, offset int, err error) error {
	if errors.Is(err, bitreader.ErrUnknownCompactSizeMarker) {
		return newDecodeError(source, offset, UnknownCompactSizeMarker, err)
	}
	return newDecodeError(source, offset, TruncatedInput, err)
}
