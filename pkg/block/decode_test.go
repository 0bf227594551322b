package block

import (
	"encoding/binary"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"chain-lens/pkg/bitreader"
	"chain-lens/pkg/chainhash"
)

const genesisCoinbaseTxHex = "01000000010000000000000000000000000000000000000000000000000000000000000000ffffffff4d04ffff001d0104455468652054696d65732030332f4a616e2f32303039204368616e63656c6c6f72206f6e206272696e6b206f66207365636f6e64206261696c6f757420666f722062616e6b73ffffffff0100f2052a01000000434104678afdb0fe5548271967f1a67130b7105cd6a828e03909a67962e0ea1f61deb649f6bc3f4cef38c4f35504e51ec112de5c384df7ba0b8d578a4c702b6bf11d5fac00000000"

// genesisRecordHex is the mainnet genesis block's 80-byte header plus its
// sole coinbase transaction, exactly as they appear on disk after the magic
// and block_size fields (which buildRecord computes and prepends).
var genesisRecordHex = "01000000" +
	strings.Repeat("00", 32) +
	"3ba3edfd7a7b12b27ac72c3e67768f617fc81bc3888a51323a9fb8aa4b1e5e4a" +
	"29ab5f49" +
	"ffff001d" +
	"1dac2b7c" +
	"01" +
	genesisCoinbaseTxHex

func buildRecord(t *testing.T, recordHex string) []byte {
	t.Helper()
	payload, err := hex.DecodeString(recordHex)
	require.NoError(t, err)

	buf := make([]byte, 8+len(payload))
	binary.LittleEndian.PutUint32(buf[0:4], Magic)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(payload)))
	copy(buf[8:], payload)
	return buf
}

func TestDecodeGenesisBlock(t *testing.T) {
	record := buildRecord(t, genesisRecordHex)
	r := bitreader.New(record)

	b, err := Decode(r, "blk00000.dat")
	require.NoError(t, err)
	require.Equal(t, int32(1), b.Version)
	require.Equal(t, chainhash.Hash{}, b.PrevHeaderHash)
	require.Len(t, b.Transactions, 1)
	require.Equal(t,
		"000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f",
		chainhash.DisplayHex(b.HeaderHash))
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	record := buildRecord(t, genesisRecordHex)
	record[0] ^= 0xFF

	r := bitreader.New(record)
	_, err := Decode(r, "blk00000.dat")
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, BadMagic, decodeErr.Kind)
}

func TestDecodeRejectsMerkleMismatch(t *testing.T) {
	record := buildRecord(t, genesisRecordHex)
	// Corrupt a single merkle-root byte (offset 8 magic+size, +4 version,
	// +32 prev hash) so it no longer matches the coinbase txid computed
	// from the transaction bytes.
	record[8+4+32] ^= 0xFF

	r := bitreader.New(record)
	_, err := Decode(r, "blk00000.dat")
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, MerkleMismatch, decodeErr.Kind)
}

func TestDecodeRejectsSizeMismatch(t *testing.T) {
	payload, err := hex.DecodeString(genesisRecordHex)
	require.NoError(t, err)

	buf := make([]byte, 8+len(payload))
	binary.LittleEndian.PutUint32(buf[0:4], Magic)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(payload)+1)) // wrong
	copy(buf[8:], payload)

	r := bitreader.New(buf)
	_, err = Decode(r, "blk00000.dat")
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, SizeMismatch, decodeErr.Kind)
}
