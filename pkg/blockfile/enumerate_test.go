package blockfile

import (
	"encoding/binary"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"chain-lens/pkg/block"
)

const genesisCoinbaseTxHex = "01000000010000000000000000000000000000000000000000000000000000000000000000ffffffff4d04ffff001d0104455468652054696d65732030332f4a616e2f32303039204368616e63656c6c6f72206f6e206272696e6b206f66207365636f6e64206261696c6f757420666f722062616e6b73ffffffff0100f2052a01000000434104678afdb0fe5548271967f1a67130b7105cd6a828e03909a67962e0ea1f61deb649f6bc3f4cef38c4f35504e51ec112de5c384df7ba0b8d578a4c702b6bf11d5fac00000000"

func genesisRecord(t *testing.T) []byte {
	t.Helper()
	headerHex := "01000000" +
		strings.Repeat("00", 32) +
		"3ba3edfd7a7b12b27ac72c3e67768f617fc81bc3888a51323a9fb8aa4b1e5e4a" +
		"29ab5f49ffff001d1dac2b7c01"
	payload, err := hex.DecodeString(headerHex + genesisCoinbaseTxHex)
	require.NoError(t, err)

	record := make([]byte, 8+len(payload)+4) // + trailing padding
	binary.LittleEndian.PutUint32(record[0:4], block.Magic)
	binary.LittleEndian.PutUint32(record[4:8], uint32(len(payload)))
	copy(record[8:], payload)
	return record
}

func TestEnumerateFileDecodesEachRecord(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blk00000.dat")
	require.NoError(t, os.WriteFile(path, genesisRecord(t), 0644))

	var got []*block.Block
	err := EnumerateFile(path, func(b *block.Block) error {
		got = append(got, b)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestEnumerateDirStopsAtMissingOrdinal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(FileName(dir, 0), genesisRecord(t), 0644))
	// blk00001.dat intentionally absent; enumeration must stop there.

	var count int
	err := EnumerateDir(dir, func(b *block.Block) error {
		count++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestFileNameIsZeroPadded(t *testing.T) {
	require.Equal(t, filepath.Join("/data", "blk00042.dat"), FileName("/data", 42))
}
