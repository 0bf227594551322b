package bitreader

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadCompactSizeSingleByte(t *testing.T) {
	r := New([]byte{0xfc})
	v, n, err := r.ReadCompactSize()
	require.NoError(t, err)
	require.Equal(t, uint64(0xfc), v)
	require.Equal(t, 1, n)
}

func TestReadCompactSizeThreeByte(t *testing.T) {
	r := New([]byte{0xfd, 0x00, 0x01})
	v, n, err := r.ReadCompactSize()
	require.NoError(t, err)
	require.Equal(t, uint64(0x0100), v)
	require.Equal(t, 3, n)
}

func TestReadCompactSizeFiveByte(t *testing.T) {
	r := New([]byte{0xfe, 0x01, 0x00, 0x00, 0x01})
	v, n, err := r.ReadCompactSize()
	require.NoError(t, err)
	require.Equal(t, uint64(0x01000001), v)
	require.Equal(t, 5, n)
}

func TestReadCompactSizeNineByte(t *testing.T) {
	r := New([]byte{0xff, 1, 0, 0, 0, 0, 0, 0, 1})
	v, n, err := r.ReadCompactSize()
	require.NoError(t, err)
	require.Equal(t, uint64(0x0100000000000001), v)
	require.Equal(t, 9, n)
}

func TestReadCompactSizeTruncated(t *testing.T) {
	r := New([]byte{0xfd, 0x01})
	_, _, err := r.ReadCompactSize()
	require.ErrorIs(t, err, ErrTruncatedInput)
}

func TestReadU32LETruncated(t *testing.T) {
	r := New([]byte{1, 2})
	_, err := r.ReadU32LE()
	require.ErrorIs(t, err, ErrTruncatedInput)
}

func TestBytesFromRecoversExactSpan(t *testing.T) {
	buf := []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE}
	r := New(buf)
	start := r.Position()
	_, err := r.ReadBytes(3)
	require.NoError(t, err)
	require.Equal(t, []byte{0xAA, 0xBB, 0xCC}, r.BytesFrom(start))
}

func TestAdvanceSkipsPadding(t *testing.T) {
	r := New([]byte{1, 2, 3, 4})
	require.NoError(t, r.Advance(4))
	require.Equal(t, 0, r.Len())
}

func TestAdvancePastEndFails(t *testing.T) {
	r := New([]byte{1, 2})
	require.ErrorIs(t, r.Advance(3), ErrTruncatedInput)
}
