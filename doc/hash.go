package doc

import (
	"encoding/binary"
	"encoding/hex"
	"math"
	"slices"

	"github.com/zeebo/blake3"
)

// Hash returns a 64-bit structural hash of v. Values that are Equal hash
// equally, and the result is stable across processes.
func (v Value) Hash() uint64 {
	h := blake3.New()
	v.writeHash(h)
	var sum [32]byte
	return binary.LittleEndian.Uint64(h.Sum(sum[:0]))
}

// Digest returns the hex encoded 256-bit structural hash of v.
func (v Value) Digest() string {
	h := blake3.New()
	v.writeHash(h)
	return hex.EncodeToString(h.Sum(nil))
}

func (v Value) writeHash(h *blake3.Hasher) {
	var b [8]byte
	// 1. rank, so that Int/Double and String/Date share a prefix
	h.Write([]byte{byte(rank(v.typ))})

	// 2. content
	switch v.typ {
	case NullType:
	case BoolType:
		if v.b {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	case IntType:
		binary.LittleEndian.PutUint64(b[:], uint64(v.i))
		h.Write(b[:])
	case DoubleType:
		if i, ok := exactInt(v.f); ok {
			binary.LittleEndian.PutUint64(b[:], uint64(i))
		} else {
			binary.LittleEndian.PutUint64(b[:], math.Float64bits(v.f))
			h.Write([]byte{'f'})
		}
		h.Write(b[:])
	case StringType, DateType:
		writeHashString(h, v.Str())
	case BlobType:
		writeHashString(h, v.blob.digest)
		writeHashString(h, v.blob.contentType)
		binary.LittleEndian.PutUint64(b[:], uint64(v.blob.length))
		h.Write(b[:])
	case ArrayType:
		binary.LittleEndian.PutUint64(b[:], uint64(len(v.arr.vals)))
		h.Write(b[:])
		for _, elt := range v.arr.vals {
			elt.writeHash(h)
		}
	case DictionaryType:
		binary.LittleEndian.PutUint64(b[:], uint64(len(v.dict.keys)))
		h.Write(b[:])
		for _, k := range slices.Sorted(slices.Values(v.dict.keys)) {
			writeHashString(h, k)
			elt, _ := v.dict.get(k)
			elt.writeHash(h)
		}
	}
}

func writeHashString(h *blake3.Hasher, s string) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(len(s)))
	h.Write(b[:])
	h.Write([]byte(s))
}

// exactInt returns f as an int64 if it is integral and in range.
func exactInt(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < -9.223372036854775808e18 || f >= 9.223372036854775807e18 {
		return 0, false
	}
	return int64(f), true
}
