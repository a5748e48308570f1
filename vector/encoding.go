package vector

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrNonFinite is returned for vectors holding NaN or infinite components.
// They have no meaningful L2 distance and would rank as NULL in SQLite.
var ErrNonFinite = errors.New("vector: non-finite component")

// CheckFinite reports the first NaN or infinite component of v.
func CheckFinite(v []float32) error {
	for i, x := range v {
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w at %d: %v", ErrNonFinite, i, x)
		}
	}
	return nil
}

// EncodeEmbedding packs v as little-endian IEEE 754 float32 values with no
// length prefix. This is the embedding column of the position-keyed vector
// table and the query argument of vec_l2. A nil or empty v encodes to nil.
func EncodeEmbedding(v []float32) ([]byte, error) {
	if len(v) == 0 {
		return nil, nil
	}
	if err := CheckFinite(v); err != nil {
		return nil, err
	}
	b := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(x))
	}
	return b, nil
}

// DecodeEmbedding unpacks a BLOB written by EncodeEmbedding. The dimension is
// the BLOB length divided by four.
func DecodeEmbedding(b []byte) ([]float32, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("vector: embedding blob of %d bytes is not a float32 sequence", len(b))
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	if err := CheckFinite(v); err != nil {
		return nil, err
	}
	return v, nil
}
