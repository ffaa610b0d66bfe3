package serialization

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
)

// Checksum is the SHA-256 digest of a data section.
type Checksum [ChecksumSize]byte

// ComputeChecksum computes the SHA-256 checksum of data.
func ComputeChecksum(data []byte) Checksum {
	return sha256.Sum256(data)
}

// ValidateChecksum compares computed checksum against stored checksum.
// Returns ErrChecksumMismatch if they don't match.
func ValidateChecksum(computed, stored Checksum) error {
	if computed != stored {
		return ErrChecksumMismatch
	}
	return nil
}

// encodeTensors lays the tensors out back to back and returns the data
// section together with the metadata describing it.
func encodeTensors(tensors []Tensor) ([]byte, []TensorMeta, error) {
	metas := make([]TensorMeta, 0, len(tensors))
	total := 0
	for _, t := range tensors {
		if err := ValidateTensorName(t.Name); err != nil {
			return nil, nil, err
		}
		if t.NumElements() != len(t.Data) {
			return nil, nil, fmt.Errorf("tensor %s: shape %v holds %d elements, data has %d",
				t.Name, t.Shape, t.NumElements(), len(t.Data))
		}
		total += len(t.Data) * float64Size
	}

	buf := make([]byte, total)
	var offset int64
	for _, t := range tensors {
		size := int64(len(t.Data) * float64Size)
		putFloats(buf[offset:offset+size], t.Data)
		metas = append(metas, TensorMeta{
			Name:   t.Name,
			DType:  DTypeFloat64,
			Shape:  append([]int(nil), t.Shape...),
			Offset: offset,
			Size:   size,
		})
		offset += size
	}
	return buf, metas, nil
}

func putFloats(dst []byte, src []float64) {
	for i, v := range src {
		binary.LittleEndian.PutUint64(dst[i*float64Size:], math.Float64bits(v))
	}
}

func getFloats(src []byte) []float64 {
	out := make([]float64, len(src)/float64Size)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(src[i*float64Size:]))
	}
	return out
}
