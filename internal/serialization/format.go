package serialization

import (
	"time"
)

// Format constants.
const (
	MagicBytes      = "MLPW"
	FormatVersion   = 1
	HeaderAlignment = 64   // Align tensor data to 64 bytes
	FixedHeaderSize = 64   // Fixed header size (0x40 bytes)
	ChecksumSize    = 32   // SHA-256 checksum size (32 bytes)
	ChecksumOffset  = 0x20 // Checksum offset in the fixed header
)

// DTypeFloat64 is the only element type stored in .mlpw files.
const DTypeFloat64 = "float64"

// float64Size is the encoded size of one element in bytes.
const float64Size = 8

// Flags for the .mlpw format.
const (
	FlagHasTraining uint32 = 1 << 0 // bit 0: training metadata included
	FlagHasMetadata uint32 = 1 << 1 // bit 1: custom metadata included
)

// Header represents the JSON header in a .mlpw file.
type Header struct {
	FormatVersion int               `json:"format_version"`     // Version of the .mlpw format
	RunID         string            `json:"run_id"`             // Identifier of the run that produced the file
	CreatedAt     time.Time         `json:"created_at"`         // When the file was created
	Topology      []int             `json:"topology"`           // Layer widths, input first
	Tensors       []TensorMeta      `json:"tensors"`            // Tensor metadata
	Metadata      map[string]string `json:"metadata"`           // Custom metadata
	Training      *TrainingMeta     `json:"training,omitempty"` // Training outcome (optional)
}

// TrainingMeta records how the stored weights were produced.
type TrainingMeta struct {
	Iterations     int     `json:"iterations"`
	AverageError   float64 `json:"average_error"`
	Reason         string  `json:"reason"`
	LearningRate   float64 `json:"learning_rate"`
	ErrorThreshold float64 `json:"error_threshold"`
	MaxIterations  int     `json:"max_iterations"`
	Seed           int64   `json:"seed"`
}

// TensorMeta describes a tensor in the .mlpw file.
type TensorMeta struct {
	Name   string `json:"name"`   // Tensor name (e.g., "weights.0")
	DType  string `json:"dtype"`  // Always "float64"
	Shape  []int  `json:"shape"`  // Tensor shape
	Offset int64  `json:"offset"` // Offset in the data section (bytes from start of tensor data)
	Size   int64  `json:"size"`   // Size in bytes
}

// Tensor is a named, row-major float64 array.
type Tensor struct {
	Name  string
	Shape []int
	Data  []float64
}

// NumElements returns the product of the shape dimensions.
func (t Tensor) NumElements() int {
	n := 1
	for _, d := range t.Shape {
		n *= d
	}
	return n
}

// alignedOffset returns the position of the data section for a header of
// the given size.
func alignedOffset(headerSize int64) int64 {
	pos := int64(FixedHeaderSize) + headerSize
	padding := (HeaderAlignment - (pos % HeaderAlignment)) % HeaderAlignment
	return pos + padding
}
