package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Reader reads weights from .mlpw format.
type Reader struct {
	src        io.ReadSeeker
	closer     io.Closer
	header     Header
	flags      uint32
	dataOffset int64    // Offset where tensor data starts
	dataSize   int64    // Size of the data section
	checksum   Checksum // SHA-256 of the data section
	opts       ReaderOptions
	closed     bool
}

// ReaderOptions configures the behavior of Reader.
type ReaderOptions struct {
	SkipChecksumValidation bool            // Skip checksum validation
	ValidationLevel        ValidationLevel // Validation strictness level
}

// NewReader opens a .mlpw file with default options (strict validation).
func NewReader(path string) (*Reader, error) {
	return NewReaderWithOptions(path, ReaderOptions{
		ValidationLevel: ValidationStrict,
	})
}

// NewReaderWithOptions opens a .mlpw file with custom options.
func NewReaderWithOptions(path string, opts ReaderOptions) (*Reader, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for weight loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	r, err := NewReaderFrom(file, opts)
	if err != nil {
		_ = file.Close() // Best effort close on error
		return nil, err
	}
	r.closer = file
	return r, nil
}

// NewReaderFrom parses a .mlpw stream from any seekable source.
func NewReaderFrom(src io.ReadSeeker, opts ReaderOptions) (*Reader, error) {
	r := &Reader{
		src:  src,
		opts: opts,
	}

	if err := r.parseHeader(); err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	end, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to determine size: %w", err)
	}
	available := end - r.dataOffset
	if r.dataSize > available {
		return nil, &ValidationError{
			Type:    "out_of_bounds",
			Details: fmt.Sprintf("data section declares %d bytes, file holds %d", r.dataSize, available),
			Err:     ErrOutOfBounds,
		}
	}

	if err := ValidateHeader(&r.header, r.dataSize, opts.ValidationLevel); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if !opts.SkipChecksumValidation {
		data, err := r.readAt(r.dataOffset, r.dataSize)
		if err != nil {
			return nil, fmt.Errorf("failed to read tensor data for checksum: %w", err)
		}
		if err := ValidateChecksum(ComputeChecksum(data), r.checksum); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// parseHeader reads the fixed header and the JSON header.
func (r *Reader) parseHeader() error {
	fixed := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(r.src, fixed); err != nil {
		return fmt.Errorf("failed to read fixed header: %w", err)
	}

	if string(fixed[0:4]) != MagicBytes {
		return ErrInvalidMagic
	}

	version := binary.LittleEndian.Uint32(fixed[4:8])
	if version != FormatVersion {
		return fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, version, FormatVersion)
	}

	r.flags = binary.LittleEndian.Uint32(fixed[8:12])
	headerSize := binary.LittleEndian.Uint64(fixed[16:24])
	dataSize := binary.LittleEndian.Uint64(fixed[24:32])
	copy(r.checksum[:], fixed[ChecksumOffset:ChecksumOffset+ChecksumSize])

	if headerSize > MaxHeaderSize {
		return ErrHeaderTooLarge
	}
	if dataSize > 1<<40 {
		return fmt.Errorf("%w: data size %d", ErrOutOfBounds, dataSize)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r.src, headerBytes); err != nil {
		return fmt.Errorf("failed to read header JSON: %w", err)
	}
	if err := json.Unmarshal(headerBytes, &r.header); err != nil {
		return fmt.Errorf("failed to parse header JSON: %w", err)
	}

	//nolint:gosec // G115: headerSize is bounded by MaxHeaderSize
	r.dataOffset = alignedOffset(int64(headerSize))
	//nolint:gosec // G115: dataSize is bounded above
	r.dataSize = int64(dataSize)
	return nil
}

func (r *Reader) readAt(offset, size int64) ([]byte, error) {
	if _, err := r.src.Seek(offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek: %w", err)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r.src, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Header returns the file header.
func (r *Reader) Header() Header {
	return r.header
}

// Flags returns the flag word from the fixed header.
func (r *Reader) Flags() uint32 {
	return r.flags
}

// TensorNames returns the names of all tensors in file order.
func (r *Reader) TensorNames() []string {
	names := make([]string, len(r.header.Tensors))
	for i, meta := range r.header.Tensors {
		names[i] = meta.Name
	}
	return names
}

// TensorInfo returns information about a specific tensor.
func (r *Reader) TensorInfo(name string) (*TensorMeta, error) {
	for _, meta := range r.header.Tensors {
		if meta.Name == name {
			return &meta, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTensorNotFound, name)
}

// ReadTensor loads a single tensor.
func (r *Reader) ReadTensor(name string) (Tensor, error) {
	if r.closed {
		return Tensor{}, fmt.Errorf("reader: %w", ErrClosed)
	}

	meta, err := r.TensorInfo(name)
	if err != nil {
		return Tensor{}, err
	}

	raw, err := r.readAt(r.dataOffset+meta.Offset, meta.Size)
	if err != nil {
		return Tensor{}, fmt.Errorf("failed to read tensor %s: %w", name, err)
	}

	return Tensor{
		Name:  meta.Name,
		Shape: append([]int(nil), meta.Shape...),
		Data:  getFloats(raw),
	}, nil
}

// ReadAll loads every tensor in file order.
func (r *Reader) ReadAll() ([]Tensor, error) {
	tensors := make([]Tensor, 0, len(r.header.Tensors))
	for _, meta := range r.header.Tensors {
		t, err := r.ReadTensor(meta.Name)
		if err != nil {
			return nil, err
		}
		tensors = append(tensors, t)
	}
	return tensors, nil
}

// Close releases the underlying file, if any.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}
