package serialization

import (
	"errors"
	"strings"
	"testing"
)

func meta(name string, offset, size int64) TensorMeta {
	return TensorMeta{Name: name, DType: DTypeFloat64, Shape: []int{int(size / float64Size)}, Offset: offset, Size: size}
}

// TestValidateTensorOffsets covers overlap, bounds and sign checks.
func TestValidateTensorOffsets(t *testing.T) {
	tests := []struct {
		name     string
		tensors  []TensorMeta
		dataSize int64
		wantErr  error
	}{
		{
			name:     "back to back",
			tensors:  []TensorMeta{meta("a", 0, 16), meta("b", 16, 8)},
			dataSize: 24,
		},
		{
			name:     "unsorted but valid",
			tensors:  []TensorMeta{meta("b", 16, 8), meta("a", 0, 16)},
			dataSize: 24,
		},
		{
			name:     "overlap by one byte",
			tensors:  []TensorMeta{meta("a", 0, 16), meta("b", 15, 8)},
			dataSize: 32,
			wantErr:  ErrOffsetOverlap,
		},
		{
			name:     "past the end",
			tensors:  []TensorMeta{meta("a", 0, 16), meta("b", 16, 16)},
			dataSize: 24,
			wantErr:  ErrOutOfBounds,
		},
		{
			name:     "negative offset",
			tensors:  []TensorMeta{{Name: "a", Offset: -8, Size: 8}},
			dataSize: 24,
			wantErr:  ErrNegativeOffset,
		},
		{
			name:     "negative size",
			tensors:  []TensorMeta{{Name: "a", Offset: 0, Size: -8}},
			dataSize: 24,
			wantErr:  ErrNegativeOffset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTensorOffsets(tt.tensors, tt.dataSize)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateTensorOffsets_TooManyTensors(t *testing.T) {
	tensors := make([]TensorMeta, MaxTensorCount+1)
	for i := range tensors {
		tensors[i] = meta("t", int64(i*8), 8)
	}
	if err := ValidateTensorOffsets(tensors, int64(len(tensors)*8)); !errors.Is(err, ErrTooManyTensors) {
		t.Errorf("expected ErrTooManyTensors, got %v", err)
	}
}

func TestValidateTensorName(t *testing.T) {
	valid := []string{"weights.0", "weights.2", "layer_1.w"}
	for _, name := range valid {
		if err := ValidateTensorName(name); err != nil {
			t.Errorf("ValidateTensorName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "../etc", "a/b", `a\b`, "a\x00b", strings.Repeat("x", MaxTensorNameLen+1)}
	for _, name := range invalid {
		if err := ValidateTensorName(name); err == nil {
			t.Errorf("ValidateTensorName(%q) = nil, want error", name)
		}
	}
}

func TestValidateHeader_Levels(t *testing.T) {
	// Overlapping offsets pass Normal but fail Strict.
	header := Header{Tensors: []TensorMeta{meta("a", 0, 16), meta("b", 8, 16)}}

	if err := ValidateHeader(&header, 32, ValidationNormal); err != nil {
		t.Errorf("normal: unexpected error %v", err)
	}
	if err := ValidateHeader(&header, 32, ValidationStrict); !errors.Is(err, ErrOffsetOverlap) {
		t.Errorf("strict: expected overlap, got %v", err)
	}

	bad := Header{Tensors: []TensorMeta{{Name: "../x", DType: "int8"}}}
	if err := ValidateHeader(&bad, 0, ValidationNone); err != nil {
		t.Errorf("none: unexpected error %v", err)
	}
}

func TestValidateHeader_TensorType(t *testing.T) {
	tests := []struct {
		name string
		meta TensorMeta
		typ  string
	}{
		{"wrong dtype", TensorMeta{Name: "a", DType: "float32", Shape: []int{2}, Size: 8}, "unsupported_dtype"},
		{"zero dim", TensorMeta{Name: "a", DType: DTypeFloat64, Shape: []int{0, 2}, Size: 0}, "invalid_shape"},
		{"size mismatch", TensorMeta{Name: "a", DType: DTypeFloat64, Shape: []int{2, 2}, Size: 16}, "size_mismatch"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Header{Tensors: []TensorMeta{tt.meta}}
			err := ValidateHeader(&h, 64, ValidationNormal)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Type != tt.typ {
				t.Errorf("type = %q, want %q", verr.Type, tt.typ)
			}
		})
	}
}

func TestValidationError_ErrorMessages(t *testing.T) {
	tests := []struct {
		err  *ValidationError
		want string
	}{
		{&ValidationError{Type: "t", Details: "d"}, "t: d"},
		{&ValidationError{Type: "t", Tensor: "a", Details: "d"}, `t: tensor "a": d`},
		{&ValidationError{Type: "t", Tensor: "a", Tensor2: "b", Details: "d"}, `t: tensors "a" and "b": d`},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func FuzzValidateTensorName(f *testing.F) {
	f.Add("weights.0")
	f.Add("../../x")
	f.Fuzz(func(t *testing.T, name string) {
		err := ValidateTensorName(name)
		if err == nil && (strings.Contains(name, "..") || strings.ContainsAny(name, "/\\\x00")) {
			t.Errorf("accepted unsafe name %q", name)
		}
	})
}
