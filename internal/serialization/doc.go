// Package serialization provides the .mlpw format for saving and loading
// network weights.
//
// The .mlpw format is a small binary container for named float64 matrices:
//
//	Format Structure:
//	  [0x00-0x03: Magic "MLPW"]
//	  [0x04-0x07: Version (uint32 LE)]
//	  [0x08-0x0B: Flags (uint32 LE)]
//	  [0x0C-0x0F: Reserved]
//	  [0x10-0x17: Header Size (uint64 LE)]
//	  [0x18-0x1F: Data Size (uint64 LE)]
//	  [0x20-0x3F: SHA-256 of the data section]
//	  [Header: JSON metadata]
//	  [Tensor data: float64 LE, 64-byte aligned, in header order]
//
// Tensors are written in the order given, so a reader sees them in the same
// order the writer was handed them.
//
// Example usage:
//
//	w, err := serialization.NewWriter("xor.mlpw")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := w.Write(tensors, serialization.Header{Topology: []int{2, 2, 2, 1}}); err != nil {
//	    log.Fatal(err)
//	}
//	w.Close()
//
//	r, err := serialization.NewReader("xor.mlpw")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//	tensors, err := r.ReadAll()
//
// A plain-text alternative, one value per line, is available through
// WriteFlat and ReadFlat.
package serialization
