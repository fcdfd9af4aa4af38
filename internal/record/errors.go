package record

import "fmt"

// StrideError reports a flat buffer whose length is not a multiple of its record stride.
// Decoders panic with it: truncating would shift every index the host relies on.
type StrideError struct {
	Kind   string
	Len    int
	Stride int
}

func (e *StrideError) Error() string {
	return fmt.Sprintf("record: %s buffer length %d is not a multiple of stride %d", e.Kind, e.Len, e.Stride)
}

// CapacityError reports a count larger than the buffer that should hold it
type CapacityError struct {
	Kind     string
	Count    int
	Capacity int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("record: %s count %d exceeds buffer capacity %d", e.Kind, e.Count, e.Capacity)
}

// checkStride panics with a *StrideError unless len(data) is a multiple of stride
func checkStride(kind string, data []float64, stride int) int {
	if len(data)%stride != 0 {
		panic(&StrideError{Kind: kind, Len: len(data), Stride: stride})
	}
	return len(data) / stride
}

func flag(v float64) bool { return v > 0.5 }

func unflag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
