package model

import "time"

type Op string

const (
	OpCompress   Op = "compress"
	OpDecompress Op = "decompress"
)

// Run records one compression or decompression.
type Run struct {
	ID          string    `json:"id"`
	Op          Op        `json:"op"`
	Input       string    `json:"input"`
	Output      string    `json:"output"`
	Extension   string    `json:"extension"`
	Symbols     int       `json:"symbols"`
	InputBytes  int64     `json:"inputBytes"`
	OutputBytes int64     `json:"outputBytes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Ratio is output size over input size, 0 for empty input.
func (r *Run) Ratio() float64 {
	if r.InputBytes == 0 {
		return 0
	}
	return float64(r.OutputBytes) / float64(r.InputBytes)
}
