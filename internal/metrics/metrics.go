// Package metrics holds the Prometheus collectors for compression runs.
package metrics

import (
	"errors"
	"io/fs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"huf_go/internal/model"
	"huf_go/pkg/huf"
	"huf_go/pkg/huffman"
)

var (
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "huf",
			Name:      "runs_total",
			Help:      "Total number of finished runs",
		},
		[]string{"op"},
	)

	InputBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "huf",
			Name:      "input_bytes_total",
			Help:      "Total bytes read by finished runs",
		},
		[]string{"op"},
	)

	OutputBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "huf",
			Name:      "output_bytes_total",
			Help:      "Total bytes written by finished runs",
		},
		[]string{"op"},
	)

	FailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "huf",
			Name:      "failures_total",
			Help:      "Total number of failed runs",
		},
		[]string{"op", "reason"},
	)
)

// ObserveRun counts a finished run.
func ObserveRun(r *model.Run) {
	op := string(r.Op)
	RunsTotal.WithLabelValues(op).Inc()
	InputBytesTotal.WithLabelValues(op).Add(float64(r.InputBytes))
	OutputBytesTotal.WithLabelValues(op).Add(float64(r.OutputBytes))
}

// ObserveFailure counts a failed run under a reason derived from err.
func ObserveFailure(op model.Op, err error) {
	FailuresTotal.WithLabelValues(string(op), Reason(err)).Inc()
}

func Reason(err error) string {
	switch {
	case errors.Is(err, huf.ErrAlreadyCompressed):
		return "already_compressed"
	case errors.Is(err, huf.ErrNotCompressed):
		return "not_compressed"
	case errors.Is(err, huf.ErrFormat), errors.Is(err, huf.ErrInvalidExtension):
		return "format"
	case errors.Is(err, huffman.ErrUnexpectedEndOfStream):
		return "truncated"
	case errors.Is(err, fs.ErrNotExist):
		return "not_found"
	default:
		return "io"
	}
}
