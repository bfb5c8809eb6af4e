package metrics

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"huf_go/internal/model"
	"huf_go/pkg/huf"
	"huf_go/pkg/huffman"
)

func TestReason(t *testing.T) {
	require.Equal(t, "already_compressed", Reason(fmt.Errorf("x: %w", huf.ErrAlreadyCompressed)))
	require.Equal(t, "not_compressed", Reason(huf.ErrNotCompressed))
	require.Equal(t, "format", Reason(huf.ErrFormat))
	require.Equal(t, "truncated", Reason(huffman.ErrUnexpectedEndOfStream))
	require.Equal(t, "not_found", Reason(&os.PathError{Op: "open", Path: "x", Err: os.ErrNotExist}))
	require.Equal(t, "io", Reason(errors.New("disk full")))
}

func TestObserveRun(t *testing.T) {
	before := testutil.ToFloat64(RunsTotal.WithLabelValues("compress"))
	beforeIn := testutil.ToFloat64(InputBytesTotal.WithLabelValues("compress"))

	ObserveRun(&model.Run{Op: model.OpCompress, InputBytes: 100, OutputBytes: 40})

	require.Equal(t, before+1, testutil.ToFloat64(RunsTotal.WithLabelValues("compress")))
	require.Equal(t, beforeIn+100, testutil.ToFloat64(InputBytesTotal.WithLabelValues("compress")))
}

func TestObserveFailure(t *testing.T) {
	c := FailuresTotal.WithLabelValues("decompress", "format")
	before := testutil.ToFloat64(c)
	ObserveFailure(model.OpDecompress, huf.ErrFormat)
	require.Equal(t, before+1, testutil.ToFloat64(c))
}
