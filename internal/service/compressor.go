package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"huf_go/internal/metrics"
	"huf_go/internal/model"
	"huf_go/internal/repo"
	"huf_go/pkg/huf"
	"huf_go/pkg/logger"
)

type CompressorService struct {
	repo   repo.RunRepo
	logger logger.Logger
	now    func() time.Time
}

func NewCompressorService(r repo.RunRepo, l logger.Logger) *CompressorService {
	return &CompressorService{repo: r, logger: l, now: time.Now}
}

/*** ---------- 파일 이름 ---------- ***/

// Extension returns the extension of path without the dot.
func Extension(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

func stem(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// CompressedName is "<outName>.huf", or "<stem of in>.huf" when outName is empty.
func CompressedName(in, outName string) string {
	if outName != "" {
		return outName + huf.Ext
	}
	return stem(in) + huf.Ext
}

// DecompressedName is "<outName>.<ext>", or "<stem of in>Decompressed.<ext>"
// when outName is empty. The dot is dropped when ext is empty.
func DecompressedName(in, outName, ext string) string {
	name := outName
	if name == "" {
		name = stem(in) + "Decompressed"
	}
	if ext != "" {
		name += "." + ext
	}
	return name
}

/*** ---------- 파일 단위 ---------- ***/

// CompressFile compresses in and writes the result next to it (or to outName).
// The output only appears once it is complete.
func (s *CompressorService) CompressFile(ctx context.Context, in, outName string) (*model.Run, error) {
	src, err := os.Open(in)
	if err != nil {
		return nil, s.failed(model.OpCompress, err)
	}
	defer src.Close()

	target := CompressedName(in, outName)
	out, err := createPending(filepath.Dir(target))
	if err != nil {
		return nil, s.failed(model.OpCompress, err)
	}
	st, err := huf.Compress(src, out.f, Extension(in))
	if err != nil {
		out.abort()
		return nil, s.failed(model.OpCompress, fmt.Errorf("compress %s: %w", in, err))
	}
	if err := out.commit(target); err != nil {
		return nil, s.failed(model.OpCompress, err)
	}

	run := s.newRun(model.OpCompress, in, target, st.Extension, st.Symbols, int64(st.Length), int64(st.OutputBytes))
	s.record(ctx, run)
	return run, nil
}

// DecompressFile restores the file stored in in. The output name uses the
// extension recorded in the header.
func (s *CompressorService) DecompressFile(ctx context.Context, in, outName string) (*model.Run, error) {
	src, err := os.Open(in)
	if err != nil {
		return nil, s.failed(model.OpDecompress, err)
	}
	defer src.Close()
	info, err := src.Stat()
	if err != nil {
		return nil, s.failed(model.OpDecompress, err)
	}

	out, err := createPending(filepath.Dir(DecompressedName(in, outName, "")))
	if err != nil {
		return nil, s.failed(model.OpDecompress, err)
	}
	h, err := huf.Decompress(src, out.f)
	if err != nil {
		out.abort()
		return nil, s.failed(model.OpDecompress, fmt.Errorf("decompress %s: %w", in, err))
	}
	target := DecompressedName(in, outName, h.Extension)
	if err := out.commit(target); err != nil {
		return nil, s.failed(model.OpDecompress, err)
	}

	run := s.newRun(model.OpDecompress, in, target, h.Extension, h.Symbols, info.Size(), int64(h.Length))
	s.record(ctx, run)
	return run, nil
}

/*** ---------- 메모리 단위 ---------- ***/

// CompressBytes compresses data that came from a file called name.
func (s *CompressorService) CompressBytes(ctx context.Context, name string, data []byte) ([]byte, *model.Run, error) {
	out, st, err := huf.CompressBytes(data, Extension(name))
	if err != nil {
		return nil, nil, s.failed(model.OpCompress, err)
	}
	run := s.newRun(model.OpCompress, name, filepath.Base(CompressedName(name, "")),
		st.Extension, st.Symbols, int64(len(data)), int64(len(out)))
	s.record(ctx, run)
	return out, run, nil
}

// DecompressBytes decompresses an uploaded .huf file called name.
func (s *CompressorService) DecompressBytes(ctx context.Context, name string, data []byte) ([]byte, *model.Run, error) {
	out, h, err := huf.DecompressBytes(data)
	if err != nil {
		return nil, nil, s.failed(model.OpDecompress, err)
	}
	run := s.newRun(model.OpDecompress, name, filepath.Base(DecompressedName(name, "", h.Extension)),
		h.Extension, h.Symbols, int64(len(data)), int64(len(out)))
	s.record(ctx, run)
	return out, run, nil
}

/*** ---------- 실행 이력 ---------- ***/

func (s *CompressorService) GetRun(ctx context.Context, id string) (*model.Run, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CompressorService) ListRuns(ctx context.Context, limit int) ([]*model.Run, error) {
	return s.repo.List(ctx, limit)
}

func (s *CompressorService) newRun(op model.Op, in, out, ext string, symbols int, inBytes, outBytes int64) *model.Run {
	return &model.Run{
		ID:          uuid.NewString(),
		Op:          op,
		Input:       in,
		Output:      out,
		Extension:   ext,
		Symbols:     symbols,
		InputBytes:  inBytes,
		OutputBytes: outBytes,
		CreatedAt:   s.now().UTC(),
	}
}

// record는 실행을 집계하고 이력에 남겨요. 저장 실패는 실행 자체를 실패시키지 않아요.
func (s *CompressorService) record(ctx context.Context, run *model.Run) {
	metrics.ObserveRun(run)
	if err := s.repo.Save(ctx, run); err != nil {
		s.logger.Errorf("save run %s: %v", run.ID, err)
		return
	}
	s.logger.Infof("%s: %s -> %s (%d -> %d bytes, %d symbols)",
		run.Op, run.Input, run.Output, run.InputBytes, run.OutputBytes, run.Symbols)
}

func (s *CompressorService) failed(op model.Op, err error) error {
	metrics.ObserveFailure(op, err)
	s.logger.Debugf("%s failed: %v", op, err)
	return err
}
