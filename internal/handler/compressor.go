package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"huf_go/internal/repo"
	"huf_go/internal/service"
	"huf_go/pkg/huf"
	"huf_go/pkg/huffman"
)

const (
	HeaderRunID     = "X-Huf-Run"
	HeaderExtension = "X-Huf-Extension"

	defaultUploadName = "upload.bin"
	defaultListLimit  = 50
)

type CompressorHandler struct {
	svc       *service.CompressorService
	maxUpload int64
}

func NewCompressorHandler(s *service.CompressorService, maxUpload int64) *CompressorHandler {
	return &CompressorHandler{svc: s, maxUpload: maxUpload}
}

func (h *CompressorHandler) Compress(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}
	name := c.DefaultQuery("name", defaultUploadName)
	out, run, err := h.svc.CompressBytes(c.Request.Context(), name, body)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Header(HeaderRunID, run.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", run.Output))
	c.Data(http.StatusOK, "application/octet-stream", out)
}

func (h *CompressorHandler) Decompress(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}
	name := c.DefaultQuery("name", "upload"+huf.Ext)
	out, run, err := h.svc.DecompressBytes(c.Request.Context(), name, body)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Header(HeaderRunID, run.ID)
	c.Header(HeaderExtension, run.Extension)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", run.Output))
	c.Data(http.StatusOK, "application/octet-stream", out)
}

func (h *CompressorHandler) GetRun(c *gin.Context) {
	run, err := h.svc.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, run)
}

func (h *CompressorHandler) ListRuns(c *gin.Context) {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	runs, err := h.svc.ListRuns(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, runs)
}

func (h *CompressorHandler) readBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit)})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return body, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, huf.ErrAlreadyCompressed),
		errors.Is(err, huf.ErrNotCompressed),
		errors.Is(err, huf.ErrInvalidExtension):
		return http.StatusBadRequest
	case errors.Is(err, huf.ErrFormat),
		errors.Is(err, huffman.ErrUnexpectedEndOfStream):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
