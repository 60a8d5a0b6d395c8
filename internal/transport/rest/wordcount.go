package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/wordcount-backend/internal/adapter/document"
	"github.com/heartmarshall/wordcount-backend/internal/domain"
	"github.com/heartmarshall/wordcount-backend/internal/service/wordcount"
)

// EnrichmentStatusHeader reports whether every lookup of the request ran:
// "complete", "aborted" or "canceled".
const EnrichmentStatusHeader = "X-Enrichment-Status"

const (
	fileField  = "file"
	limitField = "limit"
	// maxFormMemory is the part of a multipart body kept in memory; the rest
	// spills to temporary files.
	maxFormMemory = 4 << 20
)

// wordCountService defines the minimal interface needed by WordCountHandler.
type wordCountService interface {
	Process(ctx context.Context, input wordcount.ProcessInput) (*wordcount.Result, error)
}

// WordCountOptions holds request limits of the word count endpoint.
type WordCountOptions struct {
	DefaultLimit   int
	MaxUploadBytes int64
	RequestTimeout time.Duration
}

// WordCountHandler serves the file upload endpoint.
type WordCountHandler struct {
	svc  wordCountService
	log  *slog.Logger
	opts WordCountOptions
}

// NewWordCountHandler creates a WordCountHandler.
func NewWordCountHandler(svc wordCountService, logger *slog.Logger, opts WordCountOptions) *WordCountHandler {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = wordcount.DefaultLimit
	}
	return &WordCountHandler{svc: svc, log: logger.With("handler", "wordcount"), opts: opts}
}

// Count handles POST /api/wordcount. The multipart field "file" holds a
// plain text, docx or pdf document; the optional "limit" query or form value
// sets how many of the most frequent words are returned.
func (h *WordCountHandler) Count(w http.ResponseWriter, r *http.Request) {
	if h.opts.MaxUploadBytes > 0 {
		if r.ContentLength > h.opts.MaxUploadBytes {
			h.handleError(w, r, fmt.Errorf("%w: body of %d bytes exceeds %d", domain.ErrPayloadTooLarge, r.ContentLength, h.opts.MaxUploadBytes))
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes)
	}

	text, err := h.readUpload(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	limit, err := h.parseLimit(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	ctx := r.Context()
	if h.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opts.RequestTimeout)
		defer cancel()
	}

	result, err := h.svc.Process(ctx, wordcount.ProcessInput{Text: text, Limit: limit})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	words := result.Words
	if words == nil {
		words = []domain.EnrichedWord{}
	}
	w.Header().Set(EnrichmentStatusHeader, result.Report.Status())
	writeJSON(w, http.StatusOK, words)
}

// readUpload extracts the text of the uploaded file.
func (h *WordCountHandler) readUpload(r *http.Request) (string, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		if isTooLarge(err) {
			return "", fmt.Errorf("%w: %w", domain.ErrPayloadTooLarge, err)
		}
		return "", domain.NewValidationError(fileField, "expected a multipart/form-data body")
	}

	file, header, err := r.FormFile(fileField)
	if err != nil {
		return "", domain.NewValidationError(fileField, "required")
	}
	defer file.Close()

	mediaType := document.ResolveMediaType(header.Header.Get("Content-Type"), header.Filename)
	if !slices.Contains(document.Supported(), mediaType) {
		return "", fmt.Errorf("%w: %q; allowed: %s",
			domain.ErrUnsupportedMediaType, mediaType, strings.Join(document.Supported(), ", "))
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		if isTooLarge(err) {
			return "", fmt.Errorf("%w: %w", domain.ErrPayloadTooLarge, err)
		}
		return "", fmt.Errorf("read upload: %w", err)
	}

	h.log.DebugContext(r.Context(), "upload received",
		slog.String("filename", header.Filename),
		slog.String("media_type", mediaType),
		slog.Int("bytes", len(raw)),
	)

	return document.Extract(mediaType, raw)
}

// parseLimit reads the limit from the query string or the form. A missing
// value yields the configured default.
func (h *WordCountHandler) parseLimit(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.FormValue(limitField))
	if raw == "" {
		return h.opts.DefaultLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(limitField, "must be an integer")
	}
	return limit, nil
}

func (h *WordCountHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnsupportedMediaType):
		writeError(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, domain.ErrPayloadTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d bytes", h.opts.MaxUploadBytes))
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}
