package handler

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"loan-origination/internal/api/handler/dto"
)

// LetterHandler serves generated sanction letters for download. Only plain
// PDF filenames are accepted; the path never leaves outputDir.
type LetterHandler struct {
	outputDir string
	logger    *slog.Logger
}

func NewLetterHandler(outputDir string, logger *slog.Logger) *LetterHandler {
	return &LetterHandler{
		outputDir: outputDir,
		logger:    logger.With("component", "LetterHandler"),
	}
}

// Download serves one sanction letter.
//
// @Summary Download a sanction letter
// @Description Serves a previously generated sanction letter PDF by filename, as quoted in the approval reply.
// @Tags Chat
// @Produce application/pdf
// @Param filename path string true "Sanction letter filename"
// @Success 200 {file} file "PDF document"
// @Failure 400 {object} dto.ErrorResponse "Invalid filename"
// @Failure 404 {object} dto.ErrorResponse "Letter not found"
// @Router /download_letter/{filename} [get]
func (h *LetterHandler) Download(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	if filename == "" || filename != filepath.Base(filename) || !strings.HasSuffix(filename, ".pdf") {
		respondJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Error: dto.ErrorDetail{Message: "Invalid letter filename."},
		})
		return
	}

	path := filepath.Join(h.outputDir, filename)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		h.logger.InfoContext(r.Context(), "Requested letter not found", slog.String("filename", filename))
		respondJSON(w, http.StatusNotFound, dto.ErrorResponse{
			Error: dto.ErrorDetail{Message: "Letter not found."},
		})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	http.ServeFile(w, r, path)
}
