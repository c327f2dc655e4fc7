package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/escalopa/tajweed-coach/internal/application"
	"github.com/escalopa/tajweed-coach/internal/domain"
)

const maxUploadBytes = 25 << 20 // recordings are short verse readings

type handler struct {
	service *application.RecitationService
	logger  *slog.Logger
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type analyzeRequest struct {
	Transcription string `json:"transcription"`
	ExpectedText  string `json:"expected_text"`
	AyahID        string `json:"ayah_id"`
}

// analyzeText scores an already-transcribed recitation. The expected text
// comes either inline or by ayah reference. The engine never rejects
// malformed transcription text, so the only client error here is a missing
// reference.
func (h *handler) analyzeText(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "")
		return
	}

	expected := req.ExpectedText
	if expected == "" && req.AyahID != "" {
		text, err := h.service.VerseText(r.Context(), req.AyahID)
		if err != nil {
			h.writeCollaboratorError(w, err)
			return
		}
		expected = text
	}
	if expected == "" {
		writeError(w, http.StatusBadRequest, "expected_text or ayah_id is required", "")
		return
	}

	summary := h.service.AnalyzeText(req.Transcription, expected)
	writeJSON(w, http.StatusOK, summary)
}

// analyzeRecording transcribes an uploaded recording and scores it against
// the referenced ayah.
func (h *handler) analyzeRecording(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form", "")
		return
	}

	ayahID := r.FormValue("ayah_id")
	if ayahID == "" {
		writeError(w, http.StatusBadRequest, "ayah_id is required", "")
		return
	}

	var duration float64
	if v := r.FormValue("duration_seconds"); v != "" {
		d, err := strconv.ParseFloat(v, 64)
		if err != nil || d < 0 {
			writeError(w, http.StatusBadRequest, "invalid duration_seconds", "")
			return
		}
		duration = d
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required", "")
		return
	}
	defer file.Close()

	summary, err := h.service.AnalyzeRecording(r.Context(), ayahID, file, duration)
	if err != nil {
		h.writeCollaboratorError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// writeCollaboratorError maps kinded collaborator failures onto HTTP
// statuses so web clients can distinguish them.
func (h *handler) writeCollaboratorError(w http.ResponseWriter, err error) {
	kind := domain.ErrorKindOf(err)
	h.logger.Error("collaborator failure", "kind", kind, "err", err)

	switch kind {
	case domain.ErrKindPermissionDenied:
		writeError(w, http.StatusForbidden, "upstream rejected credentials", string(kind))
	case domain.ErrKindUnsupportedEnvironment:
		writeError(w, http.StatusUnsupportedMediaType, "audio format not supported", string(kind))
	default:
		writeError(w, http.StatusServiceUnavailable, "upstream service unavailable", string(kind))
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg, kind string) {
	writeJSON(w, status, errorResponse{Error: msg, Kind: kind})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
