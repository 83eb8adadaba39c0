package upload

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/xingzihai/roomsync/internal/db"
)

const maxUploadSize = 50 << 20 // 50MB

// Handlers serves the upload collaborator: it stores files under the static
// uploads directory and hands back the URL the room admin broadcasts as the
// track reference. The file content itself is opaque to the sync core.
type Handlers struct {
	DB        *db.DB
	UploadDir string
	URLPrefix string
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func jsonOK(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// Upload accepts a multipart "musicFile" field and responds {fileUrl}.
// Content type and size are not inspected beyond the request body cap.
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonError(w, "No file uploaded", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("musicFile")
	if err != nil {
		jsonError(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	filename := uuid.New().String() + ext

	if err := os.MkdirAll(h.UploadDir, 0755); err != nil {
		jsonError(w, "Failed to save file", http.StatusInternalServerError)
		return
	}
	storedPath := filepath.Join(h.UploadDir, filename)
	out, err := os.Create(storedPath)
	if err != nil {
		jsonError(w, "Failed to save file", http.StatusInternalServerError)
		return
	}
	written, err := io.Copy(out, file)
	out.Close()
	if err != nil {
		os.Remove(storedPath)
		jsonError(w, "Failed to save file", http.StatusInternalServerError)
		return
	}

	fileURL := path.Join(h.URLPrefix, filename)
	if h.DB != nil {
		if _, err := h.DB.AddTrack(filename, header.Filename, written, fileURL); err != nil {
			log.Printf("failed to record track %s: %v", filename, err)
		}
	}

	jsonOK(w, map[string]string{"fileUrl": fileURL})
}

// ListTracks returns the upload catalog, newest first.
func (h *Handlers) ListTracks(w http.ResponseWriter, r *http.Request) {
	if h.DB == nil {
		jsonOK(w, []*db.Track{})
		return
	}
	tracks, err := h.DB.ListTracks()
	if err != nil {
		jsonError(w, "Failed to list tracks", http.StatusInternalServerError)
		return
	}
	if tracks == nil {
		tracks = []*db.Track{}
	}
	jsonOK(w, tracks)
}
