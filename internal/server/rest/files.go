package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"github.com/dmitrijs2005/userkeeper/internal/server/services"
	"github.com/gorilla/mux"
)

// profileField is the multipart field carrying the uploaded file.
const profileField = "profile"

type uploadResponse struct {
	Message string       `json:"message"`
	File    *models.File `json:"file"`
}

func (s *HTTPServer) uploadProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, _ := ClaimsFromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, s.deps.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.deps.MaxUploadBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeMessage(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		writeMessage(w, http.StatusBadRequest, "expected multipart form with a profile file")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile(profileField)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "expected multipart form with a profile file")
		return
	}
	defer file.Close()

	f, err := s.deps.Files.Upload(ctx, claims.UserID, services.Upload{
		FileName: header.Filename,
		Size:     header.Size,
		Mime:     header.Header.Get("Content-Type"),
		Body:     file,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	loggerFrom(ctx, s.logger).Info(ctx, "File uploaded", "file_id", f.ID, "size", f.Size)
	writeJSON(w, http.StatusOK, uploadResponse{Message: "File uploaded successfully", File: f})
}

func (s *HTTPServer) listFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.deps.Files.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, files)
}

func (s *HTTPServer) fileURL(w http.ResponseWriter, r *http.Request) {
	url, err := s.deps.Files.DownloadURL(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusNotFound, "file not found")
			return
		}
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
