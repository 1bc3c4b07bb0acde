package handlers

import (
	"net/http"
)

const uploadMaxMemory = 10 << 20

// UploadFile accepts a single multipart "file" field and stores it, returning
// the hosted URL. The optional "folder" field namespaces the upload.
func UploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(uploadMaxMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}

	folder := r.FormValue("folder")
	if folder == "" {
		folder = "uploads"
	}

	url, err := cloudinaryService.UploadFileFromHeader(r.Context(), files[0], folder)
	if err != nil {
		writeServerError(w, "UploadFile", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"url": url,
		},
	})
}
