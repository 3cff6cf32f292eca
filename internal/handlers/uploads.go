package handlers

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/IAN-www1/MOOBILE/internal/store"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

// saveUploadedImage reads the named multipart file field, re-encodes it as a
// bounded-width JPEG and writes it under uploadDir with a random filename.
// Returns the public URL the stored file is served from.
func saveUploadedImage(r *http.Request, field, uploadDir, baseURL string) (string, error) {
	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB
		return "", errors.New("file too large")
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return "", errors.New("image file is required")
	}
	defer file.Close()

	var img image.Image
	switch ext := filepath.Ext(header.Filename); ext {
	case ".png":
		img, err = png.Decode(file)
	case ".jpeg", ".jpg":
		img, err = jpeg.Decode(file)
	default:
		return "", errors.New("unsupported image format")
	}
	if err != nil {
		return "", errors.New("could not decode image")
	}

	newImage := resize.Resize(800, 0, img, resize.Lanczos3)
	filename := fmt.Sprintf("%s.jpg", uuid.New().String())

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", err
	}
	out, err := os.Create(filepath.Join(uploadDir, filename))
	if err != nil {
		return "", err
	}
	defer out.Close()
	if err := jpeg.Encode(out, newImage, &jpeg.Options{Quality: 80}); err != nil {
		return "", err
	}

	return baseURL + "/uploads/" + filename, nil
}

type ProfileImageHandler struct {
	Store     *store.Store
	UploadDir string
	BaseURL   string
}

// Upload stores a customer's profile picture, replacing any previous one.
func (h *ProfileImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.FormValue("userId"), 10, 64)
	if err != nil || userID == 0 {
		writeError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	url, err := saveUploadedImage(r, "image", h.UploadDir, h.BaseURL)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Store.UpsertProfileImage(userID, url); err != nil {
		respondStoreError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"filePath": url})
}

func (h *ProfileImageHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("userId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	img, err := h.Store.GetProfileImage(userID)
	if err != nil {
		respondStoreError(w, err, "Profile image not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"profileImageUrl": img.ProfileImageURL})
}
