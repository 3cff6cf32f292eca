package handlers

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngUpload(t *testing.T, field, filename string, extra map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range extra {
		require.NoError(t, mw.WriteField(k, v))
	}
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	require.NoError(t, png.Encode(part, img))
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestProfileImageUploadAndGet(t *testing.T) {
	s := newTestStore(t)
	uploadDir := t.TempDir()
	h := &ProfileImageHandler{Store: s, UploadDir: uploadDir, BaseURL: "http://localhost:3002"}
	c := seedCustomer(t, s, "alice", "secret1")

	body, contentType := pngUpload(t, "image", "me.png",
		map[string]string{"userId": strconv.FormatInt(c.ID, 10)})
	req := httptest.NewRequest("POST", "/api/userProfileImage/upload-profile-image", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Upload(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		FilePath string `json:"filePath"`
	}
	decodeBody(t, rec, &resp)
	assert.Contains(t, resp.FilePath, "http://localhost:3002/uploads/")
	assert.Contains(t, resp.FilePath, ".jpg", "uploads are re-encoded to JPEG")

	// The file actually landed in the upload directory.
	entries, err := os.ReadDir(uploadDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	rec = httptest.NewRecorder()
	h.Get(rec, jsonRequest(t, "GET", "/api/userProfileImage/profile-image/1", nil,
		map[string]string{"userId": strconv.FormatInt(c.ID, 10)}))
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		ProfileImageURL string `json:"profileImageUrl"`
	}
	decodeBody(t, rec, &got)
	assert.Equal(t, resp.FilePath, got.ProfileImageURL)
}

func TestProfileImageUploadReplacesPrevious(t *testing.T) {
	s := newTestStore(t)
	h := &ProfileImageHandler{Store: s, UploadDir: t.TempDir(), BaseURL: "http://localhost:3002"}
	c := seedCustomer(t, s, "alice", "secret1")

	upload := func() string {
		body, contentType := pngUpload(t, "image", "me.png",
			map[string]string{"userId": strconv.FormatInt(c.ID, 10)})
		req := httptest.NewRequest("POST", "/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		h.Upload(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			FilePath string `json:"filePath"`
		}
		decodeBody(t, rec, &resp)
		return resp.FilePath
	}

	first := upload()
	second := upload()
	assert.NotEqual(t, first, second)

	img, err := s.GetProfileImage(c.ID)
	require.NoError(t, err)
	assert.Equal(t, second, img.ProfileImageURL, "the latest upload wins")
}

func TestProfileImageUploadRejectsUnsupportedFormat(t *testing.T) {
	s := newTestStore(t)
	h := &ProfileImageHandler{Store: s, UploadDir: t.TempDir(), BaseURL: "http://localhost:3002"}
	c := seedCustomer(t, s, "alice", "secret1")

	body, contentType := pngUpload(t, "image", "me.gif",
		map[string]string{"userId": strconv.FormatInt(c.ID, 10)})
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Upload(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfileImageGetMissing(t *testing.T) {
	s := newTestStore(t)
	h := &ProfileImageHandler{Store: s, UploadDir: t.TempDir(), BaseURL: "http://localhost:3002"}

	rec := httptest.NewRecorder()
	h.Get(rec, jsonRequest(t, "GET", "/api/userProfileImage/profile-image/42", nil,
		map[string]string{"userId": "42"}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
