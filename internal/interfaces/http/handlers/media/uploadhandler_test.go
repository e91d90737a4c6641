package media

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockObjectStore struct {
	url       string
	objectKey string
	err       error
	filename  string
	content   []byte
}

func (m *mockObjectStore) Store(_ context.Context, filename string, r io.Reader) (string, string, error) {
	m.filename = filename
	m.content, _ = io.ReadAll(r)
	return m.url, m.objectKey, m.err
}

func newUploadContext(t *testing.T, fieldName, filename string, content []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/media", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.Request = req

	return c, w
}

func TestUploadHandler_Upload_Success(t *testing.T) {
	store := &mockObjectStore{
		url:       "https://cdn.example.com/media/abc.jpg",
		objectKey: "media/abc.jpg",
	}
	handler := NewUploadHandler(store)

	c, w := newUploadContext(t, "file", "pothole.JPG", []byte("jpegbytes"))

	handler.Upload(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "pothole.JPG", store.filename)
	assert.Equal(t, []byte("jpegbytes"), store.content)
	assert.Contains(t, w.Body.String(), "media/abc.jpg")
}

func TestUploadHandler_Upload_MissingFile(t *testing.T) {
	store := &mockObjectStore{}
	handler := NewUploadHandler(store)

	c, w := newUploadContext(t, "attachment", "pothole.jpg", []byte("jpegbytes"))

	handler.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.filename)
}

func TestUploadHandler_Upload_UnsupportedType(t *testing.T) {
	store := &mockObjectStore{}
	handler := NewUploadHandler(store)

	c, w := newUploadContext(t, "file", "report.pdf", []byte("%PDF"))

	handler.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.filename)
}

func TestUploadHandler_Upload_StoreFailure(t *testing.T) {
	store := &mockObjectStore{err: io.ErrClosedPipe}
	handler := NewUploadHandler(store)

	c, w := newUploadContext(t, "file", "pothole.png", []byte("pngbytes"))

	handler.Upload(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
