package attachments

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"note-ledger/cmd/server/testutil"
	"note-ledger/internal/services/attachments"
	"note-ledger/internal/services/notes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Upload(ctx context.Context, ownerID, folderID, noteID, name, contentType string, size int64, body io.Reader) (*attachments.UploadResponse, error) {
	args := m.Called(ctx, ownerID, folderID, noteID, name, contentType, size, body)
	if r := args.Get(0); r != nil {
		return r.(*attachments.UploadResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) Open(ctx context.Context, ownerID, fileID string) (*attachments.File, io.ReadCloser, error) {
	args := m.Called(ctx, ownerID, fileID)
	if f := args.Get(0); f != nil {
		return f.(*attachments.File), args.Get(1).(io.ReadCloser), args.Error(2)
	}
	return nil, nil, args.Error(2)
}

func setupApp(t *testing.T, svc Service) *fiber.App {
	t.Helper()
	h := NewHandlers(svc)
	app := testutil.CreateTestApp(t)
	jwt := testutil.SetupJWTMiddleware(t)
	app.Post("/folders/:folderId/notes/:noteId/attachments", jwt, h.Upload)
	app.Get("/attachments/:fileId", jwt, h.Download)
	return app
}

func uploadRequest(t *testing.T, field, name, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/folders/f1/notes/n1/attachments", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+testutil.CreateTestJWT(t, "alice", time.Hour))
	return req
}

func TestUploadAttachment(t *testing.T) {
	svc := new(MockService)
	svc.On("Upload", mock.Anything, "alice", "f1", "n1", "a.txt", mock.Anything, int64(5), mock.Anything).
		Return(&attachments.UploadResponse{URL: "/uploads/alice/x-a.txt"}, nil).Once()
	app := setupApp(t, svc)

	resp, err := app.Test(uploadRequest(t, "file", "a.txt", "hello"))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body attachments.UploadResponse
	testutil.DecodeJSON(t, resp, &body)
	assert.Equal(t, "/uploads/alice/x-a.txt", body.URL)
	svc.AssertExpectations(t)
}

func TestUploadAttachmentErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"empty", attachments.ErrEmptyFile, fiber.StatusBadRequest},
		{"too large", attachments.ErrTooLarge, fiber.StatusRequestEntityTooLarge},
		{"note missing", notes.ErrNoteNotFound, fiber.StatusNotFound},
		{"sink down", attachments.ErrUpload, fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(nil, tt.err).Once()
			app := setupApp(t, svc)

			resp, err := app.Test(uploadRequest(t, "file", "a.txt", "x"))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestUploadAttachmentMissingFile(t *testing.T) {
	svc := new(MockService)
	app := setupApp(t, svc)

	resp, err := app.Test(uploadRequest(t, "other", "a.txt", "x"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	svc.AssertNotCalled(t, "Upload")
}

func TestDownloadAttachment(t *testing.T) {
	svc := new(MockService)
	svc.On("Open", mock.Anything, "alice", "file1").
		Return(&attachments.File{ID: "file1", Name: "a.txt", ContentType: "text/plain", Size: 5}, io.NopCloser(strings.NewReader("hello")), nil).Once()
	svc.On("Open", mock.Anything, "alice", "file2").Return(nil, nil, attachments.ErrAttachmentNotFound).Once()
	svc.On("Open", mock.Anything, "alice", "file3").Return(nil, nil, attachments.ErrDownloadUnsupported).Once()
	app := setupApp(t, svc)

	get := func(id string) *http.Response {
		token := testutil.CreateTestJWT(t, "alice", time.Hour)
		resp, err := app.Test(testutil.CreateAuthenticatedRequest("GET", "/attachments/"+id, nil, token))
		require.NoError(t, err)
		return resp
	}

	resp := get("file1")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `"a.txt"`)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	assert.Equal(t, fiber.StatusNotFound, get("file2").StatusCode)
	assert.Equal(t, fiber.StatusNotImplemented, get("file3").StatusCode)
	svc.AssertExpectations(t)
}
