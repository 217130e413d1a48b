package notes

import (
	"net/http"
	"testing"
	"time"

	"note-ledger/cmd/server/testutil"
	"note-ledger/internal/domain"
	"note-ledger/internal/services/folders"
	"note-ledger/internal/services/notes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type fixture struct {
	app   *fiber.App
	stack *testutil.Stack
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	stack := testutil.NewStack(t)
	h := NewHandlers(stack.Notes, testutil.CreateTestValidator(t))

	app := testutil.CreateTestApp(t)
	g := app.Group("/folders/:folderId/notes", testutil.SetupJWTMiddleware(t))
	g.Post("/", h.Create)
	g.Get("/", h.List)
	g.Get("/:noteId", h.Get)
	g.Put("/:noteId", h.Update)
	g.Delete("/:noteId", h.Delete)
	return &fixture{app: app, stack: stack}
}

func (f *fixture) folder(t *testing.T, owner string) string {
	t.Helper()
	folder, err := f.stack.Folders.Create(t.Context(), owner, folders.CreateFolderRequest{Name: "inbox"})
	require.NoError(t, err)
	return folder.ID.Hex()
}

func (f *fixture) do(t *testing.T, method, url string, body any, owner string) *http.Response {
	t.Helper()
	token := testutil.CreateTestJWT(t, owner, time.Hour)
	resp, err := f.app.Test(testutil.CreateAuthenticatedRequest(method, url, body, token))
	require.NoError(t, err)
	return resp
}

func (f *fixture) create(t *testing.T, owner, folderID string, body map[string]string) domain.Note {
	t.Helper()
	resp := f.do(t, "POST", "/folders/"+folderID+"/notes", body, owner)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var n domain.Note
	testutil.DecodeJSON(t, resp, &n)
	return n
}

func TestCreateNote(t *testing.T) {
	f := newFixture(t)
	folderID := f.folder(t, "alice")

	n := f.create(t, "alice", folderID, map[string]string{"title": "<h1>Groceries</h1>", "content": "milk"})
	assert.Equal(t, "Groceries", n.Title)
	assert.Equal(t, "milk", n.Content)
	assert.Equal(t, folderID, n.FolderID.Hex())
	assert.Equal(t, n.CreatedAt, n.LastUpdatedAt)

	resp := f.do(t, "POST", "/folders/"+folderID+"/notes", map[string]string{"content": "no title"}, "alice")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, "POST", "/folders/"+folderID+"/notes", map[string]string{"title": "x"}, "bob")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = f.do(t, "POST", "/folders/zzz/notes", map[string]string{"title": "x"}, "alice")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListNotes(t *testing.T) {
	f := newFixture(t)
	folderID := f.folder(t, "alice")
	other := f.folder(t, "alice")
	for _, title := range []string{"one", "two", "three"} {
		f.create(t, "alice", folderID, map[string]string{"title": title})
	}
	f.create(t, "alice", other, map[string]string{"title": "elsewhere"})

	resp := f.do(t, "GET", "/folders/"+folderID+"/notes?limit=2", nil, "alice")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var page notes.ListNotesResponse
	testutil.DecodeJSON(t, resp, &page)
	require.Len(t, page.Notes, 2)
	assert.Equal(t, "one", page.Notes[0].Title)
	assert.Equal(t, "two", page.Notes[1].Title)

	resp = f.do(t, "GET", "/folders/"+folderID+"/notes", nil, "bob")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = f.do(t, "GET", "/folders/"+folderID+"/notes?offset=50001", nil, "alice")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetNoteAcrossFolders(t *testing.T) {
	f := newFixture(t)
	folderID := f.folder(t, "alice")
	other := f.folder(t, "alice")
	n := f.create(t, "alice", folderID, map[string]string{"title": "t"})

	resp := f.do(t, "GET", "/folders/"+folderID+"/notes/"+n.ID.Hex(), nil, "alice")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = f.do(t, "GET", "/folders/"+other+"/notes/"+n.ID.Hex(), nil, "alice")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = f.do(t, "GET", "/folders/"+folderID+"/notes/"+bson.NewObjectID().Hex(), nil, "alice")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = f.do(t, "GET", "/folders/"+folderID+"/notes/"+n.ID.Hex(), nil, "mallory")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdateNoteKeepsOmittedFields(t *testing.T) {
	f := newFixture(t)
	folderID := f.folder(t, "alice")
	n := f.create(t, "alice", folderID, map[string]string{"title": "t", "content": "body"})

	resp := f.do(t, "PUT", "/folders/"+folderID+"/notes/"+n.ID.Hex(), map[string]string{"title": "t2"}, "alice")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got domain.Note
	testutil.DecodeJSON(t, resp, &got)
	assert.Equal(t, "t2", got.Title)
	assert.Equal(t, "body", got.Content)
	assert.False(t, got.LastUpdatedAt.Before(n.LastUpdatedAt))

	resp = f.do(t, "PUT", "/folders/"+folderID+"/notes/"+bson.NewObjectID().Hex(), map[string]string{"title": "x"}, "alice")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = f.do(t, "PUT", "/folders/"+folderID+"/notes/"+n.ID.Hex(), map[string]string{"title": "x"}, "bob")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteNote(t *testing.T) {
	f := newFixture(t)
	folderID := f.folder(t, "alice")
	n := f.create(t, "alice", folderID, map[string]string{"title": "t"})

	resp := f.do(t, "DELETE", "/folders/"+folderID+"/notes/"+n.ID.Hex(), nil, "bob")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = f.do(t, "DELETE", "/folders/"+folderID+"/notes/"+n.ID.Hex(), nil, "alice")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = f.do(t, "DELETE", "/folders/"+folderID+"/notes/"+n.ID.Hex(), nil, "alice")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = f.do(t, "GET", "/folders/"+folderID+"/notes/"+n.ID.Hex(), nil, "alice")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
