package events

import (
	"net/http"
	"testing"
	"time"

	"note-ledger/cmd/server/testutil"
	"note-ledger/internal/domain"
	"note-ledger/internal/services/events"
	"note-ledger/internal/services/folders"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T) (*fiber.App, *testutil.Stack) {
	t.Helper()
	stack := testutil.NewStack(t)
	h := NewHandlers(stack.Events, testutil.CreateTestValidator(t))

	app := testutil.CreateTestApp(t)
	app.Get("/events", testutil.SetupJWTMiddleware(t), h.List)
	return app, stack
}

func get(t *testing.T, app *fiber.App, url string) *http.Response {
	t.Helper()
	token := testutil.CreateTestJWT(t, "auditor", time.Hour)
	resp, err := app.Test(testutil.CreateAuthenticatedRequest("GET", url, nil, token))
	require.NoError(t, err)
	return resp
}

func TestListEventsNewestFirst(t *testing.T) {
	app, stack := setupApp(t)
	ctx := t.Context()

	a, err := stack.Folders.Create(ctx, "alice", folders.CreateFolderRequest{Name: "a"})
	require.NoError(t, err)
	_, err = stack.Folders.Create(ctx, "bob", folders.CreateFolderRequest{Name: "b"})
	require.NoError(t, err)
	_, err = stack.Folders.Delete(ctx, "alice", a.ID.Hex())
	require.NoError(t, err)

	resp := get(t, app, "/events")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var page events.ListEventsResponse
	testutil.DecodeJSON(t, resp, &page)
	require.Len(t, page.Events, 3)
	assert.Equal(t, domain.FolderDeleted, page.Events[0].Type)
	assert.Equal(t, domain.FolderCreated, page.Events[2].Type)
	assert.Equal(t, 20, page.Limit)

	resp = get(t, app, "/events?aggregate_id="+a.ID.Hex())
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	testutil.DecodeJSON(t, resp, &page)
	require.Len(t, page.Events, 2)
	for _, ev := range page.Events {
		assert.Equal(t, a.ID.Hex(), ev.AggregateID)
	}

	resp = get(t, app, "/events?limit=1&offset=2")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	testutil.DecodeJSON(t, resp, &page)
	require.Len(t, page.Events, 1)
	assert.Equal(t, "a", page.Events[0].Payload["name"])
}

func TestListEventsRejectsBadQuery(t *testing.T) {
	app, _ := setupApp(t)

	for _, q := range []string{"limit=0", "limit=500", "offset=-3", "aggregate_id=nope"} {
		resp := get(t, app, "/events?"+q)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, q)
	}
}

func TestListEventsEmpty(t *testing.T) {
	app, _ := setupApp(t)

	resp := get(t, app, "/events")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body map[string]any
	testutil.DecodeJSON(t, resp, &body)
	assert.Equal(t, []any{}, body["events"])
}
