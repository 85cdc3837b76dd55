package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tandemchat/tandem/internal/api/handlers"
	"github.com/tandemchat/tandem/internal/testutil"
)

func TestMessageHandler_SendAndList(t *testing.T) {
	ts := testutil.NewTestServer(t, nil)

	user1, token1 := testutil.NewUserBuilder().WithUsername("user1").WithEmail("user1@example.com").BuildAndAuthenticate(t, ts)
	user2, token2 := testutil.NewUserBuilder().WithUsername("user2").WithEmail("user2@example.com").BuildAndAuthenticate(t, ts)
	_, outsiderToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	// user1 creates a room, user2 joins through the invite token.
	resp := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/chats/create"), token1, nil)
	var room handlers.ChatRoomResponse
	testutil.AssertJSONResponse(t, resp, &room)
	resp.Body.Close()

	resp = testutil.DoJSON(t, http.MethodPost, ts.APIURL("/chats/join/"+room.InviteToken), token2, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	t.Run("unknown room returns 404", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/messages/"+uuid.NewString()), token1,
			map[string]string{"content": "hello"})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("non-participant send returns 403", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/messages/"+room.ID), outsiderToken,
			map[string]string{"content": "let me in"})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("non-participant list returns 403", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodGet, ts.APIURL("/messages/"+room.ID), outsiderToken, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("end to end conversation", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/messages/"+room.ID), token1,
			map[string]string{"content": "Hello from User 1!"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var sent handlers.MessageResponse
		testutil.AssertJSONResponse(t, resp, &sent)
		resp.Body.Close()
		assert.Equal(t, user1.ID.String(), sent.SenderID)
		assert.Equal(t, "user1", sent.SenderUsername)

		resp = testutil.DoJSON(t, http.MethodPost, ts.APIURL("/messages/"+room.ID), token2,
			map[string]string{"content": "Hello from User 2!"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		resp = testutil.DoJSON(t, http.MethodGet, ts.APIURL("/messages/"+room.ID), token1, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var messages []handlers.MessageResponse
		testutil.AssertJSONResponse(t, resp, &messages)
		resp.Body.Close()

		require.Len(t, messages, 2)
		// Chronological order with the correct sender usernames.
		assert.Equal(t, "Hello from User 1!", messages[0].Content)
		assert.Equal(t, "user1", messages[0].SenderUsername)
		assert.Equal(t, "Hello from User 2!", messages[1].Content)
		assert.Equal(t, "user2", messages[1].SenderUsername)
		assert.Equal(t, user2.ID.String(), messages[1].SenderID)
	})

	t.Run("limit and before cursor", func(t *testing.T) {
		// Fetch the current two messages to get a cursor.
		resp := testutil.DoJSON(t, http.MethodGet, ts.APIURL("/messages/"+room.ID), token1, nil)
		var messages []handlers.MessageResponse
		testutil.AssertJSONResponse(t, resp, &messages)
		resp.Body.Close()
		require.Len(t, messages, 2)

		cursor := messages[1].CreatedAt.Format(time.RFC3339Nano)
		resp = testutil.DoJSON(t, http.MethodGet,
			ts.APIURL("/messages/"+room.ID+"?before="+cursor), token1, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var earlier []handlers.MessageResponse
		testutil.AssertJSONResponse(t, resp, &earlier)
		resp.Body.Close()

		require.Len(t, earlier, 1)
		assert.Equal(t, messages[0].ID, earlier[0].ID)

		resp = testutil.DoJSON(t, http.MethodGet,
			ts.APIURL("/messages/"+room.ID+"?limit=1"), token1, nil)
		var limited []handlers.MessageResponse
		testutil.AssertJSONResponse(t, resp, &limited)
		resp.Body.Close()

		require.Len(t, limited, 1)
		assert.Equal(t, messages[1].ID, limited[0].ID)
	})

	t.Run("invalid before cursor returns 400", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodGet,
			ts.APIURL("/messages/"+room.ID+"?before=yesterday"), token1, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
