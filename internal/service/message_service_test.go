package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tandemchat/tandem/internal/domain"
	"github.com/tandemchat/tandem/internal/repository/postgres"
	"github.com/tandemchat/tandem/internal/service"
	"github.com/tandemchat/tandem/internal/testutil"
)

func TestMessageService_Send(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	messageService := service.NewMessageService(repos.Message, repos.Room, repos.User)
	ctx := context.Background()

	creator, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	peer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	outsider, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	room := testutil.NewRoomBuilder().WithCreator(creator).WithParticipant(peer).Build(t, testDB.DB)

	t.Run("unknown room", func(t *testing.T) {
		_, err := messageService.Send(ctx, uuid.New(), creator, "hello")
		assert.ErrorIs(t, err, domain.ErrRoomNotFound)
	})

	t.Run("non-participant is rejected", func(t *testing.T) {
		_, err := messageService.Send(ctx, room.ID, outsider, "hello")
		assert.ErrorIs(t, err, domain.ErrNotParticipant)
	})

	t.Run("participant sends", func(t *testing.T) {
		view, err := messageService.Send(ctx, room.ID, creator, "hello there")
		require.NoError(t, err)
		assert.Equal(t, "hello there", view.Message.Content)
		assert.Equal(t, creator.ID, view.Message.SenderID)
		assert.Equal(t, creator.Username, view.SenderUsername)
	})
}

func TestMessageService_List(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	messageService := service.NewMessageService(repos.Message, repos.Room, repos.User)
	ctx := context.Background()

	creator, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	peer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	outsider, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	room := testutil.NewRoomBuilder().WithCreator(creator).WithParticipant(peer).Build(t, testDB.DB)

	base := time.Now().UTC().Add(-time.Hour)
	contents := []string{"m1", "m2", "m3", "m4", "m5"}
	for i, content := range contents {
		sender := creator
		if i%2 == 1 {
			sender = peer
		}
		testutil.NewMessageBuilder(room.ID, sender.ID).
			WithContent(content).
			WithCreatedAt(base.Add(time.Duration(i) * time.Minute)).
			Build(t, testDB.DB)
	}

	t.Run("non-participant is rejected", func(t *testing.T) {
		_, err := messageService.List(ctx, room.ID, outsider, 0, nil)
		assert.ErrorIs(t, err, domain.ErrNotParticipant)
	})

	t.Run("full history in chronological order", func(t *testing.T) {
		views, err := messageService.List(ctx, room.ID, creator, 100, nil)
		require.NoError(t, err)
		require.Len(t, views, len(contents))
		for i, view := range views {
			assert.Equal(t, contents[i], view.Message.Content)
		}
		assert.Equal(t, creator.Username, views[0].SenderUsername)
		assert.Equal(t, peer.Username, views[1].SenderUsername)
	})

	t.Run("limit keeps the newest messages", func(t *testing.T) {
		views, err := messageService.List(ctx, room.ID, creator, 2, nil)
		require.NoError(t, err)
		require.Len(t, views, 2)
		// Still chronological, but trimmed to the latest two.
		assert.Equal(t, "m4", views[0].Message.Content)
		assert.Equal(t, "m5", views[1].Message.Content)
	})

	t.Run("before cursor is strictly exclusive", func(t *testing.T) {
		cursor := base.Add(2 * time.Minute) // m3's timestamp
		views, err := messageService.List(ctx, room.ID, creator, 100, &cursor)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "m1", views[0].Message.Content)
		assert.Equal(t, "m2", views[1].Message.Content)
	})

	t.Run("deleted sender resolves to Unknown", func(t *testing.T) {
		require.NoError(t, testDB.DB.Delete(&domain.User{}, "id = ?", peer.ID).Error)

		views, err := messageService.List(ctx, room.ID, creator, 100, nil)
		require.NoError(t, err)
		for _, view := range views {
			if view.Message.SenderID == peer.ID {
				assert.Equal(t, service.UnknownSender, view.SenderUsername)
			} else {
				assert.Equal(t, creator.Username, view.SenderUsername)
			}
		}
	})
}
