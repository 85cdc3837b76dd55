package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tandemchat/tandem/internal/repository/postgres"
	"github.com/tandemchat/tandem/internal/testutil"
)

func TestMessageRepository_ListByChat(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewMessageRepository(testDB.DB)
	ctx := context.Background()

	creator, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	peer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	room := testutil.NewRoomBuilder().WithCreator(creator).WithParticipant(peer).Build(t, testDB.DB)
	otherRoom := testutil.NewRoomBuilder().WithCreator(creator).Build(t, testDB.DB)

	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Microsecond)
	for i := 0; i < 5; i++ {
		testutil.NewMessageBuilder(room.ID, creator.ID).
			WithContent(string(rune('a' + i))).
			WithCreatedAt(base.Add(time.Duration(i) * time.Second)).
			Build(t, testDB.DB)
	}
	testutil.NewMessageBuilder(otherRoom.ID, creator.ID).
		WithContent("elsewhere").
		WithCreatedAt(base).
		Build(t, testDB.DB)

	t.Run("newest first, scoped to the room", func(t *testing.T) {
		messages, err := repo.ListByChat(ctx, room.ID, 100, nil)
		require.NoError(t, err)
		require.Len(t, messages, 5)
		assert.Equal(t, "e", messages[0].Content)
		assert.Equal(t, "a", messages[4].Content)
	})

	t.Run("limit trims older messages", func(t *testing.T) {
		messages, err := repo.ListByChat(ctx, room.ID, 2, nil)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, "e", messages[0].Content)
		assert.Equal(t, "d", messages[1].Content)
	})

	t.Run("before excludes the cursor timestamp itself", func(t *testing.T) {
		cursor := base.Add(2 * time.Second)
		messages, err := repo.ListByChat(ctx, room.ID, 100, &cursor)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, "b", messages[0].Content)
		assert.Equal(t, "a", messages[1].Content)
	})

	t.Run("identical timestamps stay in a stable order", func(t *testing.T) {
		tieRoom := testutil.NewRoomBuilder().WithCreator(creator).Build(t, testDB.DB)
		ts := base.Add(10 * time.Minute)
		for i := 0; i < 3; i++ {
			testutil.NewMessageBuilder(tieRoom.ID, creator.ID).
				WithContent("tied").
				WithCreatedAt(ts).
				Build(t, testDB.DB)
		}

		first, err := repo.ListByChat(ctx, tieRoom.ID, 100, nil)
		require.NoError(t, err)
		second, err := repo.ListByChat(ctx, tieRoom.ID, 100, nil)
		require.NoError(t, err)

		require.Len(t, first, 3)
		for i := range first {
			assert.Equal(t, first[i].ID, second[i].ID)
		}
	})
}
