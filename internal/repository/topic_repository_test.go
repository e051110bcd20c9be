package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/topicboard/engine/internal/models"
	appErr "github.com/topicboard/engine/pkg/errors"
)

func TestTopicCreateDuplicateName(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewTopicRepository(db)

	require.NoError(t, repo.Create(ctx, &models.Topic{Name: "books"}))
	err := repo.Create(ctx, &models.Topic{Name: "books"})
	require.Error(t, err)
	require.True(t, appErr.IsCode(err, appErr.CodeConflict))
}

func TestTopicStats(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewTopicRepository(db)

	topic := mustCreateTopic(t, db, "films")
	for i, score := range []int{5, 4, 3} {
		user := mustCreateUser(t, db, "viewer"+string(rune('0'+i)), models.RoleUser)
		require.NoError(t, db.Create(&models.Rating{UserID: user.ID, TopicID: topic.ID, Score: score}).Error)
	}

	stats, err := repo.Stats(ctx, topic.ID)
	require.NoError(t, err)
	require.Equal(t, topic.ID, stats.TopicID)
	require.EqualValues(t, 3, stats.RatingCount)
	require.NotNil(t, stats.AvgScore)
	require.InDelta(t, 4.0, *stats.AvgScore, 1e-9)
}

func TestTopicStatsNoRatings(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewTopicRepository(db)

	topic := mustCreateTopic(t, db, "silence")
	stats, err := repo.Stats(ctx, topic.ID)
	require.NoError(t, err)
	require.Nil(t, stats.AvgScore)
	require.EqualValues(t, 0, stats.RatingCount)
}

func TestTopicStatsMissingTopic(t *testing.T) {
	db := newTestDB(t)
	repo := NewTopicRepository(db)

	_, err := repo.Stats(context.Background(), 9999)
	require.Error(t, err)
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}
