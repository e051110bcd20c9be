package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/topicboard/engine/internal/models"
	appErr "github.com/topicboard/engine/pkg/errors"
	"github.com/topicboard/engine/pkg/pagination"
)

func TestCommentListOldestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewCommentRepository(db)

	author := mustCreateUser(t, db, "author", models.RoleUser)
	post := mustCreatePost(t, db, author.ID, "thread")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		c := models.Comment{
			PostID:    post.ID,
			AuthorID:  author.ID,
			Content:   fmt.Sprintf("reply %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&c).Error)
	}

	p, _ := pagination.NewParams(1, 20)
	comments, page, err := repo.ListByPost(ctx, post.ID, p)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	require.EqualValues(t, 3, page.Total)
	require.Equal(t, "reply 0", comments[0].Content)
	require.Equal(t, "reply 2", comments[2].Content)
}

func TestCommentSoftDeleteHidesFromList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewCommentRepository(db)

	author := mustCreateUser(t, db, "author", models.RoleUser)
	post := mustCreatePost(t, db, author.ID, "thread")

	c := models.Comment{PostID: post.ID, AuthorID: author.ID, Content: "gone soon"}
	require.NoError(t, db.Create(&c).Error)

	require.NoError(t, repo.SoftDelete(ctx, c.ID))
	require.NoError(t, repo.SoftDelete(ctx, c.ID))

	p, _ := pagination.NewParams(1, 20)
	comments, page, err := repo.ListByPost(ctx, post.ID, p)
	require.NoError(t, err)
	require.Empty(t, comments)
	require.EqualValues(t, 0, page.Total)

	var any models.Comment
	require.NoError(t, repo.GetAny(ctx, c.ID, &any))
	require.True(t, any.IsDeleted)
}

func TestCommentSoftDeleteMissingRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)

	err := repo.SoftDelete(context.Background(), 777)
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}
