package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/request-desk/internal/domain"
	"github.com/spec-kit/request-desk/internal/events"
	apperrors "github.com/spec-kit/request-desk/pkg/util/errorutil"
)

func TestAddCommentRejectsBlankContent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.create(t, requester, "x")

	_, err := f.comments.AddComment(ctx, requester, req.ID, " \n\t ")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	list, err := f.comments.ListComments(ctx, req.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAddCommentAppendsExactlyOne(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.create(t, requester, "x")

	before, err := f.comments.ListComments(ctx, req.ID)
	require.NoError(t, err)

	comment, err := f.comments.AddComment(ctx, handler, req.ID, "  확인 중입니다.  ")
	require.NoError(t, err)
	assert.Equal(t, "확인 중입니다.", comment.Content)
	assert.Equal(t, handler.Name, comment.UserName)
	assert.Equal(t, domain.RoleHandler, comment.UserRole)
	assert.Regexp(t, `^comment-\d+-[0-9a-f]{8}$`, comment.ID)

	after, err := f.comments.ListComments(ctx, req.ID)
	require.NoError(t, err)
	assert.Len(t, after, len(before)+1)
	require.Len(t, f.eventsOf(events.EventCommentAdded), 1)
}

func TestCommentsKeepInsertionOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.create(t, requester, "x")
	other := f.create(t, requester, "y")

	first, err := f.comments.AddComment(ctx, requester, req.ID, "first")
	require.NoError(t, err)
	_, err = f.comments.AddComment(ctx, admin, other.ID, "elsewhere")
	require.NoError(t, err)
	second, err := f.comments.AddComment(ctx, approver, req.ID, "second")
	require.NoError(t, err)

	list, err := f.comments.ListComments(ctx, req.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
	assert.NotEqual(t, list[0].ID, list[1].ID)
}

func TestCommentsOnUnknownRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.comments.AddComment(ctx, requester, "req-missing", "hello")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	_, err = f.comments.ListComments(ctx, "req-missing")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestListCategories(t *testing.T) {
	f := newFixture(t)
	categories, err := f.categories.ListCategories(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, categories)
	assert.Equal(t, "하드웨어", categories[0].MajorCategory)
}
