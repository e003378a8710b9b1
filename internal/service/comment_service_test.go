package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Lio2412/recipe_go_server/internal/model"
	"github.com/Lio2412/recipe_go_server/internal/model/dto"
	"github.com/Lio2412/recipe_go_server/internal/repository"
	"github.com/Lio2412/recipe_go_server/internal/testutil"
)

func setupCommentService(t *testing.T) (*CommentService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	commentRepo := repository.NewCommentRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	service := NewCommentService(commentRepo, recipeRepo, articleRepo, nil)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}
	return service, db, cleanup
}

func TestCommentService_Create_Success(t *testing.T) {
	service, db, cleanup := setupCommentService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	recipe := testutil.TestRecipe(t, db, user.ID)

	req := &dto.CreateCommentRequest{
		Content:     "太好吃了",
		AuthorName:  "小林",
		AuthorEmail: "lin@example.com",
		TargetType:  model.TargetTypeRecipe,
		TargetID:    recipe.ID,
	}

	item, err := service.Create(req)
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.Equal(t, "太好吃了", item.Content)
	// 新评论进入待审核状态
	assert.Equal(t, model.CommentStatusPending, item.Status)
	assert.Equal(t, int64(0), item.ReplyCount)
}

func TestCommentService_Create_TargetNotFound(t *testing.T) {
	service, _, cleanup := setupCommentService(t)
	defer cleanup()

	req := &dto.CreateCommentRequest{
		Content:     "评论内容",
		AuthorName:  "小林",
		AuthorEmail: "lin@example.com",
		TargetType:  model.TargetTypeRecipe,
		TargetID:    99999,
	}

	_, err := service.Create(req)
	assert.ErrorIs(t, err, ErrTargetNotFound)
}

func TestCommentService_Create_InvalidTargetType(t *testing.T) {
	service, _, cleanup := setupCommentService(t)
	defer cleanup()

	req := &dto.CreateCommentRequest{
		Content:     "评论内容",
		AuthorName:  "小林",
		AuthorEmail: "lin@example.com",
		TargetType:  "video",
		TargetID:    1,
	}

	_, err := service.Create(req)
	assert.ErrorIs(t, err, ErrInvalidTargetType)
}

func TestCommentService_Create_Reply(t *testing.T) {
	service, db, cleanup := setupCommentService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	recipe := testutil.TestRecipe(t, db, user.ID)
	parent := testutil.TestComment(t, db, model.TargetTypeRecipe, recipe.ID)

	req := &dto.CreateCommentRequest{
		Content:     "同感",
		AuthorName:  "小王",
		AuthorEmail: "wang@example.com",
		TargetType:  model.TargetTypeRecipe,
		TargetID:    recipe.ID,
		ParentID:    &parent.ID,
	}

	item, err := service.Create(req)
	require.NoError(t, err)
	require.NotNil(t, item.ParentID)
	assert.Equal(t, parent.ID, *item.ParentID)
}

func TestCommentService_Create_ParentNotFound(t *testing.T) {
	service, db, cleanup := setupCommentService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	recipe := testutil.TestRecipe(t, db, user.ID)

	missing := int64(99999)
	req := &dto.CreateCommentRequest{
		Content:     "同感",
		AuthorName:  "小王",
		AuthorEmail: "wang@example.com",
		TargetType:  model.TargetTypeRecipe,
		TargetID:    recipe.ID,
		ParentID:    &missing,
	}

	_, err := service.Create(req)
	assert.ErrorIs(t, err, ErrParentNotFound)
}

func TestCommentService_Create_ParentMismatch(t *testing.T) {
	service, db, cleanup := setupCommentService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	recipe := testutil.TestRecipe(t, db, user.ID)
	other := testutil.TestRecipe(t, db, user.ID)
	parent := testutil.TestComment(t, db, model.TargetTypeRecipe, other.ID)

	req := &dto.CreateCommentRequest{
		Content:     "同感",
		AuthorName:  "小王",
		AuthorEmail: "wang@example.com",
		TargetType:  model.TargetTypeRecipe,
		TargetID:    recipe.ID,
		ParentID:    &parent.ID,
	}

	_, err := service.Create(req)
	assert.ErrorIs(t, err, ErrParentMismatch)
}

func TestCommentService_Create_ReplyToReplyRejected(t *testing.T) {
	service, db, cleanup := setupCommentService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	recipe := testutil.TestRecipe(t, db, user.ID)
	parent := testutil.TestComment(t, db, model.TargetTypeRecipe, recipe.ID)
	reply := testutil.TestReply(t, db, parent)

	req := &dto.CreateCommentRequest{
		Content:     "再回一层",
		AuthorName:  "小王",
		AuthorEmail: "wang@example.com",
		TargetType:  model.TargetTypeRecipe,
		TargetID:    recipe.ID,
		ParentID:    &reply.ID,
	}

	// 只支持一级回复
	_, err := service.Create(req)
	assert.ErrorIs(t, err, ErrReplyTooDeep)
}

func TestCommentService_GetReplies(t *testing.T) {
	service, db, cleanup := setupCommentService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	recipe := testutil.TestRecipe(t, db, user.ID)
	parent := testutil.TestComment(t, db, model.TargetTypeRecipe, recipe.ID)
	r1 := testutil.TestReply(t, db, parent, testutil.WithCommentContent("第一条"))
	r2 := testutil.TestReply(t, db, parent, testutil.WithCommentContent("第二条"))

	replies, err := service.GetReplies(parent.ID)
	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Equal(t, r1.ID, replies[0].ID)
	assert.Equal(t, r2.ID, replies[1].ID)
}

func TestCommentService_GetReplies_UnknownIDReturnsEmpty(t *testing.T) {
	service, _, cleanup := setupCommentService(t)
	defer cleanup()

	replies, err := service.GetReplies(99999)
	require.NoError(t, err)
	assert.Empty(t, replies)
}

func TestCommentService_GetParent(t *testing.T) {
	service, db, cleanup := setupCommentService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	recipe := testutil.TestRecipe(t, db, user.ID)
	parent := testutil.TestComment(t, db, model.TargetTypeRecipe, recipe.ID)
	reply := testutil.TestReply(t, db, parent)

	got, err := service.GetParent(reply.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, parent.ID, got.ID)
	assert.Equal(t, int64(1), got.ReplyCount)

	// 顶层评论没有父评论
	got, err = service.GetParent(parent.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// 未知 ID 返回 nil 而非错误
	got, err = service.GetParent(99999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCommentService_Get_WithParentSummary(t *testing.T) {
	service, db, cleanup := setupCommentService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	recipe := testutil.TestRecipe(t, db, user.ID)
	parent := testutil.TestComment(t, db, model.TargetTypeRecipe, recipe.ID,
		testutil.WithCommentContent("父评论内容"))
	reply := testutil.TestReply(t, db, parent)

	item, err := service.Get(reply.ID)
	require.NoError(t, err)
	require.NotNil(t, item.Parent)
	assert.Equal(t, parent.ID, item.Parent.ID)
	assert.Equal(t, "父评论内容", item.Parent.Content)
}

func TestCommentService_List_ByStatus(t *testing.T) {
	service, db, cleanup := setupCommentService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	recipe := testutil.TestRecipe(t, db, user.ID)
	testutil.TestComment(t, db, model.TargetTypeRecipe, recipe.ID,
		testutil.WithCommentStatus(model.CommentStatusApproved))
	testutil.TestComment(t, db, model.TargetTypeRecipe, recipe.ID,
		testutil.WithCommentStatus(model.CommentStatusPending))

	items, total, err := service.List(&dto.CommentListQuery{
		Status:   model.CommentStatusApproved,
		Page:     1,
		PageSize: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, model.CommentStatusApproved, items[0].Status)
}

func TestCommentService_List_BySearch(t *testing.T) {
	service, db, cleanup := setupCommentService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	recipe := testutil.TestRecipe(t, db, user.ID)
	testutil.TestComment(t, db, model.TargetTypeRecipe, recipe.ID,
		testutil.WithCommentContent("这个蛋糕配方很棒"))
	testutil.TestComment(t, db, model.TargetTypeRecipe, recipe.ID,
		testutil.WithCommentContent("面包烤糊了"))

	items, total, err := service.List(&dto.CommentListQuery{
		Search:   "蛋糕",
		Page:     1,
		PageSize: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Contains(t, items[0].Content, "蛋糕")
}

func TestCommentService_List_WithReplyCountsAndParents(t *testing.T) {
	service, db, cleanup := setupCommentService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	recipe := testutil.TestRecipe(t, db, user.ID)
	parent := testutil.TestComment(t, db, model.TargetTypeRecipe, recipe.ID)
	testutil.TestReply(t, db, parent)
	testutil.TestReply(t, db, parent)

	items, total, err := service.List(&dto.CommentListQuery{
		TargetType: model.TargetTypeRecipe,
		TargetID:   recipe.ID,
		Page:       1,
		PageSize:   20,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	byID := make(map[int64]*dto.CommentItem)
	for _, item := range items {
		byID[item.ID] = item
	}
	require.Contains(t, byID, parent.ID)
	assert.Equal(t, int64(2), byID[parent.ID].ReplyCount)

	for _, item := range items {
		if item.ParentID != nil {
			require.NotNil(t, item.Parent)
			assert.Equal(t, parent.ID, item.Parent.ID)
		}
	}
}

func TestCommentService_List_InvalidDate(t *testing.T) {
	service, _, cleanup := setupCommentService(t)
	defer cleanup()

	_, _, err := service.List(&dto.CommentListQuery{
		DateFrom: "not-a-date",
		Page:     1,
		PageSize: 20,
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}
