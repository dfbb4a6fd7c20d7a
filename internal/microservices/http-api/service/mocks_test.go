package service

import (
	"context"
	"io"
	"time"

	"perfumism/internal/events"
	"perfumism/internal/microservices/http-api/models"
	"perfumism/internal/oauth"
	"perfumism/internal/storage"

	"github.com/stretchr/testify/mock"
)

// fakeTransactor runs fn inline, no database involved
type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// MockMemberRepository mocks the MemberRepository interface
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) Create(ctx context.Context, member *models.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) Update(ctx context.Context, member *models.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) Delete(ctx context.Context, member *models.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) FindByID(ctx context.Context, id int64) (*models.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockMemberRepository) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockMemberRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemberRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

// MockRefreshTokenRepository mocks the RefreshTokenRepository interface
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Save(ctx context.Context, token *models.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Rotate(ctx context.Context, oldToken string, next *models.RefreshToken) error {
	args := m.Called(ctx, oldToken, next)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteByEmail(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// MockPerfumeRepository mocks the PerfumeRepository interface
type MockPerfumeRepository struct {
	mock.Mock
}

func (m *MockPerfumeRepository) FindByID(ctx context.Context, id int64) (*models.Perfume, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Perfume), args.Error(1)
}

func (m *MockPerfumeRepository) LockByID(ctx context.Context, id int64) (*models.Perfume, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Perfume), args.Error(1)
}

func (m *MockPerfumeRepository) List(ctx context.Context, page, pageSize int) ([]models.Perfume, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Perfume), args.Get(1).(int64), args.Error(2)
}

func (m *MockPerfumeRepository) ListByBrand(ctx context.Context, brandID, excludeID int64, limit int) ([]models.Perfume, error) {
	args := m.Called(ctx, brandID, excludeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Perfume), args.Error(1)
}

func (m *MockPerfumeRepository) ListLikedByMember(ctx context.Context, memberID int64, page, pageSize int) ([]models.Perfume, int64, error) {
	args := m.Called(ctx, memberID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Perfume), args.Get(1).(int64), args.Error(2)
}

func (m *MockPerfumeRepository) UpdateGradeStats(ctx context.Context, id int64, averageGrade float64, totalSurvey int64) error {
	args := m.Called(ctx, id, averageGrade, totalSurvey)
	return args.Error(0)
}

func (m *MockPerfumeRepository) UpdateTotalLike(ctx context.Context, id int64, totalLike int64) error {
	args := m.Called(ctx, id, totalLike)
	return args.Error(0)
}

// MockPerfumeLikeRepository mocks the PerfumeLikeRepository interface
type MockPerfumeLikeRepository struct {
	mock.Mock
}

func (m *MockPerfumeLikeRepository) Create(ctx context.Context, like *models.PerfumeLike) error {
	args := m.Called(ctx, like)
	return args.Error(0)
}

func (m *MockPerfumeLikeRepository) FindByMemberAndPerfume(ctx context.Context, memberID, perfumeID int64) (*models.PerfumeLike, error) {
	args := m.Called(ctx, memberID, perfumeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PerfumeLike), args.Error(1)
}

func (m *MockPerfumeLikeRepository) Delete(ctx context.Context, like *models.PerfumeLike) error {
	args := m.Called(ctx, like)
	return args.Error(0)
}

func (m *MockPerfumeLikeRepository) CountByPerfume(ctx context.Context, perfumeID int64) (int64, error) {
	args := m.Called(ctx, perfumeID)
	return args.Get(0).(int64), args.Error(1)
}

// MockReviewRepository mocks the ReviewRepository interface
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id int64) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) LockByID(ctx context.Context, id int64) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByMemberAndPerfume(ctx context.Context, memberID, perfumeID int64) (*models.Review, error) {
	args := m.Called(ctx, memberID, perfumeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByPerfume(ctx context.Context, perfumeID int64, page, pageSize int) ([]models.Review, int64, error) {
	args := m.Called(ctx, perfumeID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) ListByMember(ctx context.Context, memberID int64, page, pageSize int) ([]models.Review, int64, error) {
	args := m.Called(ctx, memberID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) GradeStats(ctx context.Context, perfumeID int64) (float64, int64, error) {
	args := m.Called(ctx, perfumeID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) UpdateTotalLike(ctx context.Context, id int64, totalLike int64) error {
	args := m.Called(ctx, id, totalLike)
	return args.Error(0)
}

// MockReviewLikeRepository mocks the ReviewLikeRepository interface
type MockReviewLikeRepository struct {
	mock.Mock
}

func (m *MockReviewLikeRepository) Create(ctx context.Context, like *models.ReviewLike) error {
	args := m.Called(ctx, like)
	return args.Error(0)
}

func (m *MockReviewLikeRepository) FindByMemberAndReview(ctx context.Context, memberID, reviewID int64) (*models.ReviewLike, error) {
	args := m.Called(ctx, memberID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewLike), args.Error(1)
}

func (m *MockReviewLikeRepository) Delete(ctx context.Context, like *models.ReviewLike) error {
	args := m.Called(ctx, like)
	return args.Error(0)
}

func (m *MockReviewLikeRepository) DeleteByReview(ctx context.Context, reviewID int64) error {
	args := m.Called(ctx, reviewID)
	return args.Error(0)
}

func (m *MockReviewLikeRepository) CountByReview(ctx context.Context, reviewID int64) (int64, error) {
	args := m.Called(ctx, reviewID)
	return args.Get(0).(int64), args.Error(1)
}

// MockArticleRepository mocks the ArticleRepository interface
type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepository) Delete(ctx context.Context, article *models.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepository) FindByID(ctx context.Context, id int64) (*models.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *MockArticleRepository) List(ctx context.Context, subject string, page, pageSize int) ([]models.Article, int64, error) {
	args := m.Called(ctx, subject, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Article), args.Get(1).(int64), args.Error(2)
}

func (m *MockArticleRepository) CreateImages(ctx context.Context, images []models.ArticleImage) error {
	args := m.Called(ctx, images)
	return args.Error(0)
}

func (m *MockArticleRepository) DeleteImages(ctx context.Context, articleID int64) error {
	args := m.Called(ctx, articleID)
	return args.Error(0)
}

func (m *MockArticleRepository) SetVoteExist(ctx context.Context, id int64, exist bool) error {
	args := m.Called(ctx, id, exist)
	return args.Error(0)
}

// MockCommentRepository mocks the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) DeleteByArticle(ctx context.Context, articleID int64) error {
	args := m.Called(ctx, articleID)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id int64) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByArticle(ctx context.Context, articleID int64, page, pageSize int) ([]models.Comment, int64, error) {
	args := m.Called(ctx, articleID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

// MockVoteRepository mocks the VoteRepository interface
type MockVoteRepository struct {
	mock.Mock
}

func (m *MockVoteRepository) Create(ctx context.Context, vote *models.Vote) error {
	args := m.Called(ctx, vote)
	return args.Error(0)
}

func (m *MockVoteRepository) FindByArticle(ctx context.Context, articleID int64) (*models.Vote, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vote), args.Error(1)
}

func (m *MockVoteRepository) DeleteByArticle(ctx context.Context, articleID int64) error {
	args := m.Called(ctx, articleID)
	return args.Error(0)
}

func (m *MockVoteRepository) LockItem(ctx context.Context, voteID, itemID int64) (*models.VoteItem, error) {
	args := m.Called(ctx, voteID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VoteItem), args.Error(1)
}

func (m *MockVoteRepository) UpdateItemCount(ctx context.Context, itemID int64, count int64) error {
	args := m.Called(ctx, itemID, count)
	return args.Error(0)
}

func (m *MockVoteRepository) CreateMember(ctx context.Context, member *models.VoteMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockVoteRepository) FindMember(ctx context.Context, voteID, memberID int64) (*models.VoteMember, error) {
	args := m.Called(ctx, voteID, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VoteMember), args.Error(1)
}

func (m *MockVoteRepository) DeleteMember(ctx context.Context, member *models.VoteMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockVoteRepository) CountItemMembers(ctx context.Context, itemID int64) (int64, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(int64), args.Error(1)
}

// MockStorage mocks storage.Storage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Put(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) (storage.ObjectInfo, error) {
	args := m.Called(ctx, key, r, opt)
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockPerfumeCache mocks PerfumeDetailCache
type MockPerfumeCache struct {
	mock.Mock
}

func (m *MockPerfumeCache) GetDetail(ctx context.Context, perfumeID int64, dst any) (bool, error) {
	args := m.Called(ctx, perfumeID, dst)
	return args.Bool(0), args.Error(1)
}

func (m *MockPerfumeCache) SetDetail(ctx context.Context, perfumeID int64, v any) error {
	args := m.Called(ctx, perfumeID, v)
	return args.Error(0)
}

func (m *MockPerfumeCache) Invalidate(ctx context.Context, perfumeID int64) error {
	args := m.Called(ctx, perfumeID)
	return args.Error(0)
}

// MockPublisher mocks events.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event events.ReviewEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

// stubProvider is an oauth.Provider returning a canned profile or error
type stubProvider struct {
	name       string
	socialType string
	profile    *oauth.Profile
	err        error
}

func (p *stubProvider) Name() string       { return p.name }
func (p *stubProvider) SocialType() string { return p.socialType }

func (p *stubProvider) Exchange(ctx context.Context, code string) (*oauth.Profile, error) {
	return p.profile, p.err
}

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
