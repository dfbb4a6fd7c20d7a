package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"perfumism/internal/apperror"
	"perfumism/internal/microservices/http-api/dto"
	"perfumism/internal/microservices/http-api/handler"
	"perfumism/internal/microservices/http-api/middleware"
	"perfumism/internal/microservices/http-api/models"
	"perfumism/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testToken = "valid-token"
	testEmail = "member@perfumism.io"
)

// --- TOKEN VALIDATOR ---

type stubValidator struct{}

func (stubValidator) ValidateToken(token string) (*service.Claims, error) {
	if token != testToken {
		return nil, apperror.New(apperror.CodeInvalidToken)
	}
	return &service.Claims{Email: testEmail, Authority: "ROLE_USER"}, nil
}

// --- SETUP ---

func setupRouter(t *testing.T, handlers ...handler.RouteRegistrar) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	return handler.NewRouter(handler.RouterConfig{
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Auth:        middleware.AuthMiddleware(stubValidator{}),
		CORSOrigins: []string{"http://localhost:3000"},
	}, handlers...)
}

func newRequest(method, target, body string, authenticated bool) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	return req
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	RequestID string `json:"request_id"`
	Error     struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// --- MOCK SERVICES ---

type MockMemberService struct {
	mock.Mock
}

func (m *MockMemberService) Join(ctx context.Context, req dto.JoinRequest) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMemberService) CheckDuplicateEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemberService) CheckDuplicateUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemberService) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockMemberService) GetMyInfo(ctx context.Context, email string) (*dto.MemberInfoResponse, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MemberInfoResponse), args.Error(1)
}

func (m *MockMemberService) ChangePassword(ctx context.Context, email, newPassword string) error {
	return m.Called(ctx, email, newPassword).Error(0)
}

func (m *MockMemberService) Resign(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockMemberService) ChangeImage(ctx context.Context, email string, img service.ImageUpload) (string, error) {
	args := m.Called(ctx, email, img)
	return args.String(0), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.TokenPair, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenPair), args.Error(1)
}

func (m *MockAuthService) Reissue(ctx context.Context, refreshToken string) (*service.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenPair), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAuthService) IssueTokens(ctx context.Context, member *models.Member) (*service.TokenPair, error) {
	args := m.Called(ctx, member)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenPair), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

type MockOAuthService struct {
	mock.Mock
}

func (m *MockOAuthService) Login(ctx context.Context, provider, code string) (*service.TokenPair, error) {
	args := m.Called(ctx, provider, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenPair), args.Error(1)
}

type MockPerfumeService struct {
	mock.Mock
}

func (m *MockPerfumeService) ViewDetail(ctx context.Context, perfumeID int64) (*dto.PerfumeDetailResponse, error) {
	args := m.Called(ctx, perfumeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PerfumeDetailResponse), args.Error(1)
}

func (m *MockPerfumeService) List(ctx context.Context, page, pageSize int) (*dto.PaginatedResponse[dto.PerfumeResponse], error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedResponse[dto.PerfumeResponse]), args.Error(1)
}

func (m *MockPerfumeService) Like(ctx context.Context, email string, perfumeID int64) (int64, error) {
	args := m.Called(ctx, email, perfumeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPerfumeService) IsLiked(ctx context.Context, email string, perfumeID int64) (bool, error) {
	args := m.Called(ctx, email, perfumeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPerfumeService) Unlike(ctx context.Context, email string, perfumeID int64) error {
	return m.Called(ctx, email, perfumeID).Error(0)
}

func (m *MockPerfumeService) MyFavorites(ctx context.Context, email string, page, pageSize int) (*dto.PaginatedResponse[dto.PerfumeResponse], error) {
	args := m.Called(ctx, email, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedResponse[dto.PerfumeResponse]), args.Error(1)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Write(ctx context.Context, email string, perfumeID int64, grade int, content string) (int64, error) {
	args := m.Called(ctx, email, perfumeID, grade, content)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewService) ListByPerfume(ctx context.Context, perfumeID int64, page, pageSize int) (*dto.PaginatedResponse[dto.ReviewResponse], error) {
	args := m.Called(ctx, perfumeID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedResponse[dto.ReviewResponse]), args.Error(1)
}

func (m *MockReviewService) Change(ctx context.Context, email string, reviewID int64, grade int, content string) error {
	return m.Called(ctx, email, reviewID, grade, content).Error(0)
}

func (m *MockReviewService) Remove(ctx context.Context, email string, reviewID int64) error {
	return m.Called(ctx, email, reviewID).Error(0)
}

func (m *MockReviewService) MyReviews(ctx context.Context, email string, page, pageSize int) (*dto.PaginatedResponse[dto.ReviewResponse], error) {
	args := m.Called(ctx, email, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedResponse[dto.ReviewResponse]), args.Error(1)
}

func (m *MockReviewService) MyReviewOfPerfume(ctx context.Context, email string, perfumeID int64) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, email, perfumeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Like(ctx context.Context, email string, reviewID int64) (int64, error) {
	args := m.Called(ctx, email, reviewID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewService) IsLiked(ctx context.Context, email string, reviewID int64) (bool, error) {
	args := m.Called(ctx, email, reviewID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewService) Unlike(ctx context.Context, email string, reviewID int64) error {
	return m.Called(ctx, email, reviewID).Error(0)
}

type MockArticleService struct {
	mock.Mock
}

func (m *MockArticleService) Create(ctx context.Context, email string, req dto.ArticleRequest) (int64, error) {
	args := m.Called(ctx, email, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockArticleService) List(ctx context.Context, subject string, page, pageSize int) (*dto.PaginatedResponse[dto.ArticleResponse], error) {
	args := m.Called(ctx, subject, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedResponse[dto.ArticleResponse]), args.Error(1)
}

func (m *MockArticleService) Detail(ctx context.Context, articleID int64) (*dto.ArticleDetailResponse, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ArticleDetailResponse), args.Error(1)
}

func (m *MockArticleService) Update(ctx context.Context, email string, articleID int64, req dto.ArticleRequest) error {
	return m.Called(ctx, email, articleID, req).Error(0)
}

func (m *MockArticleService) Remove(ctx context.Context, email string, articleID int64) error {
	return m.Called(ctx, email, articleID).Error(0)
}

func (m *MockArticleService) UploadImages(ctx context.Context, email string, articleID int64, files []service.ImageUpload) ([]dto.ArticleImageResponse, error) {
	args := m.Called(ctx, email, articleID, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.ArticleImageResponse), args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) Write(ctx context.Context, email string, articleID int64, content string) (int64, error) {
	args := m.Called(ctx, email, articleID, content)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentService) List(ctx context.Context, articleID int64, page, pageSize int) (*dto.PaginatedResponse[dto.CommentResponse], error) {
	args := m.Called(ctx, articleID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedResponse[dto.CommentResponse]), args.Error(1)
}

func (m *MockCommentService) Update(ctx context.Context, email string, commentID int64, content string) error {
	return m.Called(ctx, email, commentID, content).Error(0)
}

func (m *MockCommentService) Remove(ctx context.Context, email string, commentID int64) error {
	return m.Called(ctx, email, commentID).Error(0)
}

type MockVoteService struct {
	mock.Mock
}

func (m *MockVoteService) Create(ctx context.Context, email string, articleID int64, req dto.CreateVoteRequest) (int64, error) {
	args := m.Called(ctx, email, articleID, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVoteService) Get(ctx context.Context, articleID int64) (*dto.VoteResponse, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.VoteResponse), args.Error(1)
}

func (m *MockVoteService) Participate(ctx context.Context, email string, articleID, voteItemID int64) error {
	return m.Called(ctx, email, articleID, voteItemID).Error(0)
}

func (m *MockVoteService) Cancel(ctx context.Context, email string, articleID int64) error {
	return m.Called(ctx, email, articleID).Error(0)
}

func (m *MockVoteService) MySelection(ctx context.Context, email string, articleID int64) (*dto.MySelectionResponse, error) {
	args := m.Called(ctx, email, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MySelectionResponse), args.Error(1)
}
