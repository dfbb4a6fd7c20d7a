package service

import (
	"context"
	"log/slog"
	"strings"

	"perfumism/database"
	"perfumism/internal/apperror"
	"perfumism/internal/microservices/http-api/dto"
	"perfumism/internal/microservices/http-api/models"
	"perfumism/internal/microservices/http-api/repository"
	"perfumism/internal/storage"
)

type ArticleService interface {
	Create(ctx context.Context, email string, req dto.ArticleRequest) (int64, error)
	List(ctx context.Context, subject string, page, pageSize int) (*dto.PaginatedResponse[dto.ArticleResponse], error)
	Detail(ctx context.Context, articleID int64) (*dto.ArticleDetailResponse, error)
	Update(ctx context.Context, email string, articleID int64, req dto.ArticleRequest) error
	Remove(ctx context.Context, email string, articleID int64) error
	UploadImages(ctx context.Context, email string, articleID int64, files []ImageUpload) ([]dto.ArticleImageResponse, error)
}

type articleService struct {
	tx          database.Transactor
	memberRepo  repository.MemberRepository
	articleRepo repository.ArticleRepository
	commentRepo repository.CommentRepository
	voteRepo    repository.VoteRepository
	images      *imageUploader
}

func NewArticleService(
	tx database.Transactor,
	memberRepo repository.MemberRepository,
	articleRepo repository.ArticleRepository,
	commentRepo repository.CommentRepository,
	voteRepo repository.VoteRepository,
	store storage.Storage,
	maxImageSize int64,
	logger *slog.Logger,
) ArticleService {
	return &articleService{
		tx:          tx,
		memberRepo:  memberRepo,
		articleRepo: articleRepo,
		commentRepo: commentRepo,
		voteRepo:    voteRepo,
		images:      newImageUploader(store, maxImageSize, logger),
	}
}

func (s *articleService) Create(ctx context.Context, email string, req dto.ArticleRequest) (int64, error) {
	subject := strings.ToUpper(strings.TrimSpace(req.Subject))
	if !models.ValidSubject(subject) {
		return 0, apperror.New(apperror.CodeArticleSubjectInvalid)
	}

	member, err := findMember(ctx, s.memberRepo, email)
	if err != nil {
		return 0, err
	}

	article := &models.Article{
		MemberID: member.ID,
		Subject:  subject,
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
	}
	if err := s.articleRepo.Create(ctx, article); err != nil {
		return 0, err
	}
	return article.ID, nil
}

// List returns articles newest first. An empty subject lists every subject.
func (s *articleService) List(ctx context.Context, subject string, page, pageSize int) (*dto.PaginatedResponse[dto.ArticleResponse], error) {
	subject = strings.ToUpper(strings.TrimSpace(subject))
	if subject != "" && !models.ValidSubject(subject) {
		return nil, apperror.New(apperror.CodeArticleSubjectInvalid)
	}

	articles, total, err := s.articleRepo.List(ctx, subject, page, pageSize)
	if err != nil {
		return nil, err
	}

	data := make([]dto.ArticleResponse, 0, len(articles))
	for i := range articles {
		data = append(data, dto.FromModelToArticleResponse(&articles[i]))
	}
	return dto.NewPaginatedResponse(data, int(total), page, pageSize), nil
}

func (s *articleService) Detail(ctx context.Context, articleID int64) (*dto.ArticleDetailResponse, error) {
	article, err := s.articleRepo.FindByID(ctx, articleID)
	if err != nil {
		return nil, notFoundAs(err, apperror.CodeArticleNotFound)
	}
	return dto.FromModelToArticleDetailResponse(article), nil
}

func (s *articleService) Update(ctx context.Context, email string, articleID int64, req dto.ArticleRequest) error {
	subject := strings.ToUpper(strings.TrimSpace(req.Subject))
	if !models.ValidSubject(subject) {
		return apperror.New(apperror.CodeArticleSubjectInvalid)
	}

	article, err := s.ownArticle(ctx, email, articleID)
	if err != nil {
		return err
	}

	article.Subject = subject
	article.Title = strings.TrimSpace(req.Title)
	article.Content = req.Content
	return s.articleRepo.Update(ctx, article)
}

// Remove soft-deletes the article with its comments, images and vote
func (s *articleService) Remove(ctx context.Context, email string, articleID int64) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		article, err := s.ownArticle(ctx, email, articleID)
		if err != nil {
			return err
		}

		if err := s.commentRepo.DeleteByArticle(ctx, article.ID); err != nil {
			return err
		}
		if err := s.articleRepo.DeleteImages(ctx, article.ID); err != nil {
			return err
		}
		if err := s.voteRepo.DeleteByArticle(ctx, article.ID); err != nil {
			return err
		}
		return s.articleRepo.Delete(ctx, article)
	})
}

// UploadImages stores every file under article/ and records one image row per
// file. Nothing is recorded unless all uploads succeed.
func (s *articleService) UploadImages(ctx context.Context, email string, articleID int64, files []ImageUpload) ([]dto.ArticleImageResponse, error) {
	if len(files) == 0 {
		return nil, apperror.New(apperror.CodeInvalidInput)
	}

	article, err := s.ownArticle(ctx, email, articleID)
	if err != nil {
		return nil, err
	}

	for _, f := range files {
		if err := s.images.validate(f); err != nil {
			return nil, err
		}
	}

	images := make([]models.ArticleImage, 0, len(files))
	keys := make([]string, 0, len(files))
	for _, f := range files {
		info, err := s.images.upload(ctx, "article", f)
		if err != nil {
			s.images.discard(ctx, keys...)
			return nil, err
		}
		keys = append(keys, info.Key)
		images = append(images, models.ArticleImage{
			ArticleID: article.ID,
			URL:       info.URL,
			ObjectKey: info.Key,
		})
	}

	if err := s.articleRepo.CreateImages(ctx, images); err != nil {
		s.images.discard(ctx, keys...)
		return nil, err
	}

	return dto.FromModelToArticleImageResponses(images), nil
}

// ownArticle loads the article and checks that the member wrote it
func (s *articleService) ownArticle(ctx context.Context, email string, articleID int64) (*models.Article, error) {
	member, err := findMember(ctx, s.memberRepo, email)
	if err != nil {
		return nil, err
	}

	article, err := s.articleRepo.FindByID(ctx, articleID)
	if err != nil {
		return nil, notFoundAs(err, apperror.CodeArticleNotFound)
	}
	if !article.IsWrittenBy(member.ID) {
		return nil, apperror.New(apperror.CodeArticleIsNotYours)
	}
	return article, nil
}
