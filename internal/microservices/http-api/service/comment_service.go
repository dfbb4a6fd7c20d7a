package service

import (
	"context"

	"perfumism/internal/apperror"
	"perfumism/internal/microservices/http-api/dto"
	"perfumism/internal/microservices/http-api/models"
	"perfumism/internal/microservices/http-api/repository"
)

type CommentService interface {
	Write(ctx context.Context, email string, articleID int64, content string) (int64, error)
	List(ctx context.Context, articleID int64, page, pageSize int) (*dto.PaginatedResponse[dto.CommentResponse], error)
	Update(ctx context.Context, email string, commentID int64, content string) error
	Remove(ctx context.Context, email string, commentID int64) error
}

type commentService struct {
	memberRepo  repository.MemberRepository
	articleRepo repository.ArticleRepository
	commentRepo repository.CommentRepository
}

func NewCommentService(
	memberRepo repository.MemberRepository,
	articleRepo repository.ArticleRepository,
	commentRepo repository.CommentRepository,
) CommentService {
	return &commentService{
		memberRepo:  memberRepo,
		articleRepo: articleRepo,
		commentRepo: commentRepo,
	}
}

// Write adds a comment to an existing article
func (s *commentService) Write(ctx context.Context, email string, articleID int64, content string) (int64, error) {
	member, err := findMember(ctx, s.memberRepo, email)
	if err != nil {
		return 0, err
	}

	if _, err := s.articleRepo.FindByID(ctx, articleID); err != nil {
		return 0, notFoundAs(err, apperror.CodeArticleNotFound)
	}

	comment := &models.Comment{
		ArticleID: articleID,
		MemberID:  member.ID,
		Content:   content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return 0, err
	}
	return comment.ID, nil
}

// List returns the comments of an article, oldest first
func (s *commentService) List(ctx context.Context, articleID int64, page, pageSize int) (*dto.PaginatedResponse[dto.CommentResponse], error) {
	if _, err := s.articleRepo.FindByID(ctx, articleID); err != nil {
		return nil, notFoundAs(err, apperror.CodeArticleNotFound)
	}

	comments, total, err := s.commentRepo.ListByArticle(ctx, articleID, page, pageSize)
	if err != nil {
		return nil, err
	}

	data := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		data = append(data, dto.FromModelToCommentResponse(&comments[i]))
	}
	return dto.NewPaginatedResponse(data, int(total), page, pageSize), nil
}

func (s *commentService) Update(ctx context.Context, email string, commentID int64, content string) error {
	comment, err := s.ownComment(ctx, email, commentID)
	if err != nil {
		return err
	}

	comment.Content = content
	return s.commentRepo.Update(ctx, comment)
}

func (s *commentService) Remove(ctx context.Context, email string, commentID int64) error {
	comment, err := s.ownComment(ctx, email, commentID)
	if err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, comment)
}

func (s *commentService) ownComment(ctx context.Context, email string, commentID int64) (*models.Comment, error) {
	member, err := findMember(ctx, s.memberRepo, email)
	if err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return nil, notFoundAs(err, apperror.CodeCommentNotFound)
	}

	// Check ownership
	if comment.MemberID != member.ID {
		return nil, apperror.New(apperror.CodeCommentIsNotYours)
	}
	return comment, nil
}
