package service

import (
	"context"
	"log/slog"
	"time"

	"perfumism/database"
	"perfumism/internal/apperror"
	"perfumism/internal/events"
	"perfumism/internal/microservices/http-api/dto"
	"perfumism/internal/microservices/http-api/models"
	"perfumism/internal/microservices/http-api/repository"
)

type ReviewService interface {
	Write(ctx context.Context, email string, perfumeID int64, grade int, content string) (int64, error)
	ListByPerfume(ctx context.Context, perfumeID int64, page, pageSize int) (*dto.PaginatedResponse[dto.ReviewResponse], error)
	Change(ctx context.Context, email string, reviewID int64, grade int, content string) error
	Remove(ctx context.Context, email string, reviewID int64) error
	MyReviews(ctx context.Context, email string, page, pageSize int) (*dto.PaginatedResponse[dto.ReviewResponse], error)
	MyReviewOfPerfume(ctx context.Context, email string, perfumeID int64) (*dto.ReviewResponse, error)
	Like(ctx context.Context, email string, reviewID int64) (int64, error)
	IsLiked(ctx context.Context, email string, reviewID int64) (bool, error)
	Unlike(ctx context.Context, email string, reviewID int64) error
}

type reviewService struct {
	tx          database.Transactor
	memberRepo  repository.MemberRepository
	perfumeRepo repository.PerfumeRepository
	reviewRepo  repository.ReviewRepository
	likeRepo    repository.ReviewLikeRepository
	cache       PerfumeDetailCache
	publisher   events.Publisher
	logger      *slog.Logger
	now         func() time.Time
}

func NewReviewService(
	tx database.Transactor,
	memberRepo repository.MemberRepository,
	perfumeRepo repository.PerfumeRepository,
	reviewRepo repository.ReviewRepository,
	likeRepo repository.ReviewLikeRepository,
	cache PerfumeDetailCache,
	publisher events.Publisher,
	logger *slog.Logger,
) ReviewService {
	return &reviewService{
		tx:          tx,
		memberRepo:  memberRepo,
		perfumeRepo: perfumeRepo,
		reviewRepo:  reviewRepo,
		likeRepo:    likeRepo,
		cache:       cache,
		publisher:   publisher,
		logger:      logger,
		now:         time.Now,
	}
}

// Write creates the member's review of a perfume and updates the perfume's
// average grade and total survey
func (s *reviewService) Write(ctx context.Context, email string, perfumeID int64, grade int, content string) (int64, error) {
	var review *models.Review
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		member, err := findMember(ctx, s.memberRepo, email)
		if err != nil {
			return err
		}

		// lock first so concurrent writers serialize on the perfume
		perfume, err := s.perfumeRepo.LockByID(ctx, perfumeID)
		if err != nil {
			return notFoundAs(err, apperror.CodePerfumeNotFoundByID)
		}

		if err := checkGrade(grade); err != nil {
			return err
		}

		_, err = s.reviewRepo.FindByMemberAndPerfume(ctx, member.ID, perfume.ID)
		if err == nil {
			return apperror.New(apperror.CodeReviewAlreadyWritten)
		}
		if !isNotFound(err) {
			return err
		}

		review = &models.Review{
			PerfumeID: perfume.ID,
			MemberID:  member.ID,
			Grade:     grade,
			Content:   content,
		}
		if err := s.reviewRepo.Create(ctx, review); err != nil {
			if database.IsUniqueViolation(err) {
				return apperror.Wrap(apperror.CodeReviewAlreadyWritten, err)
			}
			return err
		}

		return s.recomputeGrade(ctx, perfume.ID)
	})
	if err != nil {
		return 0, err
	}

	s.afterReviewChange(ctx, events.TypeReviewWritten, review, review.MemberID)
	return review.ID, nil
}

// ListByPerfume retrieves the reviews of a perfume, newest first
func (s *reviewService) ListByPerfume(ctx context.Context, perfumeID int64, page, pageSize int) (*dto.PaginatedResponse[dto.ReviewResponse], error) {
	if _, err := s.perfumeRepo.FindByID(ctx, perfumeID); err != nil {
		return nil, notFoundAs(err, apperror.CodePerfumeNotFoundByID)
	}

	reviews, total, err := s.reviewRepo.ListByPerfume(ctx, perfumeID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return toReviewPage(reviews, total, page, pageSize), nil
}

// Change updates grade and content of the member's own review
func (s *reviewService) Change(ctx context.Context, email string, reviewID int64, grade int, content string) error {
	var review *models.Review
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		member, err := findMember(ctx, s.memberRepo, email)
		if err != nil {
			return err
		}

		review, err = s.ownReview(ctx, member, reviewID)
		if err != nil {
			return err
		}

		if err := checkGrade(grade); err != nil {
			return err
		}

		if _, err := s.perfumeRepo.LockByID(ctx, review.PerfumeID); err != nil {
			return notFoundAs(err, apperror.CodePerfumeNotFoundByID)
		}

		gradeChanged := review.Grade != grade
		review.Grade = grade
		review.Content = content
		if err := s.reviewRepo.Update(ctx, review); err != nil {
			return err
		}

		if !gradeChanged {
			return nil
		}
		return s.recomputeGrade(ctx, review.PerfumeID)
	})
	if err != nil {
		return err
	}

	s.afterReviewChange(ctx, events.TypeReviewChanged, review, review.MemberID)
	return nil
}

// Remove soft-deletes the member's review together with its likes
func (s *reviewService) Remove(ctx context.Context, email string, reviewID int64) error {
	var review *models.Review
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		member, err := findMember(ctx, s.memberRepo, email)
		if err != nil {
			return err
		}

		review, err = s.ownReview(ctx, member, reviewID)
		if err != nil {
			return err
		}

		if _, err := s.perfumeRepo.LockByID(ctx, review.PerfumeID); err != nil {
			return notFoundAs(err, apperror.CodePerfumeNotFoundByID)
		}

		if err := s.likeRepo.DeleteByReview(ctx, review.ID); err != nil {
			return err
		}
		if err := s.reviewRepo.Delete(ctx, review); err != nil {
			return err
		}

		return s.recomputeGrade(ctx, review.PerfumeID)
	})
	if err != nil {
		return err
	}

	s.afterReviewChange(ctx, events.TypeReviewRemoved, review, review.MemberID)
	return nil
}

func (s *reviewService) MyReviews(ctx context.Context, email string, page, pageSize int) (*dto.PaginatedResponse[dto.ReviewResponse], error) {
	member, err := findMember(ctx, s.memberRepo, email)
	if err != nil {
		return nil, err
	}

	reviews, total, err := s.reviewRepo.ListByMember(ctx, member.ID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return toReviewPage(reviews, total, page, pageSize), nil
}

func (s *reviewService) MyReviewOfPerfume(ctx context.Context, email string, perfumeID int64) (*dto.ReviewResponse, error) {
	member, err := findMember(ctx, s.memberRepo, email)
	if err != nil {
		return nil, err
	}

	if _, err := s.perfumeRepo.FindByID(ctx, perfumeID); err != nil {
		return nil, notFoundAs(err, apperror.CodePerfumeNotFoundByID)
	}

	review, err := s.reviewRepo.FindByMemberAndPerfume(ctx, member.ID, perfumeID)
	if err != nil {
		return nil, notFoundAs(err, apperror.CodeReviewNotWrittenThisPerfume)
	}

	resp := dto.FromModelToReviewResponse(review)
	return &resp, nil
}

// Like records a like on someone else's review and recomputes its like count
func (s *reviewService) Like(ctx context.Context, email string, reviewID int64) (int64, error) {
	var (
		like   *models.ReviewLike
		review *models.Review
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		member, err := findMember(ctx, s.memberRepo, email)
		if err != nil {
			return err
		}

		review, err = s.reviewRepo.LockByID(ctx, reviewID)
		if err != nil {
			return notFoundAs(err, apperror.CodeReviewNotFoundByID)
		}

		if review.IsWrittenBy(member.ID) {
			return apperror.New(apperror.CodeReviewNoLikeYourself)
		}

		_, err = s.likeRepo.FindByMemberAndReview(ctx, member.ID, review.ID)
		if err == nil {
			return apperror.New(apperror.CodeReviewAlreadyLike)
		}
		if !isNotFound(err) {
			return err
		}

		like = &models.ReviewLike{MemberID: member.ID, ReviewID: review.ID}
		if err := s.likeRepo.Create(ctx, like); err != nil {
			if database.IsUniqueViolation(err) {
				return apperror.Wrap(apperror.CodeReviewAlreadyLike, err)
			}
			return err
		}

		return s.recountLikes(ctx, review.ID)
	})
	if err != nil {
		return 0, err
	}

	s.publish(ctx, events.TypeReviewLiked, review, like.MemberID)
	return like.ID, nil
}

func (s *reviewService) IsLiked(ctx context.Context, email string, reviewID int64) (bool, error) {
	member, err := findMember(ctx, s.memberRepo, email)
	if err != nil {
		return false, err
	}

	if _, err := s.reviewRepo.FindByID(ctx, reviewID); err != nil {
		return false, notFoundAs(err, apperror.CodeReviewNotFoundByID)
	}

	_, err = s.likeRepo.FindByMemberAndReview(ctx, member.ID, reviewID)
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, err
}

// Unlike removes the member's like and recomputes the review's like count
func (s *reviewService) Unlike(ctx context.Context, email string, reviewID int64) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		member, err := findMember(ctx, s.memberRepo, email)
		if err != nil {
			return err
		}

		review, err := s.reviewRepo.LockByID(ctx, reviewID)
		if err != nil {
			return notFoundAs(err, apperror.CodeReviewNotFoundByID)
		}

		like, err := s.likeRepo.FindByMemberAndReview(ctx, member.ID, review.ID)
		if err != nil {
			return notFoundAs(err, apperror.CodeReviewNotLikeThisReview)
		}

		if err := s.likeRepo.Delete(ctx, like); err != nil {
			return err
		}

		return s.recountLikes(ctx, review.ID)
	})
}

// ownReview loads the review and checks that member wrote it
func (s *reviewService) ownReview(ctx context.Context, member *models.Member, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, notFoundAs(err, apperror.CodeReviewNotFoundByID)
	}
	if !review.IsWrittenBy(member.ID) {
		return nil, apperror.New(apperror.CodeReviewNotYourReview)
	}
	return review, nil
}

// recomputeGrade must run with the perfume row locked
func (s *reviewService) recomputeGrade(ctx context.Context, perfumeID int64) error {
	avg, total, err := s.reviewRepo.GradeStats(ctx, perfumeID)
	if err != nil {
		return err
	}
	return s.perfumeRepo.UpdateGradeStats(ctx, perfumeID, roundGrade(avg), total)
}

// recountLikes must run with the review row locked
func (s *reviewService) recountLikes(ctx context.Context, reviewID int64) error {
	count, err := s.likeRepo.CountByReview(ctx, reviewID)
	if err != nil {
		return err
	}
	return s.reviewRepo.UpdateTotalLike(ctx, reviewID, count)
}

func (s *reviewService) afterReviewChange(ctx context.Context, eventType string, review *models.Review, actorID int64) {
	if err := s.cache.Invalidate(ctx, review.PerfumeID); err != nil {
		s.logger.Warn("perfume cache invalidation failed", "perfume_id", review.PerfumeID, "error", err)
	}
	s.publish(ctx, eventType, review, actorID)
}

// publish is best effort: a broker failure never fails the request
func (s *reviewService) publish(ctx context.Context, eventType string, review *models.Review, actorID int64) {
	event := events.ReviewEvent{
		Type:       eventType,
		ReviewID:   review.ID,
		PerfumeID:  review.PerfumeID,
		MemberID:   actorID,
		Grade:      review.Grade,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish review event", "type", eventType, "review_id", review.ID, "error", err)
	}
}

func toReviewPage(reviews []models.Review, total int64, page, pageSize int) *dto.PaginatedResponse[dto.ReviewResponse] {
	data := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		data = append(data, dto.FromModelToReviewResponse(&reviews[i]))
	}
	return dto.NewPaginatedResponse(data, int(total), page, pageSize)
}
