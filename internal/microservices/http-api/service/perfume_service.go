package service

import (
	"context"
	"log/slog"

	"perfumism/database"
	"perfumism/internal/apperror"
	"perfumism/internal/microservices/http-api/dto"
	"perfumism/internal/microservices/http-api/models"
	"perfumism/internal/microservices/http-api/repository"
)

const similarPerfumeLimit = 5

// PerfumeDetailCache is the read-through cache in front of ViewDetail.
// *cache.PerfumeCache implements it.
type PerfumeDetailCache interface {
	GetDetail(ctx context.Context, perfumeID int64, dst any) (bool, error)
	SetDetail(ctx context.Context, perfumeID int64, v any) error
	Invalidate(ctx context.Context, perfumeID int64) error
}

type PerfumeService interface {
	ViewDetail(ctx context.Context, perfumeID int64) (*dto.PerfumeDetailResponse, error)
	List(ctx context.Context, page, pageSize int) (*dto.PaginatedResponse[dto.PerfumeResponse], error)
	Like(ctx context.Context, email string, perfumeID int64) (int64, error)
	IsLiked(ctx context.Context, email string, perfumeID int64) (bool, error)
	Unlike(ctx context.Context, email string, perfumeID int64) error
	MyFavorites(ctx context.Context, email string, page, pageSize int) (*dto.PaginatedResponse[dto.PerfumeResponse], error)
}

type perfumeService struct {
	tx          database.Transactor
	memberRepo  repository.MemberRepository
	perfumeRepo repository.PerfumeRepository
	likeRepo    repository.PerfumeLikeRepository
	cache       PerfumeDetailCache
	logger      *slog.Logger
}

func NewPerfumeService(
	tx database.Transactor,
	memberRepo repository.MemberRepository,
	perfumeRepo repository.PerfumeRepository,
	likeRepo repository.PerfumeLikeRepository,
	cache PerfumeDetailCache,
	logger *slog.Logger,
) PerfumeService {
	return &perfumeService{
		tx:          tx,
		memberRepo:  memberRepo,
		perfumeRepo: perfumeRepo,
		likeRepo:    likeRepo,
		cache:       cache,
		logger:      logger,
	}
}

// ViewDetail returns the perfume detail, served from the cache when possible
func (s *perfumeService) ViewDetail(ctx context.Context, perfumeID int64) (*dto.PerfumeDetailResponse, error) {
	var cached dto.PerfumeDetailResponse
	hit, err := s.cache.GetDetail(ctx, perfumeID, &cached)
	if err != nil {
		// cache trouble must not fail the read
		s.logger.Warn("perfume cache read failed", "perfume_id", perfumeID, "error", err)
	}
	if hit {
		return &cached, nil
	}

	perfume, err := s.perfumeRepo.FindByID(ctx, perfumeID)
	if err != nil {
		return nil, notFoundAs(err, apperror.CodePerfumeNotFoundByID)
	}

	similar, err := s.perfumeRepo.ListByBrand(ctx, perfume.BrandID, perfume.ID, similarPerfumeLimit)
	if err != nil {
		return nil, err
	}

	detail := dto.FromModelToPerfumeDetailResponse(perfume, similar)
	if err := s.cache.SetDetail(ctx, perfumeID, detail); err != nil {
		s.logger.Warn("perfume cache write failed", "perfume_id", perfumeID, "error", err)
	}
	return detail, nil
}

// List returns perfumes ordered by id
func (s *perfumeService) List(ctx context.Context, page, pageSize int) (*dto.PaginatedResponse[dto.PerfumeResponse], error) {
	perfumes, total, err := s.perfumeRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	return toPerfumePage(perfumes, total, page, pageSize), nil
}

// Like records the member's like and recomputes the perfume's like count
func (s *perfumeService) Like(ctx context.Context, email string, perfumeID int64) (int64, error) {
	var likeID int64
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		member, err := findMember(ctx, s.memberRepo, email)
		if err != nil {
			return err
		}

		perfume, err := s.perfumeRepo.LockByID(ctx, perfumeID)
		if err != nil {
			return notFoundAs(err, apperror.CodePerfumeNotFoundByID)
		}

		_, err = s.likeRepo.FindByMemberAndPerfume(ctx, member.ID, perfume.ID)
		if err == nil {
			return apperror.New(apperror.CodePerfumeAlreadyLike)
		}
		if !isNotFound(err) {
			return err
		}

		like := &models.PerfumeLike{MemberID: member.ID, PerfumeID: perfume.ID}
		if err := s.likeRepo.Create(ctx, like); err != nil {
			if database.IsUniqueViolation(err) {
				return apperror.Wrap(apperror.CodePerfumeAlreadyLike, err)
			}
			return err
		}
		likeID = like.ID

		return s.recountLikes(ctx, perfume.ID)
	})
	if err != nil {
		return 0, err
	}

	s.invalidate(ctx, perfumeID)
	return likeID, nil
}

func (s *perfumeService) IsLiked(ctx context.Context, email string, perfumeID int64) (bool, error) {
	member, err := findMember(ctx, s.memberRepo, email)
	if err != nil {
		return false, err
	}

	_, err = s.likeRepo.FindByMemberAndPerfume(ctx, member.ID, perfumeID)
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, err
}

// Unlike removes the member's like and recomputes the perfume's like count
func (s *perfumeService) Unlike(ctx context.Context, email string, perfumeID int64) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		member, err := findMember(ctx, s.memberRepo, email)
		if err != nil {
			return err
		}

		perfume, err := s.perfumeRepo.LockByID(ctx, perfumeID)
		if err != nil {
			return notFoundAs(err, apperror.CodePerfumeNotFoundByID)
		}

		like, err := s.likeRepo.FindByMemberAndPerfume(ctx, member.ID, perfume.ID)
		if err != nil {
			return notFoundAs(err, apperror.CodePerfumeNotLikeThisPerfume)
		}

		if err := s.likeRepo.Delete(ctx, like); err != nil {
			return err
		}

		return s.recountLikes(ctx, perfume.ID)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, perfumeID)
	return nil
}

// MyFavorites lists the perfumes the member liked, newest like first
func (s *perfumeService) MyFavorites(ctx context.Context, email string, page, pageSize int) (*dto.PaginatedResponse[dto.PerfumeResponse], error) {
	member, err := findMember(ctx, s.memberRepo, email)
	if err != nil {
		return nil, err
	}

	perfumes, total, err := s.perfumeRepo.ListLikedByMember(ctx, member.ID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return toPerfumePage(perfumes, total, page, pageSize), nil
}

// recountLikes must run with the perfume row locked
func (s *perfumeService) recountLikes(ctx context.Context, perfumeID int64) error {
	count, err := s.likeRepo.CountByPerfume(ctx, perfumeID)
	if err != nil {
		return err
	}
	return s.perfumeRepo.UpdateTotalLike(ctx, perfumeID, count)
}

func (s *perfumeService) invalidate(ctx context.Context, perfumeID int64) {
	if err := s.cache.Invalidate(ctx, perfumeID); err != nil {
		s.logger.Warn("perfume cache invalidation failed", "perfume_id", perfumeID, "error", err)
	}
}

func toPerfumePage(perfumes []models.Perfume, total int64, page, pageSize int) *dto.PaginatedResponse[dto.PerfumeResponse] {
	data := make([]dto.PerfumeResponse, 0, len(perfumes))
	for i := range perfumes {
		data = append(data, dto.FromModelToPerfumeResponse(&perfumes[i]))
	}
	return dto.NewPaginatedResponse(data, int(total), page, pageSize)
}
