package service

import (
	"context"
	"strings"

	"perfumism/database"
	"perfumism/internal/apperror"
	"perfumism/internal/microservices/http-api/dto"
	"perfumism/internal/microservices/http-api/models"
	"perfumism/internal/microservices/http-api/repository"
)

type VoteService interface {
	Create(ctx context.Context, email string, articleID int64, req dto.CreateVoteRequest) (int64, error)
	Get(ctx context.Context, articleID int64) (*dto.VoteResponse, error)
	Participate(ctx context.Context, email string, articleID, voteItemID int64) error
	Cancel(ctx context.Context, email string, articleID int64) error
	MySelection(ctx context.Context, email string, articleID int64) (*dto.MySelectionResponse, error)
}

type voteService struct {
	tx          database.Transactor
	memberRepo  repository.MemberRepository
	articleRepo repository.ArticleRepository
	voteRepo    repository.VoteRepository
}

func NewVoteService(
	tx database.Transactor,
	memberRepo repository.MemberRepository,
	articleRepo repository.ArticleRepository,
	voteRepo repository.VoteRepository,
) VoteService {
	return &voteService{
		tx:          tx,
		memberRepo:  memberRepo,
		articleRepo: articleRepo,
		voteRepo:    voteRepo,
	}
}

// Create attaches a vote to the member's own article
func (s *voteService) Create(ctx context.Context, email string, articleID int64, req dto.CreateVoteRequest) (int64, error) {
	items, err := normalizeVoteItems(req.Items)
	if err != nil {
		return 0, err
	}

	var vote *models.Vote
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		member, err := findMember(ctx, s.memberRepo, email)
		if err != nil {
			return err
		}

		article, err := s.articleRepo.FindByID(ctx, articleID)
		if err != nil {
			return notFoundAs(err, apperror.CodeArticleNotFound)
		}
		if !article.IsWrittenBy(member.ID) {
			return apperror.New(apperror.CodeArticleIsNotYours)
		}

		_, err = s.voteRepo.FindByArticle(ctx, article.ID)
		if err == nil {
			return apperror.New(apperror.CodeVoteAlreadyExists)
		}
		if !isNotFound(err) {
			return err
		}

		vote = &models.Vote{
			ArticleID: article.ID,
			Title:     strings.TrimSpace(req.Title),
			Items:     make([]models.VoteItem, 0, len(items)),
		}
		for _, content := range items {
			vote.Items = append(vote.Items, models.VoteItem{Content: content})
		}

		if err := s.voteRepo.Create(ctx, vote); err != nil {
			if database.IsUniqueViolation(err) {
				return apperror.Wrap(apperror.CodeVoteAlreadyExists, err)
			}
			return err
		}

		return s.articleRepo.SetVoteExist(ctx, article.ID, true)
	})
	if err != nil {
		return 0, err
	}
	return vote.ID, nil
}

func (s *voteService) Get(ctx context.Context, articleID int64) (*dto.VoteResponse, error) {
	vote, err := s.voteRepo.FindByArticle(ctx, articleID)
	if err != nil {
		return nil, notFoundAs(err, apperror.CodeVoteNotFound)
	}
	return dto.FromModelToVoteResponse(vote), nil
}

// Participate records the member's selection and recounts the item
func (s *voteService) Participate(ctx context.Context, email string, articleID, voteItemID int64) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		member, err := findMember(ctx, s.memberRepo, email)
		if err != nil {
			return err
		}

		vote, err := s.voteRepo.FindByArticle(ctx, articleID)
		if err != nil {
			return notFoundAs(err, apperror.CodeVoteNotFound)
		}

		item, err := s.voteRepo.LockItem(ctx, vote.ID, voteItemID)
		if err != nil {
			return notFoundAs(err, apperror.CodeVoteItemNotFound)
		}

		_, err = s.voteRepo.FindMember(ctx, vote.ID, member.ID)
		if err == nil {
			return apperror.New(apperror.CodeVoteAlreadyParticipated)
		}
		if !isNotFound(err) {
			return err
		}

		selection := &models.VoteMember{
			VoteID:     vote.ID,
			VoteItemID: item.ID,
			MemberID:   member.ID,
		}
		if err := s.voteRepo.CreateMember(ctx, selection); err != nil {
			if database.IsUniqueViolation(err) {
				return apperror.Wrap(apperror.CodeVoteAlreadyParticipated, err)
			}
			return err
		}

		return s.recount(ctx, item.ID)
	})
}

// Cancel withdraws the member's selection and recounts the item
func (s *voteService) Cancel(ctx context.Context, email string, articleID int64) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		member, err := findMember(ctx, s.memberRepo, email)
		if err != nil {
			return err
		}

		vote, err := s.voteRepo.FindByArticle(ctx, articleID)
		if err != nil {
			return notFoundAs(err, apperror.CodeVoteNotFound)
		}

		selection, err := s.voteRepo.FindMember(ctx, vote.ID, member.ID)
		if err != nil {
			return notFoundAs(err, apperror.CodeVoteNotParticipated)
		}

		if _, err := s.voteRepo.LockItem(ctx, vote.ID, selection.VoteItemID); err != nil {
			return notFoundAs(err, apperror.CodeVoteItemNotFound)
		}

		if err := s.voteRepo.DeleteMember(ctx, selection); err != nil {
			return err
		}

		return s.recount(ctx, selection.VoteItemID)
	})
}

func (s *voteService) MySelection(ctx context.Context, email string, articleID int64) (*dto.MySelectionResponse, error) {
	member, err := findMember(ctx, s.memberRepo, email)
	if err != nil {
		return nil, err
	}

	vote, err := s.voteRepo.FindByArticle(ctx, articleID)
	if err != nil {
		return nil, notFoundAs(err, apperror.CodeVoteNotFound)
	}

	selection, err := s.voteRepo.FindMember(ctx, vote.ID, member.ID)
	if err != nil {
		return nil, notFoundAs(err, apperror.CodeVoteNotParticipated)
	}
	return &dto.MySelectionResponse{VoteItemID: selection.VoteItemID}, nil
}

// recount must run with the item row locked
func (s *voteService) recount(ctx context.Context, itemID int64) error {
	count, err := s.voteRepo.CountItemMembers(ctx, itemID)
	if err != nil {
		return err
	}
	return s.voteRepo.UpdateItemCount(ctx, itemID, count)
}

// normalizeVoteItems trims items and requires MinVoteItems..MaxVoteItems non-empty entries
func normalizeVoteItems(raw []string) ([]string, error) {
	items := make([]string, 0, len(raw))
	for _, item := range raw {
		item = strings.TrimSpace(item)
		if item == "" {
			return nil, apperror.New(apperror.CodeVoteItemsInvalid)
		}
		items = append(items, item)
	}
	if len(items) < models.MinVoteItems || len(items) > models.MaxVoteItems {
		return nil, apperror.New(apperror.CodeVoteItemsInvalid)
	}
	return items, nil
}
