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
	"perfumism/internal/middleware/auth"
	"perfumism/internal/storage"
)

type MemberService interface {
	Join(ctx context.Context, req dto.JoinRequest) (int64, error)
	CheckDuplicateEmail(ctx context.Context, email string) (bool, error)
	CheckDuplicateUsername(ctx context.Context, username string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*models.Member, error)
	GetMyInfo(ctx context.Context, email string) (*dto.MemberInfoResponse, error)
	ChangePassword(ctx context.Context, email, newPassword string) error
	Resign(ctx context.Context, email string) error
	ChangeImage(ctx context.Context, email string, img ImageUpload) (string, error)
}

type memberService struct {
	tx               database.Transactor
	memberRepo       repository.MemberRepository
	refreshTokenRepo repository.RefreshTokenRepository
	images           *imageUploader
}

func NewMemberService(
	tx database.Transactor,
	memberRepo repository.MemberRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	store storage.Storage,
	maxImageSize int64,
	logger *slog.Logger,
) MemberService {
	return &memberService{
		tx:               tx,
		memberRepo:       memberRepo,
		refreshTokenRepo: refreshTokenRepo,
		images:           newImageUploader(store, maxImageSize, logger),
	}
}

// Join registers a member with email and password and returns the new id.
func (s *memberService) Join(ctx context.Context, req dto.JoinRequest) (int64, error) {
	email := strings.TrimSpace(req.Email)
	username := strings.TrimSpace(req.Username)

	if err := s.checkDuplicates(ctx, email, username); err != nil {
		return 0, err
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return 0, err
	}

	member := &models.Member{
		Email:      email,
		Username:   username,
		Password:   hashedPassword,
		Authority:  models.AuthorityUser,
		SocialType: models.SocialTypeNone,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return 0, translateMemberConflict(err)
	}

	return member.ID, nil
}

func (s *memberService) checkDuplicates(ctx context.Context, email, username string) error {
	exists, err := s.memberRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return apperror.New(apperror.CodeMemberEmailDuplicated)
	}

	exists, err = s.memberRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return apperror.New(apperror.CodeMemberUsernameDuplicated)
	}
	return nil
}

// translateMemberConflict maps a unique index race to the duplicate code of
// the violated column.
func translateMemberConflict(err error) error {
	if !database.IsUniqueViolation(err) {
		return err
	}
	if strings.Contains(database.ConstraintName(err), "username") {
		return apperror.Wrap(apperror.CodeMemberUsernameDuplicated, err)
	}
	return apperror.Wrap(apperror.CodeMemberEmailDuplicated, err)
}

func (s *memberService) CheckDuplicateEmail(ctx context.Context, email string) (bool, error) {
	return s.memberRepo.ExistsByEmail(ctx, strings.TrimSpace(email))
}

func (s *memberService) CheckDuplicateUsername(ctx context.Context, username string) (bool, error) {
	return s.memberRepo.ExistsByUsername(ctx, strings.TrimSpace(username))
}

func (s *memberService) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	return findMember(ctx, s.memberRepo, email)
}

func (s *memberService) GetMyInfo(ctx context.Context, email string) (*dto.MemberInfoResponse, error) {
	member, err := findMember(ctx, s.memberRepo, email)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToMemberInfoResponse(member), nil
}

// ChangePassword replaces the stored hash with a hash of newPassword
func (s *memberService) ChangePassword(ctx context.Context, email, newPassword string) error {
	member, err := findMember(ctx, s.memberRepo, email)
	if err != nil {
		return err
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	member.Password = hashedPassword

	return s.memberRepo.Update(ctx, member)
}

// Resign soft-deletes the member and drops its refresh token
func (s *memberService) Resign(ctx context.Context, email string) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		member, err := findMember(ctx, s.memberRepo, email)
		if err != nil {
			return err
		}
		if err := s.refreshTokenRepo.DeleteByEmail(ctx, member.Email); err != nil {
			return err
		}
		return s.memberRepo.Delete(ctx, member)
	})
}

// ChangeImage uploads a profile image under member/ and stores its URL
func (s *memberService) ChangeImage(ctx context.Context, email string, img ImageUpload) (string, error) {
	member, err := findMember(ctx, s.memberRepo, email)
	if err != nil {
		return "", err
	}

	info, err := s.images.upload(ctx, "member", img)
	if err != nil {
		return "", err
	}

	url := info.URL
	member.ImageURL = &url
	if err := s.memberRepo.Update(ctx, member); err != nil {
		s.images.discard(ctx, info.Key)
		return "", err
	}

	return url, nil
}
