package service

import (
	"context"
	"errors"
	"math"

	"perfumism/internal/apperror"
	"perfumism/internal/microservices/http-api/models"
	"perfumism/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// notFoundAs converts a record-not-found error into the given business code
// and passes every other error through.
func notFoundAs(err error, code apperror.Code) error {
	if isNotFound(err) {
		return apperror.Wrap(code, err)
	}
	return err
}

// findMember resolves the authenticated member from the token subject
func findMember(ctx context.Context, members repository.MemberRepository, email string) (*models.Member, error) {
	member, err := members.FindByEmail(ctx, email)
	if err != nil {
		return nil, notFoundAs(err, apperror.CodeMemberNotFoundByEmail)
	}
	return member, nil
}

// roundGrade keeps two decimals, matching the decimal(3,2) column
func roundGrade(avg float64) float64 {
	return math.Round(avg*100) / 100
}

func checkGrade(grade int) error {
	if grade > models.MaxGrade {
		return apperror.New(apperror.CodeReviewOverGrade)
	}
	if grade < models.MinGrade {
		return apperror.New(apperror.CodeReviewUnderGrade)
	}
	return nil
}
