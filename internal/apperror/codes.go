// Package apperror provides the business error carried from services to the
// HTTP layer, tagged with a machine-readable code.
package apperror

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// Global errors
	CodeInternal     Code = "GLOBAL_INTERNAL_SERVER_ERROR"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeInvalidToken Code = "INVALID_TOKEN"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeTooManyCalls Code = "TOO_MANY_REQUESTS"

	// Member errors
	CodeMemberNotFoundByEmail    Code = "MEMBER_NOT_FOUND_BY_EMAIL"
	CodeMemberEmailDuplicated    Code = "MEMBER_EMAIL_DUPLICATED"
	CodeMemberUsernameDuplicated Code = "MEMBER_USERNAME_DUPLICATED"
	CodeMemberWrongPassword      Code = "MEMBER_WRONG_PASSWORD"
	CodeRefreshTokenInvalid      Code = "REFRESH_TOKEN_INVALID"
	CodeRefreshTokenExpired      Code = "REFRESH_TOKEN_EXPIRED"
	CodeOAuthProviderFailed      Code = "OAUTH_PROVIDER_FAILED"
	CodeOAuthEmailNotProvided    Code = "OAUTH_EMAIL_NOT_PROVIDED"

	// Perfume errors
	CodePerfumeNotFoundByID       Code = "PERFUME_NOT_FOUND_BY_ID"
	CodePerfumeAlreadyLike        Code = "PERFUME_ALREADY_LIKE"
	CodePerfumeNotLikeThisPerfume Code = "PERFUME_NOT_LIKE_THIS_PERFUME"

	// Review errors
	CodeReviewNotFoundByID          Code = "REVIEW_NOT_FOUND_BY_ID"
	CodeReviewAlreadyWritten        Code = "REVIEW_ALREADY_WRITTEN"
	CodeReviewNotYourReview         Code = "REVIEW_NOT_YOUR_REVIEW"
	CodeReviewOverGrade             Code = "REVIEW_OVER_GRADE"
	CodeReviewUnderGrade            Code = "REVIEW_UNDER_GRADE"
	CodeReviewNotWrittenThisPerfume Code = "REVIEW_NOT_WRITTEN_THIS_PERFUME"
	CodeReviewAlreadyLike           Code = "REVIEW_ALREADY_LIKE"
	CodeReviewNoLikeYourself        Code = "REVIEW_NO_LIKE_YOURSELF"
	CodeReviewNotLikeThisReview     Code = "REVIEW_NOT_LIKE_THIS_REVIEW"

	// Article errors
	CodeArticleNotFound       Code = "ARTICLE_NOT_FOUND"
	CodeArticleIsNotYours     Code = "ARTICLE_IS_NOT_YOURS"
	CodeArticleSubjectInvalid Code = "ARTICLE_SUBJECT_INVALID"

	// Comment errors
	CodeCommentNotFound   Code = "COMMENT_NOT_FOUND"
	CodeCommentIsNotYours Code = "COMMENT_IS_NOT_YOURS"

	// Vote errors
	CodeVoteNotFound            Code = "VOTE_NOT_FOUND"
	CodeVoteAlreadyExists       Code = "VOTE_ALREADY_EXISTS"
	CodeVoteItemsInvalid        Code = "VOTE_ITEMS_INVALID"
	CodeVoteItemNotFound        Code = "VOTE_ITEM_NOT_FOUND"
	CodeVoteAlreadyParticipated Code = "VOTE_ALREADY_PARTICIPATED"
	CodeVoteNotParticipated     Code = "VOTE_NOT_PARTICIPATED"

	// Image errors
	CodeImageInvalidType  Code = "IMAGE_INVALID_TYPE"
	CodeImageTooLarge     Code = "IMAGE_TOO_LARGE"
	CodeImageUploadFailed Code = "IMAGE_UPLOAD_FAILED"
)

var messages = map[Code]string{
	CodeInternal:     "internal server error",
	CodeInvalidInput: "invalid input",
	CodeInvalidToken: "invalid or expired access token",
	CodeUnauthorized: "authentication required",
	CodeTooManyCalls: "too many requests",

	CodeMemberNotFoundByEmail:    "member not found by email",
	CodeMemberEmailDuplicated:    "email is already in use",
	CodeMemberUsernameDuplicated: "username is already in use",
	CodeMemberWrongPassword:      "wrong password",
	CodeRefreshTokenInvalid:      "invalid refresh token",
	CodeRefreshTokenExpired:      "refresh token has expired",
	CodeOAuthProviderFailed:      "failed to communicate with the oauth provider",
	CodeOAuthEmailNotProvided:    "oauth provider did not return an email",

	CodePerfumeNotFoundByID:       "perfume not found",
	CodePerfumeAlreadyLike:        "perfume is already liked",
	CodePerfumeNotLikeThisPerfume: "perfume is not liked",

	CodeReviewNotFoundByID:          "review not found",
	CodeReviewAlreadyWritten:        "review already written for this perfume",
	CodeReviewNotYourReview:         "review is not yours",
	CodeReviewOverGrade:             "grade is above the maximum",
	CodeReviewUnderGrade:            "grade is below the minimum",
	CodeReviewNotWrittenThisPerfume: "no review written for this perfume",
	CodeReviewAlreadyLike:           "review is already liked",
	CodeReviewNoLikeYourself:        "you cannot like your own review",
	CodeReviewNotLikeThisReview:     "review is not liked",

	CodeArticleNotFound:       "article not found",
	CodeArticleIsNotYours:     "article is not yours",
	CodeArticleSubjectInvalid: "unknown article subject",

	CodeCommentNotFound:   "comment not found",
	CodeCommentIsNotYours: "comment is not yours",

	CodeVoteNotFound:            "vote not found",
	CodeVoteAlreadyExists:       "article already has a vote",
	CodeVoteItemsInvalid:        "a vote needs between 2 and 10 non-empty items",
	CodeVoteItemNotFound:        "vote item not found",
	CodeVoteAlreadyParticipated: "already participated in this vote",
	CodeVoteNotParticipated:     "not participated in this vote",

	CodeImageInvalidType:  "only image files can be uploaded",
	CodeImageTooLarge:     "image is too large",
	CodeImageUploadFailed: "failed to upload image",
}

// Message returns the default human-readable message for the code.
func (c Code) Message() string {
	if m, ok := messages[c]; ok {
		return m
	}
	return messages[CodeInternal]
}

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	// BadRequest - validation failures, bad input
	case CodeInvalidInput,
		CodeReviewOverGrade,
		CodeReviewUnderGrade,
		CodeArticleSubjectInvalid,
		CodeVoteItemsInvalid,
		CodeImageInvalidType:
		return http.StatusBadRequest

	// Unauthorized - missing or bad credentials
	case CodeInvalidToken,
		CodeUnauthorized,
		CodeMemberWrongPassword,
		CodeRefreshTokenInvalid,
		CodeRefreshTokenExpired:
		return http.StatusUnauthorized

	// Forbidden - resource belongs to somebody else
	case CodeReviewNotYourReview,
		CodeReviewNoLikeYourself,
		CodeArticleIsNotYours,
		CodeCommentIsNotYours:
		return http.StatusForbidden

	// NotFound - resource doesn't exist
	case CodeMemberNotFoundByEmail,
		CodePerfumeNotFoundByID,
		CodePerfumeNotLikeThisPerfume,
		CodeReviewNotFoundByID,
		CodeReviewNotWrittenThisPerfume,
		CodeReviewNotLikeThisReview,
		CodeArticleNotFound,
		CodeCommentNotFound,
		CodeVoteNotFound,
		CodeVoteItemNotFound,
		CodeVoteNotParticipated:
		return http.StatusNotFound

	// Conflict - duplicates
	case CodeMemberEmailDuplicated,
		CodeMemberUsernameDuplicated,
		CodePerfumeAlreadyLike,
		CodeReviewAlreadyWritten,
		CodeReviewAlreadyLike,
		CodeVoteAlreadyExists,
		CodeVoteAlreadyParticipated:
		return http.StatusConflict

	case CodeImageTooLarge:
		return http.StatusRequestEntityTooLarge

	case CodeTooManyCalls:
		return http.StatusTooManyRequests

	case CodeOAuthProviderFailed, CodeOAuthEmailNotProvided:
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}
