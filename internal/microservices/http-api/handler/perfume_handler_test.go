package handler_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"perfumism/internal/apperror"
	"perfumism/internal/microservices/http-api/dto"
	"perfumism/internal/microservices/http-api/handler"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupPerfumeRouter(t *testing.T) (*gin.Engine, *MockPerfumeService) {
	perfumeService := new(MockPerfumeService)
	h := handler.NewPerfumeHandler(perfumeService, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return setupRouter(t, h), perfumeService
}

func TestPerfumeHandler_List_Pagination(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantPage int
		wantSize int
	}{
		{name: "defaults", query: "", wantPage: 1, wantSize: 20},
		{name: "explicit", query: "?page=3&size=50", wantPage: 3, wantSize: 50},
		{name: "clamped size", query: "?page=1&size=1000", wantPage: 1, wantSize: 100},
		{name: "invalid values", query: "?page=-2&size=abc", wantPage: 1, wantSize: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, perfumeService := setupPerfumeRouter(t)

			perfumeService.On("List", mock.Anything, tt.wantPage, tt.wantSize).Return(&dto.PaginatedResponse[dto.PerfumeResponse]{
				Data:     []dto.PerfumeResponse{{ID: 1, Name: "Santal 33", BrandName: "Le Labo"}},
				Page:     tt.wantPage,
				PageSize: tt.wantSize,
				Total:    1,
			}, nil)

			w := serve(r, newRequest(http.MethodGet, "/api/perfumes"+tt.query, "", false))

			require.Equal(t, http.StatusOK, w.Code)
			var resp dto.PaginatedResponse[dto.PerfumeResponse]
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Len(t, resp.Data, 1)
			perfumeService.AssertExpectations(t)
		})
	}
}

func TestPerfumeHandler_Detail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		r, perfumeService := setupPerfumeRouter(t)

		detail := &dto.PerfumeDetailResponse{}
		detail.ID = 5
		detail.Name = "Bleu"
		perfumeService.On("ViewDetail", mock.Anything, int64(5)).Return(detail, nil)

		w := serve(r, newRequest(http.MethodGet, "/api/perfumes/5", "", false))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Bleu"`)
	})

	t.Run("not found", func(t *testing.T) {
		r, perfumeService := setupPerfumeRouter(t)

		perfumeService.On("ViewDetail", mock.Anything, int64(404)).
			Return(nil, apperror.New(apperror.CodePerfumeNotFoundByID))

		w := serve(r, newRequest(http.MethodGet, "/api/perfumes/404", "", false))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, string(apperror.CodePerfumeNotFoundByID), decodeError(t, w).Error.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		r, perfumeService := setupPerfumeRouter(t)

		w := serve(r, newRequest(http.MethodGet, "/api/perfumes/abc", "", false))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		perfumeService.AssertNotCalled(t, "ViewDetail", mock.Anything, mock.Anything)
	})
}

func TestPerfumeHandler_Likes(t *testing.T) {
	t.Run("like", func(t *testing.T) {
		r, perfumeService := setupPerfumeRouter(t)
		perfumeService.On("Like", mock.Anything, testEmail, int64(5)).Return(int64(11), nil)

		w := serve(r, newRequest(http.MethodPost, "/api/auth/perfumes/likes/5", "", true))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"id":11}`, w.Body.String())
	})

	t.Run("already liked", func(t *testing.T) {
		r, perfumeService := setupPerfumeRouter(t)
		perfumeService.On("Like", mock.Anything, testEmail, int64(5)).
			Return(int64(0), apperror.New(apperror.CodePerfumeAlreadyLike))

		w := serve(r, newRequest(http.MethodPost, "/api/auth/perfumes/likes/5", "", true))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("is liked", func(t *testing.T) {
		r, perfumeService := setupPerfumeRouter(t)
		perfumeService.On("IsLiked", mock.Anything, testEmail, int64(5)).Return(true, nil)

		w := serve(r, newRequest(http.MethodGet, "/api/auth/perfumes/likes/5", "", true))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"result":true}`, w.Body.String())
	})

	t.Run("unlike", func(t *testing.T) {
		r, perfumeService := setupPerfumeRouter(t)
		perfumeService.On("Unlike", mock.Anything, testEmail, int64(5)).Return(nil)

		w := serve(r, newRequest(http.MethodDelete, "/api/auth/perfumes/likes/5", "", true))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("requires a token", func(t *testing.T) {
		r, perfumeService := setupPerfumeRouter(t)

		w := serve(r, newRequest(http.MethodPost, "/api/auth/perfumes/likes/5", "", false))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		perfumeService.AssertNotCalled(t, "Like", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPerfumeHandler_MyFavorites(t *testing.T) {
	r, perfumeService := setupPerfumeRouter(t)

	perfumeService.On("MyFavorites", mock.Anything, testEmail, 1, 20).
		Return(&dto.PaginatedResponse[dto.PerfumeResponse]{Data: []dto.PerfumeResponse{}, Page: 1, PageSize: 20}, nil)

	w := serve(r, newRequest(http.MethodGet, "/api/auth/perfumes/likes/my-favorite", "", true))

	assert.Equal(t, http.StatusOK, w.Code)
	perfumeService.AssertExpectations(t)
	perfumeService.AssertNotCalled(t, "IsLiked", mock.Anything, mock.Anything, mock.Anything)
}
