package dto

import "perfumism/internal/microservices/http-api/models"

// PerfumeResponse is the list view of a perfume
type PerfumeResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	BrandName    string  `json:"brand_name"`
	ImageURL     *string `json:"image_url"`
	AverageGrade float64 `json:"average_grade"`
	TotalSurvey  int64   `json:"total_survey"`
	TotalLike    int64   `json:"total_like"`
}

type AccordResponse struct {
	KoreanName  string `json:"korean_name"`
	EnglishName string `json:"english_name"`
}

type NotesResponse struct {
	Top    *string `json:"top"`
	Middle *string `json:"middle"`
	Base   *string `json:"base"`
}

// PerfumeDetailResponse is cached as JSON, keep it self-contained
type PerfumeDetailResponse struct {
	PerfumeResponse
	LaunchYear *int              `json:"launch_year"`
	Longevity  *string           `json:"longevity"`
	Sillage    *string           `json:"sillage"`
	Notes      NotesResponse     `json:"notes"`
	Accords    []AccordResponse  `json:"accords"`
	Similar    []PerfumeResponse `json:"similar_perfumes"`
}

func FromModelToPerfumeResponse(perfume *models.Perfume) PerfumeResponse {
	return PerfumeResponse{
		ID:           perfume.ID,
		Name:         perfume.Name,
		BrandName:    perfume.Brand.Name,
		ImageURL:     perfume.ImageURL,
		AverageGrade: perfume.AverageGrade,
		TotalSurvey:  perfume.TotalSurvey,
		TotalLike:    perfume.TotalLike,
	}
}

// FromModelToPerfumeDetailResponse converts a perfume with brand and accords preloaded
func FromModelToPerfumeDetailResponse(perfume *models.Perfume, similar []models.Perfume) *PerfumeDetailResponse {
	accords := make([]AccordResponse, 0, len(perfume.Accords))
	for _, a := range perfume.Accords {
		accords = append(accords, AccordResponse{KoreanName: a.KoreanName, EnglishName: a.EnglishName})
	}

	similarResponses := make([]PerfumeResponse, 0, len(similar))
	for i := range similar {
		// similar perfumes share the brand
		similar[i].Brand = perfume.Brand
		similarResponses = append(similarResponses, FromModelToPerfumeResponse(&similar[i]))
	}

	return &PerfumeDetailResponse{
		PerfumeResponse: FromModelToPerfumeResponse(perfume),
		LaunchYear:      perfume.LaunchYear,
		Longevity:       perfume.Longevity,
		Sillage:         perfume.Sillage,
		Notes: NotesResponse{
			Top:    perfume.TopNotes,
			Middle: perfume.MiddleNotes,
			Base:   perfume.BaseNotes,
		},
		Accords: accords,
		Similar: similarResponses,
	}
}
