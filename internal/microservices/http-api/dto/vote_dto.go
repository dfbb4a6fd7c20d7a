package dto

import "perfumism/internal/microservices/http-api/models"

type CreateVoteRequest struct {
	Title string   `json:"title" binding:"required,max=200"`
	Items []string `json:"items" binding:"required"`
}

type ParticipateRequest struct {
	VoteItemID int64 `json:"vote_item_id" binding:"required"`
}

type VoteItemResponse struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	Count   int64  `json:"count"`
}

type VoteResponse struct {
	ID         int64              `json:"id"`
	ArticleID  int64              `json:"article_id"`
	Title      string             `json:"title"`
	Items      []VoteItemResponse `json:"items"`
	TotalCount int64              `json:"total_count"`
}

type MySelectionResponse struct {
	VoteItemID int64 `json:"vote_item_id"`
}

func FromModelToVoteResponse(vote *models.Vote) *VoteResponse {
	resp := &VoteResponse{
		ID:        vote.ID,
		ArticleID: vote.ArticleID,
		Title:     vote.Title,
		Items:     make([]VoteItemResponse, 0, len(vote.Items)),
	}
	for _, item := range vote.Items {
		resp.Items = append(resp.Items, VoteItemResponse{ID: item.ID, Content: item.Content, Count: item.Count})
		resp.TotalCount += item.Count
	}
	return resp
}
