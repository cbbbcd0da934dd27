package models

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// CreateReviewRequest запрос на создание отзыва
type CreateReviewRequest struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment,omitempty"`
}

// ReviewResponse ответ с отзывом
type ReviewResponse struct {
	ID        int64     `json:"id"`
	BookingID int64     `json:"bookingId"`
	UserID    int64     `json:"userId"`
	ServiceID int64     `json:"serviceId"`
	VendorID  *int64    `json:"vendorId,omitempty"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewListResponse ответ со списком отзывов
type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
}

// FromDomainReview конвертирует domain модель в DTO
func FromDomainReview(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		BookingID: r.BookingID,
		UserID:    r.UserID,
		ServiceID: r.ServiceID,
		VendorID:  r.VendorID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

// FromDomainReviewList конвертирует список отзывов в DTO
func FromDomainReviewList(reviews []*domain.Review) *ReviewListResponse {
	resp := &ReviewListResponse{Reviews: make([]ReviewResponse, 0, len(reviews))}
	for _, r := range reviews {
		resp.Reviews = append(resp.Reviews, FromDomainReview(r))
	}
	return resp
}
