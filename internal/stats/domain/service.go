package domain

import "context"

type Service interface {
	BaseInfo(ctx context.Context) (*Response, error)
}

type Response struct {
	ReviewCount          int64   `json:"review_count"`
	AverageRating        float64 `json:"average_rating"`
	BusinessProfileCount int64   `json:"business_profile_count"`
	OfferCount           int64   `json:"offer_count"`
}
