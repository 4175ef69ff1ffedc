package usecase

import (
	"context"
	"strings"

	"peer-review-service/internal/domain"
)

// WikiReviewUseCase собирает правки участников из пространства имен DokuWiki.
type WikiReviewUseCase struct {
	reviewer domain.WikiReviewer
}

// NewWikiReviewUseCase создает новый экземпляр WikiReviewUseCase.
func NewWikiReviewUseCase(reviewer domain.WikiReviewer) domain.WikiReviewUseCase {
	return &WikiReviewUseCase{
		reviewer: reviewer,
	}
}

// ReviewDokuWiki возвращает строки истории правок, отфильтрованные по автору и дате.
func (uc *WikiReviewUseCase) ReviewDokuWiki(ctx context.Context, query domain.ReviewQuery) (*domain.Review, error) {
	query.AssignmentURL = strings.TrimSpace(query.AssignmentURL)
	query.StartDate = strings.TrimSpace(query.StartDate)

	review, err := uc.reviewer.Review(ctx, query)
	if err != nil {
		return nil, err
	}
	if review.Items == nil {
		review.Items = []string{}
	}
	return review, nil
}
