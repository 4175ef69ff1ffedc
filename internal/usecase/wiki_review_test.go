package usecase_test

import (
	"context"
	"testing"

	"peer-review-service/internal/domain"
	"peer-review-service/internal/mocks"
	"peer-review-service/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWikiReviewUseCase_TrimsQueryAndNormalizesItems(t *testing.T) {
	ctx := context.Background()
	reviewer := &mocks.WikiReviewer{}
	uc := usecase.NewWikiReviewUseCase(reviewer)

	reviewer.On("Review", ctx, domain.ReviewQuery{
		AssignmentURL: "http://wiki.example.edu/dokuwiki/ns",
		StartDate:     "2024-01-01",
		WikiUser:      "alice",
	}).Return(&domain.Review{}, nil)

	review, err := uc.ReviewDokuWiki(ctx, domain.ReviewQuery{
		AssignmentURL: "  http://wiki.example.edu/dokuwiki/ns ",
		StartDate:     " 2024-01-01",
		WikiUser:      "alice",
	})

	require.NoError(t, err)
	assert.NotNil(t, review.Items)
	assert.Empty(t, review.Items)
	reviewer.AssertExpectations(t)
}

func TestWikiReviewUseCase_PropagatesErrors(t *testing.T) {
	ctx := context.Background()
	reviewer := &mocks.WikiReviewer{}
	uc := usecase.NewWikiReviewUseCase(reviewer)

	reviewer.On("Review", ctx, domain.ReviewQuery{AssignmentURL: "http://x/dokuwiki/ns"}).Return(nil, domain.ErrWikiFetchFailed)

	_, err := uc.ReviewDokuWiki(ctx, domain.ReviewQuery{AssignmentURL: "http://x/dokuwiki/ns"})

	assert.ErrorIs(t, err, domain.ErrWikiFetchFailed)
}
