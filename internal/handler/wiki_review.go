package handler

import (
	"net/http"

	"peer-review-service/api"
	"peer-review-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// WikiReviewHandler обрабатывает запросы на сбор правок из DokuWiki
type WikiReviewHandler struct {
	*BaseHandler
	wikiReviewUseCase domain.WikiReviewUseCase
}

// NewWikiReviewHandler создает новый экземпляр WikiReviewHandler
func NewWikiReviewHandler(wikiReviewUseCase domain.WikiReviewUseCase, logger *logrus.Logger) *WikiReviewHandler {
	return &WikiReviewHandler{
		BaseHandler:       NewBaseHandler(logger),
		wikiReviewUseCase: wikiReviewUseCase,
	}
}

// GetWikiReviews возвращает строки истории правок пространства имен
func (h *WikiReviewHandler) GetWikiReviews(c echo.Context, params api.GetWikiReviewsParams) error {
	query := domain.ReviewQuery{AssignmentURL: params.AssignmentUrl}
	if params.StartDate != nil {
		query.StartDate = *params.StartDate
	}
	if params.WikiUser != nil {
		query.WikiUser = *params.WikiUser
	}

	logEntry := h.logRequest(c, "wiki_review").WithFields(logrus.Fields{
		"assignment_url": query.AssignmentURL,
		"start_date":     query.StartDate,
		"wiki_user":      query.WikiUser,
	})
	logEntry.Info("Collecting wiki revisions")

	review, err := h.wikiReviewUseCase.ReviewDokuWiki(c.Request().Context(), query)
	if err != nil {
		return respondError(c, logEntry, err, "Failed to collect wiki revisions")
	}

	logEntry.WithFields(logrus.Fields{
		"items":          len(review.Items),
		"pages":          len(review.Pages),
		"degraded_pages": review.DegradedPages,
	}).Info("Wiki revisions collected successfully")
	return c.JSON(http.StatusOK, toAPIWikiReview(review))
}
