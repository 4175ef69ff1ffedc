package handler

import (
	"peer-review-service/api"
	"peer-review-service/internal/domain"

	"github.com/sirupsen/logrus"
)

type APIHandler struct {
	*QuestionnaireHandler
	*ImportHandler
	*WikiReviewHandler
}

func NewAPIHandler(
	questionnaireUseCase domain.QuestionnaireUseCase,
	importUseCase domain.ImportUseCase,
	wikiReviewUseCase domain.WikiReviewUseCase,
	logger *logrus.Logger,
) api.ServerInterface {

	return &APIHandler{
		QuestionnaireHandler: NewQuestionnaireHandler(questionnaireUseCase, logger),
		ImportHandler:        NewImportHandler(importUseCase, logger),
		WikiReviewHandler:    NewWikiReviewHandler(wikiReviewUseCase, logger),
	}
}
