package handler

import (
	"errors"
	"net/http"

	"peer-review-service/api"
	"peer-review-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Вспомогательные функции преобразования доменных моделей в API модели

func toAPIQuestionnaire(q *domain.Questionnaire) api.Questionnaire {
	result := api.Questionnaire{
		Id:               q.ID,
		Name:             q.Name,
		InstructorId:     q.InstructorID,
		Private:          q.Private,
		MinQuestionScore: q.MinQuestionScore,
		MaxQuestionScore: q.MaxQuestionScore,
		Type:             q.Type,
		DisplayType:      q.DisplayType,
		InstructionLoc:   q.InstructionLoc,
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        q.UpdatedAt,
	}
	if len(q.Questions) > 0 {
		result.Questions = make([]api.Question, len(q.Questions))
		for i, question := range q.Questions {
			result.Questions[i] = toAPIQuestion(question)
		}
	}
	return result
}

func toAPIQuestion(q *domain.Question) api.Question {
	advices := make([]api.QuestionAdvice, len(q.Advices))
	for i, a := range q.Advices {
		advices[i] = api.QuestionAdvice{
			Id:     a.ID,
			Score:  a.Score,
			Advice: a.Advice,
		}
	}
	return api.Question{
		Id:          q.ID,
		Txt:         q.Txt,
		Weight:      q.Weight,
		Seq:         q.Seq,
		Type:        q.Type,
		Size:        q.Size,
		BreakBefore: q.BreakBefore,
		Advices:     advices,
	}
}

func toAPIImportFields(fields []domain.ImportField) []api.ImportField {
	result := make([]api.ImportField, len(fields))
	for i, f := range fields {
		result[i] = api.ImportField{Key: f.Key, Description: f.Description}
	}
	return result
}

func toAPIWikiReview(review *domain.Review) api.WikiReviewResponse {
	pages := make([]api.WikiPageReport, len(review.Pages))
	for i, p := range review.Pages {
		page := api.WikiPageReport{
			Url:        p.URL,
			LineItems:  p.LineItems,
			Timestamps: p.Timestamps,
			Kept:       p.Kept,
		}
		if p.Degraded != "" {
			degraded := p.Degraded
			page.Degraded = &degraded
		}
		if p.Error != "" {
			msg := p.Error
			page.Error = &msg
		}
		pages[i] = page
	}

	items := review.Items
	if items == nil {
		items = []string{}
	}
	return api.WikiReviewResponse{
		Items:         items,
		Pages:         pages,
		DegradedPages: review.DegradedPages,
	}
}

// fromAPIQuestionnaireInput переносит тело запроса в доменную модель.
// Незаданный диапазон оценок заменяется значениями по умолчанию.
func fromAPIQuestionnaireInput(req api.QuestionnaireInput) *domain.Questionnaire {
	q := &domain.Questionnaire{
		Name:             req.Name,
		InstructorID:     req.InstructorId,
		Type:             req.Type,
		MinQuestionScore: domain.DefaultMinQuestionScore,
		MaxQuestionScore: domain.DefaultMaxQuestionScore,
	}
	if req.Private != nil {
		q.Private = *req.Private
	}
	if req.MinQuestionScore != nil {
		q.MinQuestionScore = *req.MinQuestionScore
	}
	if req.MaxQuestionScore != nil {
		q.MaxQuestionScore = *req.MaxQuestionScore
	}
	if req.DisplayType != nil {
		q.DisplayType = *req.DisplayType
	}
	if req.InstructionLoc != nil {
		q.InstructionLoc = *req.InstructionLoc
	}
	return q
}

// fromAPIQuestionnaireUpdate сохраняет различие между незаданным и нулевым значением.
func fromAPIQuestionnaireUpdate(req api.QuestionnaireInput) domain.QuestionnaireUpdate {
	return domain.QuestionnaireUpdate{
		Name:             req.Name,
		Type:             req.Type,
		Private:          req.Private,
		MinQuestionScore: req.MinQuestionScore,
		MaxQuestionScore: req.MaxQuestionScore,
		DisplayType:      req.DisplayType,
		InstructionLoc:   req.InstructionLoc,
	}
}

func fromAPIScores(scores map[string]api.ScoreSummary) map[string]domain.ScoreSummary {
	result := make(map[string]domain.ScoreSummary, len(scores))
	for symbol, s := range scores {
		result[symbol] = domain.ScoreSummary{Avg: s.Avg, Min: s.Min, Max: s.Max}
	}
	return result
}

func toErrorResponse(code api.ErrorResponseErrorCode, message string) api.ErrorResponse {
	var resp api.ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	return resp
}

func toAPIErrorResponse(httpErr domain.HTTPError) api.ErrorResponse {
	return toErrorResponse(api.ErrorResponseErrorCode(httpErr.Code), httpErr.Message)
}

// respondError пишет ответ об ошибке: доменные ошибки через маппинг, остальные как 500.
func respondError(c echo.Context, logEntry *logrus.Entry, err error, message string) error {
	if httpErr, exists := domain.ToHTTPError(err); exists {
		status := getHTTPStatusCode(err)
		if status >= http.StatusInternalServerError {
			logEntry.WithError(err).Error(message)
		} else {
			logEntry.WithError(err).Warn(message)
		}
		return c.JSON(status, toAPIErrorResponse(httpErr))
	}
	logEntry.WithError(err).Error(message)
	return c.JSON(http.StatusInternalServerError, toErrorResponse(api.INTERNALERROR, err.Error()))
}

func getHTTPStatusCode(err error) int {
	switch {
	// Conflict errors (409)
	case errors.Is(err, domain.ErrQuestionnaireInUse):
		return http.StatusConflict

	// Not Found errors (404)
	case errors.Is(err, domain.ErrQuestionnaireNotFound),
		errors.Is(err, domain.ErrAssignmentQuestionnaireNotFound):
		return http.StatusNotFound

	// Bad Request errors (400) - валидация
	case errors.Is(err, domain.ErrInvalidQuestionnaireID),
		errors.Is(err, domain.ErrInvalidInstructorID),
		errors.Is(err, domain.ErrInvalidAssignmentID),
		errors.Is(err, domain.ErrInvalidWeight),
		errors.Is(err, domain.ErrInvalidQuestionnaire),
		errors.Is(err, domain.ErrImportMissingFields),
		errors.Is(err, domain.ErrImportInvalidRow),
		errors.Is(err, domain.ErrInvalidStartDate):
		return http.StatusBadRequest

	// Upstream wiki errors (502)
	case errors.Is(err, domain.ErrWikiFetchFailed):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}
