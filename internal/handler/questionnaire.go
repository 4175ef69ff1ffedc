package handler

import (
	"net/http"

	"peer-review-service/api"
	"peer-review-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// QuestionnaireHandler обрабатывает HTTP-запросы для управления анкетами
type QuestionnaireHandler struct {
	*BaseHandler
	questionnaireUseCase domain.QuestionnaireUseCase
}

// NewQuestionnaireHandler создает новый экземпляр QuestionnaireHandler
func NewQuestionnaireHandler(questionnaireUseCase domain.QuestionnaireUseCase, logger *logrus.Logger) *QuestionnaireHandler {
	return &QuestionnaireHandler{
		BaseHandler:          NewBaseHandler(logger),
		questionnaireUseCase: questionnaireUseCase,
	}
}

// CreateQuestionnaire обрабатывает создание анкеты
func (h *QuestionnaireHandler) CreateQuestionnaire(c echo.Context) error {
	logEntry := h.logRequest(c, "create_questionnaire")
	logEntry.Info("Creating questionnaire")

	var req api.QuestionnaireInput
	if err := c.Bind(&req); err != nil {
		logEntry.WithError(err).Warn("Failed to bind request")
		return c.JSON(http.StatusBadRequest, toErrorResponse(api.INVALIDREQUEST, err.Error()))
	}

	logEntry = logEntry.WithFields(logrus.Fields{
		"name":          req.Name,
		"instructor_id": req.InstructorId,
	})

	q, err := h.questionnaireUseCase.CreateQuestionnaire(c.Request().Context(), fromAPIQuestionnaireInput(req))
	if err != nil {
		return respondError(c, logEntry, err, "Failed to create questionnaire")
	}

	logEntry.WithField("questionnaire_id", q.ID).Info("Questionnaire created successfully")
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"questionnaire": toAPIQuestionnaire(q),
	})
}

// ListQuestionnaires обрабатывает получение анкет преподавателя
func (h *QuestionnaireHandler) ListQuestionnaires(c echo.Context, params api.ListQuestionnairesParams) error {
	logEntry := h.logRequest(c, "list_questionnaires").WithField("instructor_id", params.InstructorId)
	logEntry.Info("Listing questionnaires")

	list, err := h.questionnaireUseCase.ListQuestionnaires(c.Request().Context(), params.InstructorId)
	if err != nil {
		return respondError(c, logEntry, err, "Failed to list questionnaires")
	}

	result := make([]api.Questionnaire, len(list))
	for i, q := range list {
		result[i] = toAPIQuestionnaire(q)
	}

	logEntry.WithField("count", len(result)).Info("Questionnaires listed successfully")
	return c.JSON(http.StatusOK, map[string]interface{}{
		"instructor_id":  params.InstructorId,
		"questionnaires": result,
	})
}

// GetQuestionnaire обрабатывает получение анкеты с вопросами
func (h *QuestionnaireHandler) GetQuestionnaire(c echo.Context, id int64) error {
	logEntry := h.logRequest(c, "get_questionnaire").WithField("questionnaire_id", id)
	logEntry.Info("Getting questionnaire")

	q, err := h.questionnaireUseCase.GetQuestionnaire(c.Request().Context(), id)
	if err != nil {
		return respondError(c, logEntry, err, "Failed to get questionnaire")
	}

	logEntry.WithField("questions_count", len(q.Questions)).Info("Questionnaire retrieved successfully")
	return c.JSON(http.StatusOK, toAPIQuestionnaire(q))
}

// UpdateQuestionnaire обрабатывает изменение анкеты
func (h *QuestionnaireHandler) UpdateQuestionnaire(c echo.Context, id int64) error {
	logEntry := h.logRequest(c, "update_questionnaire").WithField("questionnaire_id", id)
	logEntry.Info("Updating questionnaire")

	var req api.QuestionnaireInput
	if err := c.Bind(&req); err != nil {
		logEntry.WithError(err).Warn("Failed to bind request")
		return c.JSON(http.StatusBadRequest, toErrorResponse(api.INVALIDREQUEST, err.Error()))
	}

	q, err := h.questionnaireUseCase.UpdateQuestionnaire(c.Request().Context(), id, fromAPIQuestionnaireUpdate(req))
	if err != nil {
		return respondError(c, logEntry, err, "Failed to update questionnaire")
	}

	logEntry.Info("Questionnaire updated successfully")
	return c.JSON(http.StatusOK, map[string]interface{}{
		"questionnaire": toAPIQuestionnaire(q),
	})
}

// DeleteQuestionnaire обрабатывает удаление анкеты
func (h *QuestionnaireHandler) DeleteQuestionnaire(c echo.Context, id int64) error {
	logEntry := h.logRequest(c, "delete_questionnaire").WithField("questionnaire_id", id)
	logEntry.Info("Deleting questionnaire")

	if err := h.questionnaireUseCase.DeleteQuestionnaire(c.Request().Context(), id); err != nil {
		return respondError(c, logEntry, err, "Failed to delete questionnaire")
	}

	logEntry.Info("Questionnaire deleted successfully")
	return c.NoContent(http.StatusNoContent)
}

// CopyQuestionnaire обрабатывает копирование анкеты другому преподавателю
func (h *QuestionnaireHandler) CopyQuestionnaire(c echo.Context, id int64) error {
	logEntry := h.logRequest(c, "copy_questionnaire").WithField("questionnaire_id", id)

	var req api.CopyQuestionnaireRequest
	if err := c.Bind(&req); err != nil {
		logEntry.WithError(err).Warn("Failed to bind request")
		return c.JSON(http.StatusBadRequest, toErrorResponse(api.INVALIDREQUEST, err.Error()))
	}

	logEntry = logEntry.WithField("instructor_id", req.InstructorId)
	logEntry.Info("Copying questionnaire")

	q, err := h.questionnaireUseCase.CopyQuestionnaire(c.Request().Context(), id, req.InstructorId)
	if err != nil {
		return respondError(c, logEntry, err, "Failed to copy questionnaire")
	}

	logEntry.WithFields(logrus.Fields{
		"copy_id":         q.ID,
		"questions_count": len(q.Questions),
	}).Info("Questionnaire copied successfully")
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"questionnaire": toAPIQuestionnaire(q),
	})
}

// GetQuestionnaireMaxScore возвращает максимальный балл и наличие вопросов да/нет
func (h *QuestionnaireHandler) GetQuestionnaireMaxScore(c echo.Context, id int64) error {
	logEntry := h.logRequest(c, "get_max_score").WithField("questionnaire_id", id)
	logEntry.Info("Computing max score")

	ctx := c.Request().Context()

	maxScore, err := h.questionnaireUseCase.MaxPossibleScore(ctx, id)
	if err != nil {
		return respondError(c, logEntry, err, "Failed to compute max score")
	}

	hasTrueFalse, err := h.questionnaireUseCase.HasTrueFalseQuestions(ctx, id)
	if err != nil {
		return respondError(c, logEntry, err, "Failed to inspect questions")
	}

	logEntry.WithField("max_score", maxScore).Info("Max score computed successfully")
	return c.JSON(http.StatusOK, api.MaxScoreResponse{
		QuestionnaireId:       id,
		MaxScore:              maxScore,
		HasTrueFalseQuestions: hasTrueFalse,
	})
}

// PostQuestionnaireWeightedScore вычисляет взвешенный балл анкеты в задании
func (h *QuestionnaireHandler) PostQuestionnaireWeightedScore(c echo.Context, id int64) error {
	logEntry := h.logRequest(c, "weighted_score").WithField("questionnaire_id", id)

	var req api.WeightedScoreRequest
	if err := c.Bind(&req); err != nil {
		logEntry.WithError(err).Warn("Failed to bind request")
		return c.JSON(http.StatusBadRequest, toErrorResponse(api.INVALIDREQUEST, err.Error()))
	}

	logEntry = logEntry.WithField("assignment_id", req.AssignmentId)
	logEntry.Info("Computing weighted score")

	score, err := h.questionnaireUseCase.GetWeightedScore(c.Request().Context(), id, req.AssignmentId, fromAPIScores(req.Scores))
	if err != nil {
		return respondError(c, logEntry, err, "Failed to compute weighted score")
	}

	logEntry.WithField("weighted_score", score).Info("Weighted score computed successfully")
	return c.JSON(http.StatusOK, api.WeightedScoreResponse{
		QuestionnaireId: id,
		AssignmentId:    req.AssignmentId,
		WeightedScore:   score,
	})
}

// PostQuestionnaireAssignment привязывает анкету к заданию
func (h *QuestionnaireHandler) PostQuestionnaireAssignment(c echo.Context, id int64) error {
	logEntry := h.logRequest(c, "attach_assignment").WithField("questionnaire_id", id)

	var req api.AttachAssignmentRequest
	if err := c.Bind(&req); err != nil {
		logEntry.WithError(err).Warn("Failed to bind request")
		return c.JSON(http.StatusBadRequest, toErrorResponse(api.INVALIDREQUEST, err.Error()))
	}

	logEntry = logEntry.WithFields(logrus.Fields{
		"assignment_id": req.AssignmentId,
		"weight":        req.QuestionnaireWeight,
	})
	logEntry.Info("Attaching questionnaire to assignment")

	link := &domain.AssignmentQuestionnaire{
		AssignmentID:        req.AssignmentId,
		AssignmentName:      req.AssignmentName,
		QuestionnaireID:     id,
		QuestionnaireWeight: req.QuestionnaireWeight,
		UsedInRound:         req.UsedInRound,
	}

	if err := h.questionnaireUseCase.AttachToAssignment(c.Request().Context(), link); err != nil {
		return respondError(c, logEntry, err, "Failed to attach questionnaire")
	}

	logEntry.Info("Questionnaire attached successfully")
	return c.JSON(http.StatusOK, api.AssignmentQuestionnaire{
		AssignmentId:        link.AssignmentID,
		AssignmentName:      link.AssignmentName,
		QuestionnaireId:     link.QuestionnaireID,
		QuestionnaireWeight: link.QuestionnaireWeight,
		UsedInRound:         link.UsedInRound,
	})
}
