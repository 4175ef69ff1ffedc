package handler

import (
	"net/http"
	"strings"

	"peer-review-service/api"
	"peer-review-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// ImportHandler обрабатывает импорт вопросов в анкету
type ImportHandler struct {
	*BaseHandler
	importUseCase domain.ImportUseCase
}

// NewImportHandler создает новый экземпляр ImportHandler
func NewImportHandler(importUseCase domain.ImportUseCase, logger *logrus.Logger) *ImportHandler {
	return &ImportHandler{
		BaseHandler:   NewBaseHandler(logger),
		importUseCase: importUseCase,
	}
}

// GetQuestionnaireImportFields возвращает обязательные и необязательные колонки импорта
func (h *ImportHandler) GetQuestionnaireImportFields(c echo.Context, id int64) error {
	logEntry := h.logRequest(c, "get_import_fields").WithField("questionnaire_id", id)
	logEntry.Info("Getting import fields")

	optional, err := h.importUseCase.OptionalImportFields(c.Request().Context(), id)
	if err != nil {
		return respondError(c, logEntry, err, "Failed to get import fields")
	}

	return c.JSON(http.StatusOK, api.ImportFieldsResponse{
		Required: toAPIImportFields(h.importUseCase.RequiredImportFields()),
		Optional: toAPIImportFields(optional),
	})
}

// PostQuestionnaireImport импортирует вопросы из JSON-строк или CSV-тела запроса
func (h *ImportHandler) PostQuestionnaireImport(c echo.Context, id int64) error {
	logEntry := h.logRequest(c, "import_questions").WithField("questionnaire_id", id)

	ctx := c.Request().Context()
	contentType := c.Request().Header.Get(echo.HeaderContentType)

	if strings.HasPrefix(contentType, "text/csv") {
		logEntry.Info("Importing questions from CSV")

		imported, err := h.importUseCase.ImportCSV(ctx, id, c.Request().Body)
		if err != nil {
			logEntry = logEntry.WithField("imported", imported)
			return respondError(c, logEntry, err, "Failed to import CSV")
		}

		logEntry.WithField("imported", imported).Info("Questions imported successfully")
		return c.JSON(http.StatusOK, api.ImportResponse{QuestionnaireId: id, Imported: imported})
	}

	var req api.ImportRequest
	if err := c.Bind(&req); err != nil {
		logEntry.WithError(err).Warn("Failed to bind request")
		return c.JSON(http.StatusBadRequest, toErrorResponse(api.INVALIDREQUEST, err.Error()))
	}

	logEntry = logEntry.WithField("rows", len(req.Rows))
	logEntry.Info("Importing questions from rows")

	imported := 0
	for i, row := range req.Rows {
		if _, err := h.importUseCase.ImportQuestion(ctx, id, row); err != nil {
			return respondError(c, logEntry.WithField("row", i+1), &domain.ImportRowError{Line: i + 1, Err: err}, "Failed to import row")
		}
		imported++
	}

	logEntry.WithField("imported", imported).Info("Questions imported successfully")
	return c.JSON(http.StatusOK, api.ImportResponse{QuestionnaireId: id, Imported: imported})
}
