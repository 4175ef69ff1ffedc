// Package api описывает HTTP-контракт сервиса: модели запросов и ответов,
// интерфейс сервера и привязку параметров маршрутов.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ErrorResponseErrorCode код ошибки в ответе API.
type ErrorResponseErrorCode string

const (
	INVALIDREQUEST ErrorResponseErrorCode = "INVALID_REQUEST"
	INTERNALERROR  ErrorResponseErrorCode = "INTERNAL_ERROR"
)

// ErrorResponse defines model for ErrorResponse.
type ErrorResponse struct {
	Error struct {
		Code    ErrorResponseErrorCode `json:"code"`
		Message string                 `json:"message"`
	} `json:"error"`
}

// QuestionAdvice defines model for QuestionAdvice.
type QuestionAdvice struct {
	Id     int64  `json:"id"`
	Score  int    `json:"score"`
	Advice string `json:"advice"`
}

// Question defines model for Question.
type Question struct {
	Id          int64            `json:"id"`
	Txt         string           `json:"txt"`
	Weight      int              `json:"weight"`
	Seq         float64          `json:"seq"`
	Type        string           `json:"type"`
	Size        string           `json:"size,omitempty"`
	BreakBefore bool             `json:"break_before"`
	Advices     []QuestionAdvice `json:"advices"`
}

// Questionnaire defines model for Questionnaire.
type Questionnaire struct {
	Id               int64      `json:"id"`
	Name             string     `json:"name"`
	InstructorId     int64      `json:"instructor_id"`
	Private          bool       `json:"private"`
	MinQuestionScore int        `json:"min_question_score"`
	MaxQuestionScore int        `json:"max_question_score"`
	Type             string     `json:"type"`
	DisplayType      string     `json:"display_type"`
	InstructionLoc   string     `json:"instruction_loc"`
	Questions        []Question `json:"questions,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// QuestionnaireInput defines model for QuestionnaireInput.
type QuestionnaireInput struct {
	Name             string  `json:"name"`
	InstructorId     int64   `json:"instructor_id"`
	Private          *bool   `json:"private,omitempty"`
	MinQuestionScore *int    `json:"min_question_score,omitempty"`
	MaxQuestionScore *int    `json:"max_question_score,omitempty"`
	Type             string  `json:"type"`
	DisplayType      *string `json:"display_type,omitempty"`
	InstructionLoc   *string `json:"instruction_loc,omitempty"`
}

// CopyQuestionnaireRequest defines model for CopyQuestionnaireRequest.
type CopyQuestionnaireRequest struct {
	InstructorId int64 `json:"instructor_id"`
}

// MaxScoreResponse defines model for MaxScoreResponse.
type MaxScoreResponse struct {
	QuestionnaireId       int64 `json:"questionnaire_id"`
	MaxScore              int64 `json:"max_score"`
	HasTrueFalseQuestions bool  `json:"has_true_false_questions"`
}

// ScoreSummary defines model for ScoreSummary.
type ScoreSummary struct {
	Avg *float64 `json:"avg"`
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// WeightedScoreRequest defines model for WeightedScoreRequest.
type WeightedScoreRequest struct {
	AssignmentId int64                   `json:"assignment_id"`
	Scores       map[string]ScoreSummary `json:"scores"`
}

// WeightedScoreResponse defines model for WeightedScoreResponse.
type WeightedScoreResponse struct {
	QuestionnaireId int64   `json:"questionnaire_id"`
	AssignmentId    int64   `json:"assignment_id"`
	WeightedScore   float64 `json:"weighted_score"`
}

// AttachAssignmentRequest defines model for AttachAssignmentRequest.
type AttachAssignmentRequest struct {
	AssignmentId        int64  `json:"assignment_id"`
	AssignmentName      string `json:"assignment_name"`
	QuestionnaireWeight int    `json:"questionnaire_weight"`
	UsedInRound         *int   `json:"used_in_round,omitempty"`
}

// AssignmentQuestionnaire defines model for AssignmentQuestionnaire.
type AssignmentQuestionnaire struct {
	AssignmentId        int64  `json:"assignment_id"`
	AssignmentName      string `json:"assignment_name"`
	QuestionnaireId     int64  `json:"questionnaire_id"`
	QuestionnaireWeight int    `json:"questionnaire_weight"`
	UsedInRound         *int   `json:"used_in_round,omitempty"`
}

// ImportField defines model for ImportField.
type ImportField struct {
	Key         string `json:"key"`
	Description string `json:"description"`
}

// ImportFieldsResponse defines model for ImportFieldsResponse.
type ImportFieldsResponse struct {
	Required []ImportField `json:"required"`
	Optional []ImportField `json:"optional"`
}

// ImportRequest defines model for ImportRequest.
type ImportRequest struct {
	Rows []map[string]string `json:"rows"`
}

// ImportResponse defines model for ImportResponse.
type ImportResponse struct {
	QuestionnaireId int64 `json:"questionnaire_id"`
	Imported        int   `json:"imported"`
}

// WikiPageReport defines model for WikiPageReport.
type WikiPageReport struct {
	Url        string  `json:"url"`
	LineItems  int     `json:"line_items"`
	Timestamps int     `json:"timestamps"`
	Kept       int     `json:"kept"`
	Degraded   *string `json:"degraded,omitempty"`
	Error      *string `json:"error,omitempty"`
}

// WikiReviewResponse defines model for WikiReviewResponse.
type WikiReviewResponse struct {
	Items         []string         `json:"items"`
	Pages         []WikiPageReport `json:"pages"`
	DegradedPages int              `json:"degraded_pages"`
}

// GetWikiReviewsParams defines parameters for GetWikiReviews.
type GetWikiReviewsParams struct {
	AssignmentUrl string  `form:"assignment_url" json:"assignment_url"`
	StartDate     *string `form:"start_date,omitempty" json:"start_date,omitempty"`
	WikiUser      *string `form:"wiki_user,omitempty" json:"wiki_user,omitempty"`
}

// ListQuestionnairesParams defines parameters for ListQuestionnaires.
type ListQuestionnairesParams struct {
	InstructorId int64 `form:"instructor_id" json:"instructor_id"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /wiki/reviews)
	GetWikiReviews(ctx echo.Context, params GetWikiReviewsParams) error
	// (GET /questionnaires)
	ListQuestionnaires(ctx echo.Context, params ListQuestionnairesParams) error
	// (POST /questionnaires)
	CreateQuestionnaire(ctx echo.Context) error
	// (GET /questionnaires/{id})
	GetQuestionnaire(ctx echo.Context, id int64) error
	// (PUT /questionnaires/{id})
	UpdateQuestionnaire(ctx echo.Context, id int64) error
	// (DELETE /questionnaires/{id})
	DeleteQuestionnaire(ctx echo.Context, id int64) error
	// (POST /questionnaires/{id}/copy)
	CopyQuestionnaire(ctx echo.Context, id int64) error
	// (GET /questionnaires/{id}/max-score)
	GetQuestionnaireMaxScore(ctx echo.Context, id int64) error
	// (POST /questionnaires/{id}/weighted-score)
	PostQuestionnaireWeightedScore(ctx echo.Context, id int64) error
	// (POST /questionnaires/{id}/assignments)
	PostQuestionnaireAssignment(ctx echo.Context, id int64) error
	// (GET /questionnaires/{id}/import-fields)
	GetQuestionnaireImportFields(ctx echo.Context, id int64) error
	// (POST /questionnaires/{id}/import)
	PostQuestionnaireImport(ctx echo.Context, id int64) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// GetWikiReviews converts echo context to params.
func (w *ServerInterfaceWrapper) GetWikiReviews(ctx echo.Context) error {
	var err error

	var params GetWikiReviewsParams

	err = runtime.BindQueryParameter("form", true, true, "assignment_url", ctx.QueryParams(), &params.AssignmentUrl)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter assignment_url: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "start_date", ctx.QueryParams(), &params.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter start_date: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "wiki_user", ctx.QueryParams(), &params.WikiUser)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter wiki_user: %s", err))
	}

	return w.Handler.GetWikiReviews(ctx, params)
}

// ListQuestionnaires converts echo context to params.
func (w *ServerInterfaceWrapper) ListQuestionnaires(ctx echo.Context) error {
	var err error

	var params ListQuestionnairesParams

	err = runtime.BindQueryParameter("form", true, true, "instructor_id", ctx.QueryParams(), &params.InstructorId)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter instructor_id: %s", err))
	}

	return w.Handler.ListQuestionnaires(ctx, params)
}

// CreateQuestionnaire converts echo context to params.
func (w *ServerInterfaceWrapper) CreateQuestionnaire(ctx echo.Context) error {
	return w.Handler.CreateQuestionnaire(ctx)
}

// bindID извлекает path-параметр id.
func bindID(ctx echo.Context) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

// GetQuestionnaire converts echo context to params.
func (w *ServerInterfaceWrapper) GetQuestionnaire(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetQuestionnaire(ctx, id)
}

// UpdateQuestionnaire converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateQuestionnaire(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateQuestionnaire(ctx, id)
}

// DeleteQuestionnaire converts echo context to params.
func (w *ServerInterfaceWrapper) DeleteQuestionnaire(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.DeleteQuestionnaire(ctx, id)
}

// CopyQuestionnaire converts echo context to params.
func (w *ServerInterfaceWrapper) CopyQuestionnaire(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CopyQuestionnaire(ctx, id)
}

// GetQuestionnaireMaxScore converts echo context to params.
func (w *ServerInterfaceWrapper) GetQuestionnaireMaxScore(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetQuestionnaireMaxScore(ctx, id)
}

// PostQuestionnaireWeightedScore converts echo context to params.
func (w *ServerInterfaceWrapper) PostQuestionnaireWeightedScore(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.PostQuestionnaireWeightedScore(ctx, id)
}

// PostQuestionnaireAssignment converts echo context to params.
func (w *ServerInterfaceWrapper) PostQuestionnaireAssignment(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.PostQuestionnaireAssignment(ctx, id)
}

// GetQuestionnaireImportFields converts echo context to params.
func (w *ServerInterfaceWrapper) GetQuestionnaireImportFields(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetQuestionnaireImportFields(ctx, id)
}

// PostQuestionnaireImport converts echo context to params.
func (w *ServerInterfaceWrapper) PostQuestionnaireImport(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.PostQuestionnaireImport(ctx, id)
}

// EchoRouter is the subset of echo routing used to register handlers.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, prefixing every path with baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/wiki/reviews", wrapper.GetWikiReviews)
	router.GET(baseURL+"/questionnaires", wrapper.ListQuestionnaires)
	router.POST(baseURL+"/questionnaires", wrapper.CreateQuestionnaire)
	router.GET(baseURL+"/questionnaires/:id", wrapper.GetQuestionnaire)
	router.PUT(baseURL+"/questionnaires/:id", wrapper.UpdateQuestionnaire)
	router.DELETE(baseURL+"/questionnaires/:id", wrapper.DeleteQuestionnaire)
	router.POST(baseURL+"/questionnaires/:id/copy", wrapper.CopyQuestionnaire)
	router.GET(baseURL+"/questionnaires/:id/max-score", wrapper.GetQuestionnaireMaxScore)
	router.POST(baseURL+"/questionnaires/:id/weighted-score", wrapper.PostQuestionnaireWeightedScore)
	router.POST(baseURL+"/questionnaires/:id/assignments", wrapper.PostQuestionnaireAssignment)
	router.GET(baseURL+"/questionnaires/:id/import-fields", wrapper.GetQuestionnaireImportFields)
	router.POST(baseURL+"/questionnaires/:id/import", wrapper.PostQuestionnaireImport)
}
