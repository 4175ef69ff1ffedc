package domain

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

// Domain errors (для бизнес-логики)
var (
	// Validation errors
	ErrInvalidQuestionnaireID = errors.New("invalid questionnaire id")
	ErrInvalidInstructorID    = errors.New("invalid instructor id")
	ErrInvalidAssignmentID    = errors.New("invalid assignment id")
	ErrInvalidQuestionnaire   = errors.New("invalid questionnaire")
	ErrInvalidWeight          = errors.New("questionnaire weight must be between 0 and 100")

	// Questionnaire errors
	ErrQuestionnaireNotFound = errors.New("questionnaire not found")
	ErrQuestionnaireInUse    = errors.New("questionnaire is used by an assignment")

	// Assignment errors
	ErrAssignmentQuestionnaireNotFound = errors.New("questionnaire is not attached to this assignment")

	// Import errors
	ErrImportMissingFields = errors.New("record does not contain required items")
	ErrImportInvalidRow    = errors.New("invalid import row")

	// Wiki errors
	ErrInvalidStartDate = errors.New("invalid start date")
	ErrWikiFetchFailed  = errors.New("wiki fetch failed")
)

// ValidationError собирает ошибки валидации по полям.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError создает пустой ValidationError.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add добавляет сообщение для поля.
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// Empty сообщает, что ошибок нет.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e.Fields[field], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidQuestionnaire
}

// InUseError сообщает, какое задание использует анкету.
type InUseError struct {
	AssignmentID   int64
	AssignmentName string
}

func (e *InUseError) Error() string {
	return "the assignment " + e.AssignmentName + " uses this questionnaire"
}

func (e *InUseError) Unwrap() error {
	return ErrQuestionnaireInUse
}

// ImportRowError указывает строку файла импорта, на которой произошла ошибка.
type ImportRowError struct {
	Line int
	Err  error
}

func (e *ImportRowError) Error() string {
	return "line " + strconv.Itoa(e.Line) + ": " + e.Err.Error()
}

func (e *ImportRowError) Unwrap() error {
	return e.Err
}

// HTTPError для ответов API
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error HTTPError `json:"error"`
}

type errorMapping struct {
	err     error
	httpErr HTTPError
}

// Маппинг domain ошибок в HTTP ошибки. Порядок важен: более конкретные ошибки идут раньше.
var ErrorMapping = []errorMapping{
	{ErrInvalidQuestionnaireID, HTTPError{Code: "INVALID_ID", Message: "questionnaire id must be positive"}},
	{ErrInvalidInstructorID, HTTPError{Code: "INVALID_INSTRUCTOR", Message: "instructor id must be positive"}},
	{ErrInvalidAssignmentID, HTTPError{Code: "INVALID_ASSIGNMENT", Message: "assignment id must be positive"}},
	{ErrInvalidWeight, HTTPError{Code: "INVALID_WEIGHT", Message: "questionnaire weight must be between 0 and 100"}},
	{ErrInvalidQuestionnaire, HTTPError{Code: "VALIDATION_FAILED", Message: "questionnaire is invalid"}},
	{ErrQuestionnaireNotFound, HTTPError{Code: "NOT_FOUND", Message: "questionnaire not found"}},
	{ErrQuestionnaireInUse, HTTPError{Code: "IN_USE", Message: "questionnaire is used by an assignment"}},
	{ErrAssignmentQuestionnaireNotFound, HTTPError{Code: "NOT_FOUND", Message: "questionnaire is not attached to this assignment"}},
	{ErrImportMissingFields, HTTPError{Code: "IMPORT_MISSING_FIELDS", Message: "record does not contain required items"}},
	{ErrImportInvalidRow, HTTPError{Code: "IMPORT_INVALID_ROW", Message: "import row is invalid"}},
	{ErrInvalidStartDate, HTTPError{Code: "INVALID_START_DATE", Message: "start_date is not a recognized date"}},
	{ErrWikiFetchFailed, HTTPError{Code: "WIKI_UNAVAILABLE", Message: "failed to fetch wiki pages"}},
}

// ToHTTPError преобразует domain ошибку в HTTP ошибку.
// Для ошибок с подробностями (валидация, импорт) сообщение берется из самой ошибки.
func ToHTTPError(err error) (HTTPError, bool) {
	for _, m := range ErrorMapping {
		if !errors.Is(err, m.err) {
			continue
		}
		httpErr := m.httpErr
		var validationErr *ValidationError
		var inUseErr *InUseError
		var rowErr *ImportRowError
		switch {
		case errors.As(err, &validationErr):
			httpErr.Message = validationErr.Error()
		case errors.As(err, &inUseErr):
			httpErr.Message = inUseErr.Error()
		case errors.As(err, &rowErr):
			httpErr.Message = rowErr.Error()
		}
		return httpErr, true
	}
	return HTTPError{}, false
}
