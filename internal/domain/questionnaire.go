package domain

import (
	"context"
	"strconv"
	"time"
)

const (
	// DefaultMinQuestionScore минимальная оценка, которую ревьюер может поставить за вопрос.
	DefaultMinQuestionScore = 0
	// DefaultMaxQuestionScore максимальная оценка за вопрос.
	DefaultMaxQuestionScore = 5
	// DefaultQuestionnaireURL ссылка на инструкцию по умолчанию.
	DefaultQuestionnaireURL = "http://www.courses.ncsu.edu/csc517"
	// DefaultTextQuestionSize размер поля для текстовых вопросов без размера.
	DefaultTextQuestionSize = "50,3"
	// CheckboxQuestionType тип вопроса да/нет.
	CheckboxQuestionType = "Checkbox"
)

// QuestionnaireTypes допустимые типы анкет (включая устаревшие написания с пробелом).
var QuestionnaireTypes = []string{
	"ReviewQuestionnaire",
	"MetareviewQuestionnaire",
	"Author FeedbackQuestionnaire",
	"AuthorFeedbackQuestionnaire",
	"Teammate ReviewQuestionnaire",
	"TeammateReviewQuestionnaire",
	"SurveyQuestionnaire",
	"AssignmentSurveyQuestionnaire",
	"Assignment SurveyQuestionnaire",
	"Global SurveyQuestionnaire",
	"GlobalSurveyQuestionnaire",
	"Course SurveyQuestionnaire",
	"CourseSurveyQuestionnaire",
	"Bookmark RatingQuestionnaire",
	"BookmarkRatingQuestionnaire",
	"QuizQuestionnaire",
}

var questionnaireSymbols = map[string]string{
	"ReviewQuestionnaire":            "review",
	"MetareviewQuestionnaire":        "metareview",
	"Author FeedbackQuestionnaire":   "feedback",
	"AuthorFeedbackQuestionnaire":    "feedback",
	"Teammate ReviewQuestionnaire":   "teammate",
	"TeammateReviewQuestionnaire":    "teammate",
	"SurveyQuestionnaire":            "survey",
	"AssignmentSurveyQuestionnaire":  "assignment_survey",
	"Assignment SurveyQuestionnaire": "assignment_survey",
	"Global SurveyQuestionnaire":     "global_survey",
	"GlobalSurveyQuestionnaire":      "global_survey",
	"Course SurveyQuestionnaire":     "course_survey",
	"CourseSurveyQuestionnaire":      "course_survey",
	"Bookmark RatingQuestionnaire":   "bookmark",
	"BookmarkRatingQuestionnaire":    "bookmark",
	"QuizQuestionnaire":              "quiz",
}

// textQuestionTypes типы вопросов, которым при копировании нужен размер поля.
var textQuestionTypes = map[string]bool{
	"Criterion":    true,
	"TextResponse": true,
	"TextArea":     true,
	"TextField":    true,
}

// IsQuestionnaireType проверяет, что тип анкеты известен.
func IsQuestionnaireType(t string) bool {
	_, ok := questionnaireSymbols[t]
	return ok
}

// IsTextQuestionType сообщает, относится ли вопрос к текстовым (Criterion, TextResponse и наследники).
func IsTextQuestionType(t string) bool {
	return textQuestionTypes[t]
}

// Questionnaire представляет анкету: набор вопросов для ревью.
type Questionnaire struct {
	ID               int64
	Name             string
	InstructorID     int64
	Private          bool
	MinQuestionScore int
	MaxQuestionScore int
	Type             string
	DisplayType      string
	InstructionLoc   string
	Questions        []*Question
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// QuestionnaireUpdate изменения анкеты. Поле со значением nil сохраняет текущее значение.
type QuestionnaireUpdate struct {
	Name             string
	Type             string
	Private          *bool
	MinQuestionScore *int
	MaxQuestionScore *int
	DisplayType      *string
	InstructionLoc   *string
}

// Apply переносит изменения в анкету.
func (u QuestionnaireUpdate) Apply(q *Questionnaire) {
	q.Name = u.Name
	q.Type = u.Type
	if u.Private != nil {
		q.Private = *u.Private
	}
	if u.MinQuestionScore != nil {
		q.MinQuestionScore = *u.MinQuestionScore
	}
	if u.MaxQuestionScore != nil {
		q.MaxQuestionScore = *u.MaxQuestionScore
	}
	if u.DisplayType != nil {
		q.DisplayType = *u.DisplayType
	}
	if u.InstructionLoc != nil {
		q.InstructionLoc = *u.InstructionLoc
	}
}

// Symbol возвращает ключ анкеты в таблице оценок.
// Если анкета используется в конкретном раунде, номер раунда добавляется к ключу.
func (q *Questionnaire) Symbol(round *int) string {
	symbol, ok := questionnaireSymbols[q.Type]
	if !ok {
		symbol = q.Type
	}
	if round == nil {
		return symbol
	}
	return symbol + strconv.Itoa(*round)
}

// Question представляет вопрос анкеты.
type Question struct {
	ID              int64
	QuestionnaireID int64
	Txt             string
	Weight          int
	Seq             float64
	Type            string
	Size            string
	BreakBefore     bool
	Advices         []*QuestionAdvice
}

// QuestionAdvice подсказка ревьюеру для конкретной оценки.
type QuestionAdvice struct {
	ID         int64
	QuestionID int64
	Score      int
	Advice     string
}

// Assignment минимальное представление задания.
type Assignment struct {
	ID   int64
	Name string
}

// AssignmentQuestionnaire связывает анкету с заданием.
type AssignmentQuestionnaire struct {
	AssignmentID        int64
	AssignmentName      string
	QuestionnaireID     int64
	QuestionnaireWeight int
	UsedInRound         *int
}

// ScoreSummary агрегированные оценки по одной анкете.
type ScoreSummary struct {
	Avg *float64 `json:"avg"`
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// ImportField описывает колонку файла импорта.
type ImportField struct {
	Key         string `json:"key"`
	Description string `json:"description"`
}

// QuestionnaireRepository определяет контракт для работы с хранилищем анкет.
type QuestionnaireRepository interface {
	Create(ctx context.Context, q *Questionnaire) error
	Update(ctx context.Context, q *Questionnaire) error
	GetByID(ctx context.Context, id int64) (*Questionnaire, error)
	ListByInstructor(ctx context.Context, instructorID int64) ([]*Questionnaire, error)
	NameTaken(ctx context.Context, name string, instructorID, excludeID int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	Copy(ctx context.Context, src *Questionnaire, dst *Questionnaire) error
	MaxPossibleScore(ctx context.Context, id int64) (int64, error)
}

// QuestionRepository определяет контракт для работы с вопросами.
type QuestionRepository interface {
	ListByQuestionnaire(ctx context.Context, questionnaireID int64) ([]*Question, error)
	CreateWithAdvices(ctx context.Context, question *Question) error
}

// AssignmentRepository определяет контракт для работы со связями заданий и анкет.
type AssignmentRepository interface {
	AttachQuestionnaire(ctx context.Context, link *AssignmentQuestionnaire) error
	GetAssignmentQuestionnaire(ctx context.Context, assignmentID, questionnaireID int64) (*AssignmentQuestionnaire, error)
	ListByQuestionnaire(ctx context.Context, questionnaireID int64) ([]*AssignmentQuestionnaire, error)
}
