package domain

import (
	"context"
	"io"
)

// QuestionnaireUseCase определяет бизнес-логику для работы с анкетами.
type QuestionnaireUseCase interface {
	CreateQuestionnaire(ctx context.Context, q *Questionnaire) (*Questionnaire, error)
	GetQuestionnaire(ctx context.Context, id int64) (*Questionnaire, error)
	ListQuestionnaires(ctx context.Context, instructorID int64) ([]*Questionnaire, error)
	UpdateQuestionnaire(ctx context.Context, id int64, upd QuestionnaireUpdate) (*Questionnaire, error)
	DeleteQuestionnaire(ctx context.Context, id int64) error
	CopyQuestionnaire(ctx context.Context, id, instructorID int64) (*Questionnaire, error)
	HasTrueFalseQuestions(ctx context.Context, id int64) (bool, error)
	MaxPossibleScore(ctx context.Context, id int64) (int64, error)
	GetWeightedScore(ctx context.Context, id, assignmentID int64, scores map[string]ScoreSummary) (float64, error)
	AttachToAssignment(ctx context.Context, link *AssignmentQuestionnaire) error
}

// ImportUseCase определяет импорт вопросов в анкету.
type ImportUseCase interface {
	ImportQuestion(ctx context.Context, questionnaireID int64, row map[string]string) (*Question, error)
	ImportCSV(ctx context.Context, questionnaireID int64, r io.Reader) (int, error)
	RequiredImportFields() []ImportField
	OptionalImportFields(ctx context.Context, questionnaireID int64) ([]ImportField, error)
}

// WikiReviewUseCase определяет бизнес-логику сбора правок из вики.
type WikiReviewUseCase interface {
	ReviewDokuWiki(ctx context.Context, query ReviewQuery) (*Review, error)
}
