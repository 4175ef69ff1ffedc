package mocks

import (
	"context"
	"io"

	"peer-review-service/internal/domain"

	"github.com/stretchr/testify/mock"
)

// QuestionnaireUseCase мок domain.QuestionnaireUseCase.
type QuestionnaireUseCase struct {
	mock.Mock
}

func (m *QuestionnaireUseCase) CreateQuestionnaire(ctx context.Context, q *domain.Questionnaire) (*domain.Questionnaire, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Questionnaire), args.Error(1)
}

func (m *QuestionnaireUseCase) GetQuestionnaire(ctx context.Context, id int64) (*domain.Questionnaire, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Questionnaire), args.Error(1)
}

func (m *QuestionnaireUseCase) ListQuestionnaires(ctx context.Context, instructorID int64) ([]*domain.Questionnaire, error) {
	args := m.Called(ctx, instructorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Questionnaire), args.Error(1)
}

func (m *QuestionnaireUseCase) UpdateQuestionnaire(ctx context.Context, id int64, upd domain.QuestionnaireUpdate) (*domain.Questionnaire, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Questionnaire), args.Error(1)
}

func (m *QuestionnaireUseCase) DeleteQuestionnaire(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *QuestionnaireUseCase) CopyQuestionnaire(ctx context.Context, id, instructorID int64) (*domain.Questionnaire, error) {
	args := m.Called(ctx, id, instructorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Questionnaire), args.Error(1)
}

func (m *QuestionnaireUseCase) HasTrueFalseQuestions(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *QuestionnaireUseCase) MaxPossibleScore(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *QuestionnaireUseCase) GetWeightedScore(ctx context.Context, id, assignmentID int64, scores map[string]domain.ScoreSummary) (float64, error) {
	args := m.Called(ctx, id, assignmentID, scores)
	return args.Get(0).(float64), args.Error(1)
}

func (m *QuestionnaireUseCase) AttachToAssignment(ctx context.Context, link *domain.AssignmentQuestionnaire) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

// ImportUseCase мок domain.ImportUseCase.
type ImportUseCase struct {
	mock.Mock
}

func (m *ImportUseCase) ImportQuestion(ctx context.Context, questionnaireID int64, row map[string]string) (*domain.Question, error) {
	args := m.Called(ctx, questionnaireID, row)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *ImportUseCase) ImportCSV(ctx context.Context, questionnaireID int64, r io.Reader) (int, error) {
	args := m.Called(ctx, questionnaireID, r)
	return args.Int(0), args.Error(1)
}

func (m *ImportUseCase) RequiredImportFields() []domain.ImportField {
	args := m.Called()
	return args.Get(0).([]domain.ImportField)
}

func (m *ImportUseCase) OptionalImportFields(ctx context.Context, questionnaireID int64) ([]domain.ImportField, error) {
	args := m.Called(ctx, questionnaireID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ImportField), args.Error(1)
}

// WikiReviewUseCase мок domain.WikiReviewUseCase.
type WikiReviewUseCase struct {
	mock.Mock
}

func (m *WikiReviewUseCase) ReviewDokuWiki(ctx context.Context, query domain.ReviewQuery) (*domain.Review, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}
