package mocks

import (
	"context"

	"peer-review-service/internal/domain"

	"github.com/stretchr/testify/mock"
)

// QuestionnaireRepository мок domain.QuestionnaireRepository.
type QuestionnaireRepository struct {
	mock.Mock
}

func (m *QuestionnaireRepository) Create(ctx context.Context, q *domain.Questionnaire) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *QuestionnaireRepository) Update(ctx context.Context, q *domain.Questionnaire) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *QuestionnaireRepository) GetByID(ctx context.Context, id int64) (*domain.Questionnaire, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Questionnaire), args.Error(1)
}

func (m *QuestionnaireRepository) ListByInstructor(ctx context.Context, instructorID int64) ([]*domain.Questionnaire, error) {
	args := m.Called(ctx, instructorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Questionnaire), args.Error(1)
}

func (m *QuestionnaireRepository) NameTaken(ctx context.Context, name string, instructorID, excludeID int64) (bool, error) {
	args := m.Called(ctx, name, instructorID, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *QuestionnaireRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *QuestionnaireRepository) Copy(ctx context.Context, src *domain.Questionnaire, dst *domain.Questionnaire) error {
	args := m.Called(ctx, src, dst)
	return args.Error(0)
}

func (m *QuestionnaireRepository) MaxPossibleScore(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// QuestionRepository мок domain.QuestionRepository.
type QuestionRepository struct {
	mock.Mock
}

func (m *QuestionRepository) ListByQuestionnaire(ctx context.Context, questionnaireID int64) ([]*domain.Question, error) {
	args := m.Called(ctx, questionnaireID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

func (m *QuestionRepository) CreateWithAdvices(ctx context.Context, question *domain.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

// AssignmentRepository мок domain.AssignmentRepository.
type AssignmentRepository struct {
	mock.Mock
}

func (m *AssignmentRepository) AttachQuestionnaire(ctx context.Context, link *domain.AssignmentQuestionnaire) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *AssignmentRepository) GetAssignmentQuestionnaire(ctx context.Context, assignmentID, questionnaireID int64) (*domain.AssignmentQuestionnaire, error) {
	args := m.Called(ctx, assignmentID, questionnaireID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssignmentQuestionnaire), args.Error(1)
}

func (m *AssignmentRepository) ListByQuestionnaire(ctx context.Context, questionnaireID int64) ([]*domain.AssignmentQuestionnaire, error) {
	args := m.Called(ctx, questionnaireID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AssignmentQuestionnaire), args.Error(1)
}

// WikiReviewer мок domain.WikiReviewer.
type WikiReviewer struct {
	mock.Mock
}

func (m *WikiReviewer) Review(ctx context.Context, query domain.ReviewQuery) (*domain.Review, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}
