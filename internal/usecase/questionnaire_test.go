package usecase_test

import (
	"context"
	"errors"
	"testing"

	"peer-review-service/internal/domain"
	"peer-review-service/internal/mocks"
	"peer-review-service/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newQuestionnaireUseCase() (domain.QuestionnaireUseCase, *mocks.QuestionnaireRepository, *mocks.AssignmentRepository) {
	qRepo := &mocks.QuestionnaireRepository{}
	aRepo := &mocks.AssignmentRepository{}
	return usecase.NewQuestionnaireUseCase(qRepo, aRepo), qRepo, aRepo
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestQuestionnaireUseCase_Create_AppliesDefaults(t *testing.T) {
	ctx := context.Background()
	uc, qRepo, _ := newQuestionnaireUseCase()

	q := &domain.Questionnaire{
		Name: "Design review", InstructorID: 7, Type: "ReviewQuestionnaire",
		MinQuestionScore: 1, MaxQuestionScore: 10,
	}

	qRepo.On("NameTaken", ctx, "Design review", int64(7), int64(0)).Return(false, nil)
	qRepo.On("Create", ctx, q).Return(nil)

	created, err := uc.CreateQuestionnaire(ctx, q)

	require.NoError(t, err)
	assert.Equal(t, 1, created.MinQuestionScore)
	assert.Equal(t, 10, created.MaxQuestionScore)
	assert.Equal(t, domain.DefaultQuestionnaireURL, created.InstructionLoc)
	assert.Equal(t, "Review", created.DisplayType)
	qRepo.AssertExpectations(t)
}

func TestQuestionnaireUseCase_Create_ValidationErrors(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name   string
		q      *domain.Questionnaire
		taken  bool
		fields []string
	}{
		{
			name:   "Blank name",
			q:      &domain.Questionnaire{InstructorID: 1, Type: "ReviewQuestionnaire", MaxQuestionScore: 5},
			fields: []string{"name"},
		},
		{
			name:   "Max below one",
			q:      &domain.Questionnaire{Name: "q", InstructorID: 1, Type: "ReviewQuestionnaire", MinQuestionScore: -1, MaxQuestionScore: -1},
			fields: []string{"max_question_score", "min_question_score"},
		},
		{
			name:   "Zero score range",
			q:      &domain.Questionnaire{Name: "q", InstructorID: 1, Type: "ReviewQuestionnaire"},
			fields: []string{"max_question_score", "min_question_score"},
		},
		{
			name:   "Min not below max",
			q:      &domain.Questionnaire{Name: "q", InstructorID: 1, Type: "ReviewQuestionnaire", MinQuestionScore: 5, MaxQuestionScore: 5},
			fields: []string{"min_question_score"},
		},
		{
			name:   "Unknown type",
			q:      &domain.Questionnaire{Name: "q", InstructorID: 1, Type: "PollQuestionnaire", MaxQuestionScore: 5},
			fields: []string{"type"},
		},
		{
			name:   "Duplicate name",
			q:      &domain.Questionnaire{Name: "q", InstructorID: 1, Type: "ReviewQuestionnaire", MaxQuestionScore: 5},
			taken:  true,
			fields: []string{"name"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc, qRepo, _ := newQuestionnaireUseCase()
			qRepo.On("NameTaken", ctx, mock.Anything, mock.Anything, mock.Anything).Return(tc.taken, nil)

			_, err := uc.CreateQuestionnaire(ctx, tc.q)

			assert.ErrorIs(t, err, domain.ErrInvalidQuestionnaire)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			for _, field := range tc.fields {
				assert.Contains(t, verr.Fields, field)
			}
			qRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestQuestionnaireUseCase_Create_InvalidInstructor(t *testing.T) {
	uc, _, _ := newQuestionnaireUseCase()

	_, err := uc.CreateQuestionnaire(context.Background(), &domain.Questionnaire{Name: "q"})

	assert.ErrorIs(t, err, domain.ErrInvalidInstructorID)
}

func TestQuestionnaireUseCase_Update_KeepsOwner(t *testing.T) {
	ctx := context.Background()
	uc, qRepo, _ := newQuestionnaireUseCase()

	existing := &domain.Questionnaire{
		ID: 3, Name: "old", InstructorID: 9, Type: "ReviewQuestionnaire",
		MaxQuestionScore: 5, InstructionLoc: "http://wiki/instructions",
		Questions: []*domain.Question{{ID: 1, Txt: "q1"}},
	}
	update := domain.QuestionnaireUpdate{Name: "new", Type: "ReviewQuestionnaire", MaxQuestionScore: intPtr(10)}

	qRepo.On("GetByID", ctx, int64(3)).Return(existing, nil)
	qRepo.On("NameTaken", ctx, "new", int64(9), int64(3)).Return(false, nil)
	qRepo.On("Update", ctx, mock.MatchedBy(func(q *domain.Questionnaire) bool {
		return q.ID == 3 && q.Name == "new" && q.InstructorID == 9 && q.MaxQuestionScore == 10
	})).Return(nil)

	updated, err := uc.UpdateQuestionnaire(ctx, 3, update)

	require.NoError(t, err)
	assert.Equal(t, int64(9), updated.InstructorID)
	assert.Equal(t, 10, updated.MaxQuestionScore)
	assert.Equal(t, "http://wiki/instructions", updated.InstructionLoc)
	assert.Len(t, updated.Questions, 1)
	assert.Equal(t, "old", existing.Name)
	qRepo.AssertExpectations(t)
}

func TestQuestionnaireUseCase_Update_OmittedFieldsKeepStoredValues(t *testing.T) {
	ctx := context.Background()
	uc, qRepo, _ := newQuestionnaireUseCase()

	existing := &domain.Questionnaire{
		ID: 3, Name: "Rubric", InstructorID: 9, Type: "ReviewQuestionnaire", Private: true,
		MinQuestionScore: 1, MaxQuestionScore: 10, DisplayType: "Peer review",
		InstructionLoc: "http://wiki/instructions",
	}

	qRepo.On("GetByID", ctx, int64(3)).Return(existing, nil)
	qRepo.On("NameTaken", ctx, "Rubric v2", int64(9), int64(3)).Return(false, nil)
	qRepo.On("Update", ctx, mock.Anything).Return(nil)

	updated, err := uc.UpdateQuestionnaire(ctx, 3, domain.QuestionnaireUpdate{Name: "Rubric v2", Type: "ReviewQuestionnaire"})

	require.NoError(t, err)
	assert.Equal(t, "Rubric v2", updated.Name)
	assert.True(t, updated.Private)
	assert.Equal(t, 1, updated.MinQuestionScore)
	assert.Equal(t, 10, updated.MaxQuestionScore)
	assert.Equal(t, "Peer review", updated.DisplayType)
	assert.Equal(t, "http://wiki/instructions", updated.InstructionLoc)
}

func TestQuestionnaireUseCase_Update_ExplicitZeroValues(t *testing.T) {
	ctx := context.Background()
	uc, qRepo, _ := newQuestionnaireUseCase()

	existing := &domain.Questionnaire{
		ID: 3, Name: "Rubric", InstructorID: 9, Type: "ReviewQuestionnaire", Private: true,
		MinQuestionScore: 1, MaxQuestionScore: 10, DisplayType: "Peer review",
	}
	private := false
	display := ""

	qRepo.On("GetByID", ctx, int64(3)).Return(existing, nil)
	qRepo.On("NameTaken", ctx, "Rubric", int64(9), int64(3)).Return(false, nil)
	qRepo.On("Update", ctx, mock.Anything).Return(nil)

	updated, err := uc.UpdateQuestionnaire(ctx, 3, domain.QuestionnaireUpdate{
		Name: "Rubric", Type: "ReviewQuestionnaire",
		Private: &private, MinQuestionScore: intPtr(0), DisplayType: &display,
	})

	require.NoError(t, err)
	assert.False(t, updated.Private)
	assert.Equal(t, 0, updated.MinQuestionScore)
	assert.Equal(t, 10, updated.MaxQuestionScore)
	assert.Empty(t, updated.DisplayType)
}

func TestQuestionnaireUseCase_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	uc, qRepo, _ := newQuestionnaireUseCase()

	qRepo.On("GetByID", ctx, int64(3)).Return(nil, domain.ErrQuestionnaireNotFound)

	_, err := uc.UpdateQuestionnaire(ctx, 3, domain.QuestionnaireUpdate{Name: "q"})

	assert.ErrorIs(t, err, domain.ErrQuestionnaireNotFound)
}

func TestQuestionnaireUseCase_Delete_InUse(t *testing.T) {
	ctx := context.Background()
	uc, qRepo, aRepo := newQuestionnaireUseCase()

	aRepo.On("ListByQuestionnaire", ctx, int64(5)).Return([]*domain.AssignmentQuestionnaire{
		{AssignmentID: 11, AssignmentName: "OSS project"},
		{AssignmentID: 12, AssignmentName: "Final project"},
	}, nil)

	err := uc.DeleteQuestionnaire(ctx, 5)

	assert.ErrorIs(t, err, domain.ErrQuestionnaireInUse)
	assert.Contains(t, err.Error(), "OSS project")
	qRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestQuestionnaireUseCase_Delete_Success(t *testing.T) {
	ctx := context.Background()
	uc, qRepo, aRepo := newQuestionnaireUseCase()

	aRepo.On("ListByQuestionnaire", ctx, int64(5)).Return([]*domain.AssignmentQuestionnaire{}, nil)
	qRepo.On("Delete", ctx, int64(5)).Return(nil)

	err := uc.DeleteQuestionnaire(ctx, 5)

	assert.NoError(t, err)
	qRepo.AssertExpectations(t)
}

func TestQuestionnaireUseCase_Copy(t *testing.T) {
	ctx := context.Background()
	uc, qRepo, _ := newQuestionnaireUseCase()

	src := &domain.Questionnaire{
		ID: 4, Name: "Rubric", InstructorID: 1, Type: "ReviewQuestionnaire",
		MinQuestionScore: 0, MaxQuestionScore: 5,
		Questions: []*domain.Question{
			{ID: 10, Txt: "Explain", Type: "TextArea", Advices: []*domain.QuestionAdvice{{ID: 100, Score: 1, Advice: "weak"}}},
			{ID: 11, Txt: "Rate", Type: "Criterion", Size: "70,1"},
			{ID: 12, Txt: "Works?", Type: "Checkbox"},
		},
	}

	qRepo.On("GetByID", ctx, int64(4)).Return(src, nil)
	qRepo.On("NameTaken", ctx, "Copy of Rubric", int64(2), int64(0)).Return(false, nil)
	qRepo.On("Copy", ctx, src, mock.AnythingOfType("*domain.Questionnaire")).Return(nil)

	dst, err := uc.CopyQuestionnaire(ctx, 4, 2)

	require.NoError(t, err)
	assert.Equal(t, "Copy of Rubric", dst.Name)
	assert.Equal(t, int64(2), dst.InstructorID)
	require.Len(t, dst.Questions, 3)
	assert.Equal(t, domain.DefaultTextQuestionSize, dst.Questions[0].Size)
	assert.Equal(t, "70,1", dst.Questions[1].Size)
	assert.Empty(t, dst.Questions[2].Size)
	assert.Zero(t, dst.Questions[0].ID)
	require.Len(t, dst.Questions[0].Advices, 1)
	assert.Zero(t, dst.Questions[0].Advices[0].ID)
	assert.Equal(t, "weak", dst.Questions[0].Advices[0].Advice)
	assert.Equal(t, "Rubric", src.Name)
}

func TestQuestionnaireUseCase_HasTrueFalseQuestions(t *testing.T) {
	ctx := context.Background()
	uc, qRepo, _ := newQuestionnaireUseCase()

	qRepo.On("GetByID", ctx, int64(1)).Return(&domain.Questionnaire{
		ID: 1, Questions: []*domain.Question{{Type: "Criterion"}, {Type: "Checkbox"}},
	}, nil)
	qRepo.On("GetByID", ctx, int64(2)).Return(&domain.Questionnaire{
		ID: 2, Questions: []*domain.Question{{Type: "Criterion"}},
	}, nil)

	has, err := uc.HasTrueFalseQuestions(ctx, 1)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = uc.HasTrueFalseQuestions(ctx, 2)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestQuestionnaireUseCase_GetWeightedScore(t *testing.T) {
	ctx := context.Background()
	review := &domain.Questionnaire{ID: 1, Type: "ReviewQuestionnaire"}

	testCases := []struct {
		name     string
		link     *domain.AssignmentQuestionnaire
		scores   map[string]domain.ScoreSummary
		expected float64
	}{
		{
			name:     "No round",
			link:     &domain.AssignmentQuestionnaire{QuestionnaireWeight: 50},
			scores:   map[string]domain.ScoreSummary{"review": {Avg: floatPtr(80)}},
			expected: 40,
		},
		{
			name:     "With round",
			link:     &domain.AssignmentQuestionnaire{QuestionnaireWeight: 25, UsedInRound: intPtr(2)},
			scores:   map[string]domain.ScoreSummary{"review": {Avg: floatPtr(10)}, "review2": {Avg: floatPtr(60)}},
			expected: 15,
		},
		{
			name:     "Nil average",
			link:     &domain.AssignmentQuestionnaire{QuestionnaireWeight: 50},
			scores:   map[string]domain.ScoreSummary{"review": {}},
			expected: 0,
		},
		{
			name:     "Missing symbol",
			link:     &domain.AssignmentQuestionnaire{QuestionnaireWeight: 50},
			scores:   map[string]domain.ScoreSummary{},
			expected: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc, qRepo, aRepo := newQuestionnaireUseCase()
			qRepo.On("GetByID", ctx, int64(1)).Return(review, nil)
			aRepo.On("GetAssignmentQuestionnaire", ctx, int64(3), int64(1)).Return(tc.link, nil)

			score, err := uc.GetWeightedScore(ctx, 1, 3, tc.scores)

			require.NoError(t, err)
			assert.InDelta(t, tc.expected, score, 1e-9)
		})
	}
}

func TestQuestionnaireUseCase_GetWeightedScore_NotAttached(t *testing.T) {
	ctx := context.Background()
	uc, qRepo, aRepo := newQuestionnaireUseCase()

	qRepo.On("GetByID", ctx, int64(1)).Return(&domain.Questionnaire{ID: 1, Type: "ReviewQuestionnaire"}, nil)
	aRepo.On("GetAssignmentQuestionnaire", ctx, int64(3), int64(1)).Return(nil, domain.ErrAssignmentQuestionnaireNotFound)

	_, err := uc.GetWeightedScore(ctx, 1, 3, nil)

	assert.ErrorIs(t, err, domain.ErrAssignmentQuestionnaireNotFound)
}

func TestQuestionnaireUseCase_MaxPossibleScore(t *testing.T) {
	ctx := context.Background()
	uc, qRepo, _ := newQuestionnaireUseCase()

	qRepo.On("MaxPossibleScore", ctx, int64(1)).Return(int64(25), nil)

	score, err := uc.MaxPossibleScore(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, int64(25), score)

	_, err = uc.MaxPossibleScore(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuestionnaireID)
}

func TestQuestionnaireUseCase_AttachToAssignment(t *testing.T) {
	ctx := context.Background()

	t.Run("Weight out of range", func(t *testing.T) {
		uc, _, aRepo := newQuestionnaireUseCase()
		err := uc.AttachToAssignment(ctx, &domain.AssignmentQuestionnaire{AssignmentID: 1, QuestionnaireID: 1, QuestionnaireWeight: 101})
		assert.ErrorIs(t, err, domain.ErrInvalidWeight)
		aRepo.AssertNotCalled(t, "AttachQuestionnaire", mock.Anything, mock.Anything)
	})

	t.Run("Unknown questionnaire", func(t *testing.T) {
		uc, qRepo, _ := newQuestionnaireUseCase()
		qRepo.On("GetByID", ctx, int64(8)).Return(nil, domain.ErrQuestionnaireNotFound)
		err := uc.AttachToAssignment(ctx, &domain.AssignmentQuestionnaire{AssignmentID: 1, QuestionnaireID: 8, QuestionnaireWeight: 50})
		assert.ErrorIs(t, err, domain.ErrQuestionnaireNotFound)
	})

	t.Run("Success", func(t *testing.T) {
		uc, qRepo, aRepo := newQuestionnaireUseCase()
		link := &domain.AssignmentQuestionnaire{AssignmentID: 1, QuestionnaireID: 8, QuestionnaireWeight: 100}
		qRepo.On("GetByID", ctx, int64(8)).Return(&domain.Questionnaire{ID: 8}, nil)
		aRepo.On("AttachQuestionnaire", ctx, link).Return(nil)
		assert.NoError(t, uc.AttachToAssignment(ctx, link))
		aRepo.AssertExpectations(t)
	})
}
