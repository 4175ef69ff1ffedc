package usecase

import (
	"context"
	"strings"

	"peer-review-service/internal/domain"
)

// QuestionnaireUseCase реализует бизнес-логику для работы с анкетами.
type QuestionnaireUseCase struct {
	questionnaireRepo domain.QuestionnaireRepository
	assignmentRepo    domain.AssignmentRepository
}

// NewQuestionnaireUseCase создает новый экземпляр QuestionnaireUseCase.
func NewQuestionnaireUseCase(questionnaireRepo domain.QuestionnaireRepository, assignmentRepo domain.AssignmentRepository) domain.QuestionnaireUseCase {
	return &QuestionnaireUseCase{
		questionnaireRepo: questionnaireRepo,
		assignmentRepo:    assignmentRepo,
	}
}

// CreateQuestionnaire заполняет значения по умолчанию, валидирует и сохраняет анкету.
func (uc *QuestionnaireUseCase) CreateQuestionnaire(ctx context.Context, q *domain.Questionnaire) (*domain.Questionnaire, error) {
	if q.InstructorID <= 0 {
		return nil, domain.ErrInvalidInstructorID
	}

	applyDefaults(q)

	if err := uc.validate(ctx, q); err != nil {
		return nil, err
	}

	if err := uc.questionnaireRepo.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// GetQuestionnaire возвращает анкету с вопросами.
func (uc *QuestionnaireUseCase) GetQuestionnaire(ctx context.Context, id int64) (*domain.Questionnaire, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidQuestionnaireID
	}
	return uc.questionnaireRepo.GetByID(ctx, id)
}

// ListQuestionnaires возвращает анкеты преподавателя.
func (uc *QuestionnaireUseCase) ListQuestionnaires(ctx context.Context, instructorID int64) ([]*domain.Questionnaire, error) {
	if instructorID <= 0 {
		return nil, domain.ErrInvalidInstructorID
	}
	return uc.questionnaireRepo.ListByInstructor(ctx, instructorID)
}

// UpdateQuestionnaire применяет изменения к сохраненной анкете.
// Незаданные поля и владелец анкеты не меняются.
func (uc *QuestionnaireUseCase) UpdateQuestionnaire(ctx context.Context, id int64, upd domain.QuestionnaireUpdate) (*domain.Questionnaire, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidQuestionnaireID
	}

	existing, err := uc.questionnaireRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	q := *existing
	upd.Apply(&q)

	if err := uc.validate(ctx, &q); err != nil {
		return nil, err
	}

	if err := uc.questionnaireRepo.Update(ctx, &q); err != nil {
		return nil, err
	}
	q.Questions = existing.Questions
	return &q, nil
}

// DeleteQuestionnaire удаляет анкету, если ее не использует ни одно задание.
func (uc *QuestionnaireUseCase) DeleteQuestionnaire(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidQuestionnaireID
	}

	links, err := uc.assignmentRepo.ListByQuestionnaire(ctx, id)
	if err != nil {
		return err
	}
	if len(links) > 0 {
		return &domain.InUseError{
			AssignmentID:   links[0].AssignmentID,
			AssignmentName: links[0].AssignmentName,
		}
	}

	return uc.questionnaireRepo.Delete(ctx, id)
}

// CopyQuestionnaire создает копию анкеты с вопросами и подсказками для другого преподавателя.
func (uc *QuestionnaireUseCase) CopyQuestionnaire(ctx context.Context, id, instructorID int64) (*domain.Questionnaire, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidQuestionnaireID
	}
	if instructorID <= 0 {
		return nil, domain.ErrInvalidInstructorID
	}

	src, err := uc.questionnaireRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dst := &domain.Questionnaire{
		Name:             "Copy of " + src.Name,
		InstructorID:     instructorID,
		Private:          src.Private,
		MinQuestionScore: src.MinQuestionScore,
		MaxQuestionScore: src.MaxQuestionScore,
		Type:             src.Type,
		DisplayType:      src.DisplayType,
		InstructionLoc:   src.InstructionLoc,
		Questions:        make([]*domain.Question, 0, len(src.Questions)),
	}

	if err := uc.validate(ctx, dst); err != nil {
		return nil, err
	}

	for _, question := range src.Questions {
		dst.Questions = append(dst.Questions, copyQuestion(question))
	}

	if err := uc.questionnaireRepo.Copy(ctx, src, dst); err != nil {
		return nil, err
	}
	return dst, nil
}

// HasTrueFalseQuestions сообщает, есть ли в анкете вопросы типа Checkbox.
func (uc *QuestionnaireUseCase) HasTrueFalseQuestions(ctx context.Context, id int64) (bool, error) {
	q, err := uc.GetQuestionnaire(ctx, id)
	if err != nil {
		return false, err
	}

	for _, question := range q.Questions {
		if question.Type == domain.CheckboxQuestionType {
			return true, nil
		}
	}
	return false, nil
}

// MaxPossibleScore возвращает максимально возможный балл анкеты.
func (uc *QuestionnaireUseCase) MaxPossibleScore(ctx context.Context, id int64) (int64, error) {
	if id <= 0 {
		return 0, domain.ErrInvalidQuestionnaireID
	}
	return uc.questionnaireRepo.MaxPossibleScore(ctx, id)
}

// GetWeightedScore возвращает средний балл анкеты с учетом ее веса в задании.
// Если среднего балла нет, результат 0.
func (uc *QuestionnaireUseCase) GetWeightedScore(ctx context.Context, id, assignmentID int64, scores map[string]domain.ScoreSummary) (float64, error) {
	if assignmentID <= 0 {
		return 0, domain.ErrInvalidAssignmentID
	}

	q, err := uc.GetQuestionnaire(ctx, id)
	if err != nil {
		return 0, err
	}

	link, err := uc.assignmentRepo.GetAssignmentQuestionnaire(ctx, assignmentID, id)
	if err != nil {
		return 0, err
	}

	summary, ok := scores[q.Symbol(link.UsedInRound)]
	if !ok || summary.Avg == nil {
		return 0, nil
	}
	return *summary.Avg * float64(link.QuestionnaireWeight) / 100.0, nil
}

// AttachToAssignment привязывает анкету к заданию с заданным весом.
func (uc *QuestionnaireUseCase) AttachToAssignment(ctx context.Context, link *domain.AssignmentQuestionnaire) error {
	if link.QuestionnaireID <= 0 {
		return domain.ErrInvalidQuestionnaireID
	}
	if link.AssignmentID <= 0 {
		return domain.ErrInvalidAssignmentID
	}
	if link.QuestionnaireWeight < 0 || link.QuestionnaireWeight > 100 {
		return domain.ErrInvalidWeight
	}

	if _, err := uc.questionnaireRepo.GetByID(ctx, link.QuestionnaireID); err != nil {
		return err
	}

	return uc.assignmentRepo.AttachQuestionnaire(ctx, link)
}

func (uc *QuestionnaireUseCase) validate(ctx context.Context, q *domain.Questionnaire) error {
	verr := domain.NewValidationError()

	if strings.TrimSpace(q.Name) == "" {
		verr.Add("name", "Name can't be blank.")
	}
	if q.MaxQuestionScore < 1 {
		verr.Add("max_question_score", "The maximum question score must be a positive integer.")
	}
	if q.MinQuestionScore < 0 {
		verr.Add("min_question_score", "The minimum question score must be a positive integer.")
	}
	if q.MinQuestionScore >= q.MaxQuestionScore {
		verr.Add("min_question_score", "The minimum question score must be less than the maximum.")
	}
	if !domain.IsQuestionnaireType(q.Type) {
		verr.Add("type", "Unknown questionnaire type.")
	}

	if q.Name != "" {
		taken, err := uc.questionnaireRepo.NameTaken(ctx, q.Name, q.InstructorID, q.ID)
		if err != nil {
			return err
		}
		if taken {
			verr.Add("name", "Questionnaire names must be unique.")
		}
	}

	if verr.Empty() {
		return nil
	}
	return verr
}

// applyDefaults заполняет незаданные текстовые поля новой анкеты.
// Диапазон оценок не трогается: явный 0/0 отклоняется валидацией.
func applyDefaults(q *domain.Questionnaire) {
	if q.InstructionLoc == "" {
		q.InstructionLoc = domain.DefaultQuestionnaireURL
	}
	if q.DisplayType == "" {
		q.DisplayType = strings.TrimSuffix(q.Type, "Questionnaire")
	}
}

func copyQuestion(src *domain.Question) *domain.Question {
	dst := &domain.Question{
		Txt:         src.Txt,
		Weight:      src.Weight,
		Seq:         src.Seq,
		Type:        src.Type,
		Size:        src.Size,
		BreakBefore: src.BreakBefore,
		Advices:     make([]*domain.QuestionAdvice, 0, len(src.Advices)),
	}
	if dst.Size == "" && domain.IsTextQuestionType(dst.Type) {
		dst.Size = domain.DefaultTextQuestionSize
	}
	for _, advice := range src.Advices {
		dst.Advices = append(dst.Advices, &domain.QuestionAdvice{
			Score:  advice.Score,
			Advice: advice.Advice,
		})
	}
	return dst
}
