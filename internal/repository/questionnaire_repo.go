package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"peer-review-service/internal/database"
	"peer-review-service/internal/domain"
)

// QuestionnaireRepository реализует хранение анкет в PostgreSQL.
type QuestionnaireRepository struct {
	db      *sql.DB
	queries *database.Queries
}

// NewQuestionnaireRepository создает новый экземпляр QuestionnaireRepository.
func NewQuestionnaireRepository(db *sql.DB, queries *database.Queries) domain.QuestionnaireRepository {
	return &QuestionnaireRepository{
		db:      db,
		queries: queries,
	}
}

// Create сохраняет анкету и заполняет ID и временные метки.
func (r *QuestionnaireRepository) Create(ctx context.Context, q *domain.Questionnaire) error {
	dbQ, err := r.queries.CreateQuestionnaire(ctx, database.CreateQuestionnaireParams{
		Name:             q.Name,
		InstructorID:     q.InstructorID,
		Private:          q.Private,
		MinQuestionScore: int32(q.MinQuestionScore),
		MaxQuestionScore: int32(q.MaxQuestionScore),
		Type:             q.Type,
		DisplayType:      q.DisplayType,
		InstructionLoc:   q.InstructionLoc,
	})
	if err != nil {
		return fmt.Errorf("failed to create questionnaire: %w", err)
	}

	fillQuestionnaire(q, dbQ)
	return nil
}

// Update обновляет редактируемые поля анкеты.
func (r *QuestionnaireRepository) Update(ctx context.Context, q *domain.Questionnaire) error {
	dbQ, err := r.queries.UpdateQuestionnaire(ctx, database.UpdateQuestionnaireParams{
		ID:               q.ID,
		Name:             q.Name,
		Private:          q.Private,
		MinQuestionScore: int32(q.MinQuestionScore),
		MaxQuestionScore: int32(q.MaxQuestionScore),
		Type:             q.Type,
		DisplayType:      q.DisplayType,
		InstructionLoc:   q.InstructionLoc,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrQuestionnaireNotFound
		}
		return fmt.Errorf("failed to update questionnaire: %w", err)
	}

	fillQuestionnaire(q, dbQ)
	return nil
}

// GetByID возвращает анкету вместе с вопросами и подсказками.
func (r *QuestionnaireRepository) GetByID(ctx context.Context, id int64) (*domain.Questionnaire, error) {
	dbQ, err := r.queries.GetQuestionnaire(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrQuestionnaireNotFound
		}
		return nil, fmt.Errorf("failed to get questionnaire: %w", err)
	}

	questions, err := loadQuestions(ctx, r.queries, id)
	if err != nil {
		return nil, err
	}

	q := &domain.Questionnaire{}
	fillQuestionnaire(q, dbQ)
	q.Questions = questions
	return q, nil
}

// ListByInstructor возвращает анкеты преподавателя без вопросов.
func (r *QuestionnaireRepository) ListByInstructor(ctx context.Context, instructorID int64) ([]*domain.Questionnaire, error) {
	dbQs, err := r.queries.ListQuestionnairesByInstructor(ctx, instructorID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to list questionnaires: %w", err)
	}

	result := make([]*domain.Questionnaire, 0, len(dbQs))
	for _, dbQ := range dbQs {
		q := &domain.Questionnaire{}
		fillQuestionnaire(q, dbQ)
		result = append(result, q)
	}
	return result, nil
}

// NameTaken проверяет, есть ли у преподавателя другая анкета с таким же именем.
func (r *QuestionnaireRepository) NameTaken(ctx context.Context, name string, instructorID, excludeID int64) (bool, error) {
	count, err := r.queries.CountQuestionnairesByName(ctx, database.CountQuestionnairesByNameParams{
		ExcludeID:    excludeID,
		Name:         name,
		InstructorID: instructorID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check questionnaire name: %w", err)
	}
	return count > 0, nil
}

// Delete удаляет анкету, ее вопросы и подсказки в одной транзакции.
// Анкета, привязанная к заданию, не удаляется: возвращается *domain.InUseError.
func (r *QuestionnaireRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txQueries := r.queries.WithTx(tx)

	// Строка анкеты заблокирована до коммита, новые привязки ждут его.
	if err = txQueries.LockQuestionnaire(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = domain.ErrQuestionnaireNotFound
			return err
		}
		return fmt.Errorf("failed to lock questionnaire: %w", err)
	}

	var links []database.AssignmentQuestionnaire
	links, err = txQueries.ListAssignmentQuestionnaires(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list assignment links: %w", err)
	}
	if len(links) > 0 {
		err = &domain.InUseError{
			AssignmentID:   links[0].AssignmentID,
			AssignmentName: links[0].AssignmentName,
		}
		return err
	}

	if err = txQueries.DeleteAdvicesByQuestionnaire(ctx, id); err != nil {
		return fmt.Errorf("failed to delete advices: %w", err)
	}

	if err = txQueries.DeleteQuestionsByQuestionnaire(ctx, id); err != nil {
		return fmt.Errorf("failed to delete questions: %w", err)
	}

	var affected int64
	affected, err = txQueries.DeleteQuestionnaire(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete questionnaire: %w", err)
	}
	if affected == 0 {
		err = domain.ErrQuestionnaireNotFound
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Copy сохраняет dst как новую анкету и переносит в нее вопросы и подсказки src.
// Вопросы берутся из dst.Questions, чтобы вызывающий мог поправить их перед сохранением.
func (r *QuestionnaireRepository) Copy(ctx context.Context, src *domain.Questionnaire, dst *domain.Questionnaire) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txQueries := r.queries.WithTx(tx)

	var dbQ database.Questionnaire
	dbQ, err = txQueries.CreateQuestionnaire(ctx, database.CreateQuestionnaireParams{
		Name:             dst.Name,
		InstructorID:     dst.InstructorID,
		Private:          dst.Private,
		MinQuestionScore: int32(dst.MinQuestionScore),
		MaxQuestionScore: int32(dst.MaxQuestionScore),
		Type:             dst.Type,
		DisplayType:      dst.DisplayType,
		InstructionLoc:   dst.InstructionLoc,
	})
	if err != nil {
		return fmt.Errorf("failed to create copy of questionnaire %d: %w", src.ID, err)
	}
	fillQuestionnaire(dst, dbQ)

	for _, question := range dst.Questions {
		question.QuestionnaireID = dst.ID
		if err = insertQuestion(ctx, txQueries, question); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// MaxPossibleScore возвращает сумму весов вопросов, умноженную на максимальную оценку.
func (r *QuestionnaireRepository) MaxPossibleScore(ctx context.Context, id int64) (int64, error) {
	score, err := r.queries.MaxPossibleScore(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrQuestionnaireNotFound
		}
		return 0, fmt.Errorf("failed to compute max score: %w", err)
	}
	return score, nil
}

func fillQuestionnaire(q *domain.Questionnaire, dbQ database.Questionnaire) {
	q.ID = dbQ.ID
	q.Name = dbQ.Name
	q.InstructorID = dbQ.InstructorID
	q.Private = dbQ.Private
	q.MinQuestionScore = int(dbQ.MinQuestionScore)
	q.MaxQuestionScore = int(dbQ.MaxQuestionScore)
	q.Type = dbQ.Type
	q.DisplayType = dbQ.DisplayType
	q.InstructionLoc = dbQ.InstructionLoc
	q.CreatedAt = dbQ.CreatedAt
	q.UpdatedAt = dbQ.UpdatedAt
}
