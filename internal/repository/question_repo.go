package repository

import (
	"context"
	"database/sql"
	"fmt"

	"peer-review-service/internal/database"
	"peer-review-service/internal/domain"
)

// QuestionRepository реализует хранение вопросов анкет.
type QuestionRepository struct {
	db      *sql.DB
	queries *database.Queries
}

// NewQuestionRepository создает новый экземпляр QuestionRepository.
func NewQuestionRepository(db *sql.DB, queries *database.Queries) domain.QuestionRepository {
	return &QuestionRepository{
		db:      db,
		queries: queries,
	}
}

// ListByQuestionnaire возвращает вопросы анкеты в порядке seq.
func (r *QuestionRepository) ListByQuestionnaire(ctx context.Context, questionnaireID int64) ([]*domain.Question, error) {
	return loadQuestions(ctx, r.queries, questionnaireID)
}

// CreateWithAdvices сохраняет вопрос и его подсказки в одной транзакции.
func (r *QuestionRepository) CreateWithAdvices(ctx context.Context, question *domain.Question) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = insertQuestion(ctx, r.queries.WithTx(tx), question); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func insertQuestion(ctx context.Context, queries *database.Queries, question *domain.Question) error {
	dbQuestion, err := queries.CreateQuestion(ctx, database.CreateQuestionParams{
		QuestionnaireID: question.QuestionnaireID,
		Txt:             question.Txt,
		Weight:          int32(question.Weight),
		Seq:             question.Seq,
		Type:            question.Type,
		Size:            question.Size,
		BreakBefore:     question.BreakBefore,
	})
	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	question.ID = dbQuestion.ID

	for _, advice := range question.Advices {
		dbAdvice, err := queries.CreateQuestionAdvice(ctx, database.CreateQuestionAdviceParams{
			QuestionID: question.ID,
			Score:      int32(advice.Score),
			Advice:     advice.Advice,
		})
		if err != nil {
			return fmt.Errorf("failed to create advice for score %d: %w", advice.Score, err)
		}
		advice.ID = dbAdvice.ID
		advice.QuestionID = question.ID
	}

	return nil
}

func loadQuestions(ctx context.Context, queries *database.Queries, questionnaireID int64) ([]*domain.Question, error) {
	dbQuestions, err := queries.ListQuestions(ctx, questionnaireID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	dbAdvices, err := queries.ListAdvicesByQuestionnaire(ctx, questionnaireID)
	if err != nil {
		return nil, fmt.Errorf("failed to list advices: %w", err)
	}

	advices := make(map[int64][]*domain.QuestionAdvice, len(dbQuestions))
	for _, a := range dbAdvices {
		advices[a.QuestionID] = append(advices[a.QuestionID], &domain.QuestionAdvice{
			ID:         a.ID,
			QuestionID: a.QuestionID,
			Score:      int(a.Score),
			Advice:     a.Advice,
		})
	}

	questions := make([]*domain.Question, 0, len(dbQuestions))
	for _, q := range dbQuestions {
		questions = append(questions, &domain.Question{
			ID:              q.ID,
			QuestionnaireID: q.QuestionnaireID,
			Txt:             q.Txt,
			Weight:          int(q.Weight),
			Seq:             q.Seq,
			Type:            q.Type,
			Size:            q.Size,
			BreakBefore:     q.BreakBefore,
			Advices:         advices[q.ID],
		})
	}
	return questions, nil
}
