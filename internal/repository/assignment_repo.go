package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"peer-review-service/internal/database"
	"peer-review-service/internal/domain"
)

// AssignmentRepository хранит связи заданий с анкетами.
type AssignmentRepository struct {
	db      *sql.DB
	queries *database.Queries
}

// NewAssignmentRepository создает новый экземпляр AssignmentRepository.
func NewAssignmentRepository(db *sql.DB, queries *database.Queries) domain.AssignmentRepository {
	return &AssignmentRepository{
		db:      db,
		queries: queries,
	}
}

// AttachQuestionnaire создает задание при необходимости и привязывает к нему анкету.
func (r *AssignmentRepository) AttachQuestionnaire(ctx context.Context, link *domain.AssignmentQuestionnaire) error {
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

	err = txQueries.UpsertAssignment(ctx, database.UpsertAssignmentParams{
		ID:   link.AssignmentID,
		Name: link.AssignmentName,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert assignment: %w", err)
	}

	var round sql.NullInt32
	if link.UsedInRound != nil {
		round = sql.NullInt32{Int32: int32(*link.UsedInRound), Valid: true}
	}

	err = txQueries.UpsertAssignmentQuestionnaire(ctx, database.UpsertAssignmentQuestionnaireParams{
		AssignmentID:        link.AssignmentID,
		QuestionnaireID:     link.QuestionnaireID,
		QuestionnaireWeight: int32(link.QuestionnaireWeight),
		UsedInRound:         round,
	})
	if err != nil {
		return fmt.Errorf("failed to attach questionnaire: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetAssignmentQuestionnaire возвращает связь задания с анкетой.
func (r *AssignmentRepository) GetAssignmentQuestionnaire(ctx context.Context, assignmentID, questionnaireID int64) (*domain.AssignmentQuestionnaire, error) {
	row, err := r.queries.GetAssignmentQuestionnaire(ctx, database.GetAssignmentQuestionnaireParams{
		AssignmentID:    assignmentID,
		QuestionnaireID: questionnaireID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAssignmentQuestionnaireNotFound
		}
		return nil, fmt.Errorf("failed to get assignment questionnaire: %w", err)
	}
	return toAssignmentQuestionnaire(row), nil
}

// ListByQuestionnaire возвращает все задания, использующие анкету.
func (r *AssignmentRepository) ListByQuestionnaire(ctx context.Context, questionnaireID int64) ([]*domain.AssignmentQuestionnaire, error) {
	rows, err := r.queries.ListAssignmentQuestionnaires(ctx, questionnaireID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	links := make([]*domain.AssignmentQuestionnaire, 0, len(rows))
	for _, row := range rows {
		links = append(links, toAssignmentQuestionnaire(row))
	}
	return links, nil
}

func toAssignmentQuestionnaire(row database.AssignmentQuestionnaire) *domain.AssignmentQuestionnaire {
	var round *int
	if row.UsedInRound.Valid {
		r := int(row.UsedInRound.Int32)
		round = &r
	}
	return &domain.AssignmentQuestionnaire{
		AssignmentID:        row.AssignmentID,
		AssignmentName:      row.AssignmentName,
		QuestionnaireID:     row.QuestionnaireID,
		QuestionnaireWeight: int(row.QuestionnaireWeight),
		UsedInRound:         round,
	}
}
