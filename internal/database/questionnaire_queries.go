package database

import (
	"context"
)

const questionnaireColumns = `id, name, instructor_id, private, min_question_score, max_question_score,
       type, display_type, instruction_loc, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanQuestionnaire(row rowScanner) (Questionnaire, error) {
	var i Questionnaire
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.InstructorID,
		&i.Private,
		&i.MinQuestionScore,
		&i.MaxQuestionScore,
		&i.Type,
		&i.DisplayType,
		&i.InstructionLoc,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createQuestionnaire = `
INSERT INTO questionnaires (name, instructor_id, private, min_question_score, max_question_score,
                            type, display_type, instruction_loc)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + questionnaireColumns

type CreateQuestionnaireParams struct {
	Name             string
	InstructorID     int64
	Private          bool
	MinQuestionScore int32
	MaxQuestionScore int32
	Type             string
	DisplayType      string
	InstructionLoc   string
}

func (q *Queries) CreateQuestionnaire(ctx context.Context, arg CreateQuestionnaireParams) (Questionnaire, error) {
	row := q.db.QueryRowContext(ctx, createQuestionnaire,
		arg.Name,
		arg.InstructorID,
		arg.Private,
		arg.MinQuestionScore,
		arg.MaxQuestionScore,
		arg.Type,
		arg.DisplayType,
		arg.InstructionLoc,
	)
	return scanQuestionnaire(row)
}

const updateQuestionnaire = `
UPDATE questionnaires
SET name = $2, private = $3, min_question_score = $4, max_question_score = $5,
    type = $6, display_type = $7, instruction_loc = $8, updated_at = NOW()
WHERE id = $1
RETURNING ` + questionnaireColumns

type UpdateQuestionnaireParams struct {
	ID               int64
	Name             string
	Private          bool
	MinQuestionScore int32
	MaxQuestionScore int32
	Type             string
	DisplayType      string
	InstructionLoc   string
}

func (q *Queries) UpdateQuestionnaire(ctx context.Context, arg UpdateQuestionnaireParams) (Questionnaire, error) {
	row := q.db.QueryRowContext(ctx, updateQuestionnaire,
		arg.ID,
		arg.Name,
		arg.Private,
		arg.MinQuestionScore,
		arg.MaxQuestionScore,
		arg.Type,
		arg.DisplayType,
		arg.InstructionLoc,
	)
	return scanQuestionnaire(row)
}

const getQuestionnaire = `SELECT ` + questionnaireColumns + ` FROM questionnaires WHERE id = $1`

func (q *Queries) GetQuestionnaire(ctx context.Context, id int64) (Questionnaire, error) {
	row := q.db.QueryRowContext(ctx, getQuestionnaire, id)
	return scanQuestionnaire(row)
}

const lockQuestionnaire = `
SELECT id FROM questionnaires
WHERE id = $1
FOR UPDATE`

// LockQuestionnaire блокирует строку анкеты до конца транзакции.
func (q *Queries) LockQuestionnaire(ctx context.Context, id int64) error {
	var locked int64
	return q.db.QueryRowContext(ctx, lockQuestionnaire, id).Scan(&locked)
}

const listQuestionnairesByInstructor = `
SELECT ` + questionnaireColumns + `
FROM questionnaires
WHERE instructor_id = $1
ORDER BY name, id`

func (q *Queries) ListQuestionnairesByInstructor(ctx context.Context, instructorID int64) ([]Questionnaire, error) {
	rows, err := q.db.QueryContext(ctx, listQuestionnairesByInstructor, instructorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Questionnaire
	for rows.Next() {
		i, err := scanQuestionnaire(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countQuestionnairesByName = `
SELECT COUNT(*) FROM questionnaires
WHERE id <> $1 AND name = $2 AND instructor_id = $3`

type CountQuestionnairesByNameParams struct {
	ExcludeID    int64
	Name         string
	InstructorID int64
}

func (q *Queries) CountQuestionnairesByName(ctx context.Context, arg CountQuestionnairesByNameParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, countQuestionnairesByName, arg.ExcludeID, arg.Name, arg.InstructorID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deleteQuestionnaire = `DELETE FROM questionnaires WHERE id = $1`

func (q *Queries) DeleteQuestionnaire(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteQuestionnaire, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const maxPossibleScore = `
SELECT COALESCE(SUM(q.weight), 0) * qn.max_question_score AS max_score
FROM questionnaires qn
LEFT JOIN questions q ON q.questionnaire_id = qn.id
WHERE qn.id = $1
GROUP BY qn.id, qn.max_question_score`

func (q *Queries) MaxPossibleScore(ctx context.Context, id int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, maxPossibleScore, id)
	var maxScore int64
	err := row.Scan(&maxScore)
	return maxScore, err
}
