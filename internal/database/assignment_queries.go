package database

import (
	"context"
	"database/sql"
)

const upsertAssignment = `
INSERT INTO assignments (id, name)
VALUES ($1, $2)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`

type UpsertAssignmentParams struct {
	ID   int64
	Name string
}

func (q *Queries) UpsertAssignment(ctx context.Context, arg UpsertAssignmentParams) error {
	_, err := q.db.ExecContext(ctx, upsertAssignment, arg.ID, arg.Name)
	return err
}

const upsertAssignmentQuestionnaire = `
INSERT INTO assignment_questionnaires (assignment_id, questionnaire_id, questionnaire_weight, used_in_round)
VALUES ($1, $2, $3, $4)
ON CONFLICT (assignment_id, questionnaire_id)
DO UPDATE SET questionnaire_weight = EXCLUDED.questionnaire_weight, used_in_round = EXCLUDED.used_in_round`

type UpsertAssignmentQuestionnaireParams struct {
	AssignmentID        int64
	QuestionnaireID     int64
	QuestionnaireWeight int32
	UsedInRound         sql.NullInt32
}

func (q *Queries) UpsertAssignmentQuestionnaire(ctx context.Context, arg UpsertAssignmentQuestionnaireParams) error {
	_, err := q.db.ExecContext(ctx, upsertAssignmentQuestionnaire,
		arg.AssignmentID,
		arg.QuestionnaireID,
		arg.QuestionnaireWeight,
		arg.UsedInRound,
	)
	return err
}

const assignmentQuestionnaireColumns = `
SELECT aq.assignment_id, a.name, aq.questionnaire_id, aq.questionnaire_weight, aq.used_in_round
FROM assignment_questionnaires aq
JOIN assignments a ON a.id = aq.assignment_id`

func scanAssignmentQuestionnaire(row rowScanner) (AssignmentQuestionnaire, error) {
	var i AssignmentQuestionnaire
	err := row.Scan(
		&i.AssignmentID,
		&i.AssignmentName,
		&i.QuestionnaireID,
		&i.QuestionnaireWeight,
		&i.UsedInRound,
	)
	return i, err
}

const getAssignmentQuestionnaire = assignmentQuestionnaireColumns + `
WHERE aq.assignment_id = $1 AND aq.questionnaire_id = $2`

type GetAssignmentQuestionnaireParams struct {
	AssignmentID    int64
	QuestionnaireID int64
}

func (q *Queries) GetAssignmentQuestionnaire(ctx context.Context, arg GetAssignmentQuestionnaireParams) (AssignmentQuestionnaire, error) {
	row := q.db.QueryRowContext(ctx, getAssignmentQuestionnaire, arg.AssignmentID, arg.QuestionnaireID)
	return scanAssignmentQuestionnaire(row)
}

const listAssignmentQuestionnaires = assignmentQuestionnaireColumns + `
WHERE aq.questionnaire_id = $1
ORDER BY aq.assignment_id`

func (q *Queries) ListAssignmentQuestionnaires(ctx context.Context, questionnaireID int64) ([]AssignmentQuestionnaire, error) {
	rows, err := q.db.QueryContext(ctx, listAssignmentQuestionnaires, questionnaireID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []AssignmentQuestionnaire
	for rows.Next() {
		i, err := scanAssignmentQuestionnaire(rows)
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
