package database

import (
	"context"
)

const listQuestions = `
SELECT id, questionnaire_id, txt, weight, seq, type, size, break_before
FROM questions
WHERE questionnaire_id = $1
ORDER BY seq, id`

func (q *Queries) ListQuestions(ctx context.Context, questionnaireID int64) ([]Question, error) {
	rows, err := q.db.QueryContext(ctx, listQuestions, questionnaireID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Question
	for rows.Next() {
		var i Question
		if err := rows.Scan(
			&i.ID,
			&i.QuestionnaireID,
			&i.Txt,
			&i.Weight,
			&i.Seq,
			&i.Type,
			&i.Size,
			&i.BreakBefore,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listAdvicesByQuestionnaire = `
SELECT a.id, a.question_id, a.score, a.advice
FROM question_advices a
JOIN questions q ON q.id = a.question_id
WHERE q.questionnaire_id = $1
ORDER BY a.question_id, a.score, a.id`

func (q *Queries) ListAdvicesByQuestionnaire(ctx context.Context, questionnaireID int64) ([]QuestionAdvice, error) {
	rows, err := q.db.QueryContext(ctx, listAdvicesByQuestionnaire, questionnaireID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []QuestionAdvice
	for rows.Next() {
		var i QuestionAdvice
		if err := rows.Scan(&i.ID, &i.QuestionID, &i.Score, &i.Advice); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createQuestion = `
INSERT INTO questions (questionnaire_id, txt, weight, seq, type, size, break_before)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, questionnaire_id, txt, weight, seq, type, size, break_before`

type CreateQuestionParams struct {
	QuestionnaireID int64
	Txt             string
	Weight          int32
	Seq             float64
	Type            string
	Size            string
	BreakBefore     bool
}

func (q *Queries) CreateQuestion(ctx context.Context, arg CreateQuestionParams) (Question, error) {
	row := q.db.QueryRowContext(ctx, createQuestion,
		arg.QuestionnaireID,
		arg.Txt,
		arg.Weight,
		arg.Seq,
		arg.Type,
		arg.Size,
		arg.BreakBefore,
	)
	var i Question
	err := row.Scan(
		&i.ID,
		&i.QuestionnaireID,
		&i.Txt,
		&i.Weight,
		&i.Seq,
		&i.Type,
		&i.Size,
		&i.BreakBefore,
	)
	return i, err
}

const createQuestionAdvice = `
INSERT INTO question_advices (question_id, score, advice)
VALUES ($1, $2, $3)
RETURNING id, question_id, score, advice`

type CreateQuestionAdviceParams struct {
	QuestionID int64
	Score      int32
	Advice     string
}

func (q *Queries) CreateQuestionAdvice(ctx context.Context, arg CreateQuestionAdviceParams) (QuestionAdvice, error) {
	row := q.db.QueryRowContext(ctx, createQuestionAdvice, arg.QuestionID, arg.Score, arg.Advice)
	var i QuestionAdvice
	err := row.Scan(&i.ID, &i.QuestionID, &i.Score, &i.Advice)
	return i, err
}

const deleteAdvicesByQuestionnaire = `
DELETE FROM question_advices
WHERE question_id IN (SELECT id FROM questions WHERE questionnaire_id = $1)`

func (q *Queries) DeleteAdvicesByQuestionnaire(ctx context.Context, questionnaireID int64) error {
	_, err := q.db.ExecContext(ctx, deleteAdvicesByQuestionnaire, questionnaireID)
	return err
}

const deleteQuestionsByQuestionnaire = `DELETE FROM questions WHERE questionnaire_id = $1`

func (q *Queries) DeleteQuestionsByQuestionnaire(ctx context.Context, questionnaireID int64) error {
	_, err := q.db.ExecContext(ctx, deleteQuestionsByQuestionnaire, questionnaireID)
	return err
}
