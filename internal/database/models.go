package database

import (
	"database/sql"
	"time"
)

type Questionnaire struct {
	ID               int64
	Name             string
	InstructorID     int64
	Private          bool
	MinQuestionScore int32
	MaxQuestionScore int32
	Type             string
	DisplayType      string
	InstructionLoc   string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Question struct {
	ID              int64
	QuestionnaireID int64
	Txt             string
	Weight          int32
	Seq             float64
	Type            string
	Size            string
	BreakBefore     bool
}

type QuestionAdvice struct {
	ID         int64
	QuestionID int64
	Score      int32
	Advice     string
}

type AssignmentQuestionnaire struct {
	AssignmentID        int64
	AssignmentName      string
	QuestionnaireID     int64
	QuestionnaireWeight int32
	UsedInRound         sql.NullInt32
}
