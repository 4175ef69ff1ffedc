package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"peer-review-service/internal/domain"
)

const advicePrefix = "advice_"

var requiredImportFields = []domain.ImportField{
	{Key: "txt", Description: "Question text"},
	{Key: "type", Description: "Question type"},
	{Key: "seq", Description: "Sequence (for order)"},
	{Key: "weight", Description: "Point value"},
}

// ImportUseCase импортирует вопросы в существующую анкету.
type ImportUseCase struct {
	questionnaireRepo domain.QuestionnaireRepository
	questionRepo      domain.QuestionRepository
}

// NewImportUseCase создает новый экземпляр ImportUseCase.
func NewImportUseCase(questionnaireRepo domain.QuestionnaireRepository, questionRepo domain.QuestionRepository) domain.ImportUseCase {
	return &ImportUseCase{
		questionnaireRepo: questionnaireRepo,
		questionRepo:      questionRepo,
	}
}

// ImportQuestion создает вопрос из одной строки импорта.
// Подсказки advice_<n> сохраняются только для n в диапазоне оценок анкеты.
func (uc *ImportUseCase) ImportQuestion(ctx context.Context, questionnaireID int64, row map[string]string) (*domain.Question, error) {
	if len(row) < len(requiredImportFields) {
		return nil, domain.ErrImportMissingFields
	}
	for _, f := range requiredImportFields {
		if _, ok := row[f.Key]; !ok {
			return nil, fmt.Errorf("%w: missing %s", domain.ErrImportMissingFields, f.Key)
		}
	}

	if questionnaireID <= 0 {
		return nil, domain.ErrInvalidQuestionnaireID
	}

	questionnaire, err := uc.questionnaireRepo.GetByID(ctx, questionnaireID)
	if err != nil {
		return nil, err
	}

	weight, err := strconv.Atoi(strings.TrimSpace(row["weight"]))
	if err != nil {
		return nil, fmt.Errorf("%w: weight %q is not a number", domain.ErrImportInvalidRow, row["weight"])
	}
	seq, err := strconv.ParseFloat(strings.TrimSpace(row["seq"]), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: seq %q is not a number", domain.ErrImportInvalidRow, row["seq"])
	}

	breakBefore := true
	if v, ok := row["break_before"]; ok && strings.TrimSpace(v) != "" {
		breakBefore, err = strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%w: break_before %q is not a boolean", domain.ErrImportInvalidRow, v)
		}
	}

	question := &domain.Question{
		QuestionnaireID: questionnaire.ID,
		Txt:             row["txt"],
		Weight:          weight,
		Seq:             seq,
		Type:            row["type"],
		Size:            row["size"],
		BreakBefore:     breakBefore,
		Advices:         importAdvices(row, questionnaire.MinQuestionScore, questionnaire.MaxQuestionScore),
	}

	if err := uc.questionRepo.CreateWithAdvices(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// ImportCSV импортирует вопросы из CSV с заголовком. Импорт останавливается на первой
// ошибочной строке; возвращается число сохраненных вопросов.
func (uc *ImportUseCase) ImportCSV(ctx context.Context, questionnaireID int64, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, domain.ErrImportMissingFields
		}
		return 0, &domain.ImportRowError{Line: 1, Err: fmt.Errorf("%w: %w", domain.ErrImportInvalidRow, err)}
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	imported := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line := 0
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				line = parseErr.StartLine
			}
			return imported, &domain.ImportRowError{Line: line, Err: fmt.Errorf("%w: %v", domain.ErrImportInvalidRow, err)}
		}
		line, _ := reader.FieldPos(0)

		row := make(map[string]string, len(header))
		for i, key := range header {
			if i >= len(record) || key == "" || record[i] == "" {
				continue
			}
			row[key] = record[i]
		}

		if _, err := uc.ImportQuestion(ctx, questionnaireID, row); err != nil {
			if errors.Is(err, domain.ErrQuestionnaireNotFound) || errors.Is(err, domain.ErrInvalidQuestionnaireID) {
				return imported, err
			}
			return imported, &domain.ImportRowError{Line: line, Err: err}
		}
		imported++
	}

	return imported, nil
}

// RequiredImportFields возвращает обязательные колонки файла импорта.
func (uc *ImportUseCase) RequiredImportFields() []domain.ImportField {
	fields := make([]domain.ImportField, len(requiredImportFields))
	copy(fields, requiredImportFields)
	return fields
}

// OptionalImportFields возвращает необязательные колонки, включая подсказки
// для каждой оценки из диапазона анкеты.
func (uc *ImportUseCase) OptionalImportFields(ctx context.Context, questionnaireID int64) ([]domain.ImportField, error) {
	if questionnaireID <= 0 {
		return nil, domain.ErrInvalidQuestionnaireID
	}

	questionnaire, err := uc.questionnaireRepo.GetByID(ctx, questionnaireID)
	if err != nil {
		return nil, err
	}

	fields := []domain.ImportField{
		{Key: "size", Description: "Size of question"},
		{Key: "break_before", Description: "Break before"},
	}
	for score := questionnaire.MinQuestionScore; score <= questionnaire.MaxQuestionScore; score++ {
		n := strconv.Itoa(score)
		fields = append(fields, domain.ImportField{Key: advicePrefix + n, Description: "Advice " + n})
	}
	return fields, nil
}

func importAdvices(row map[string]string, minScore, maxScore int) []*domain.QuestionAdvice {
	var advices []*domain.QuestionAdvice
	for key, text := range row {
		if !strings.HasPrefix(key, advicePrefix) {
			continue
		}
		score, err := strconv.Atoi(strings.TrimPrefix(key, advicePrefix))
		if err != nil || score < minScore || score > maxScore {
			continue
		}
		advices = append(advices, &domain.QuestionAdvice{Score: score, Advice: text})
	}

	sort.Slice(advices, func(i, j int) bool {
		return advices[i].Score < advices[j].Score
	})
	return advices
}
