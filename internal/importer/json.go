package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"examcraft/internal/domain"
)

type jsonQuestion struct {
	SubjectID       string   `json:"subjectId"`
	Subject         string   `json:"subject"`
	Category        string   `json:"category"`
	QuestionText    string   `json:"questionText"`
	Options         []string `json:"options"`
	CorrectAnswer   string   `json:"correctAnswer"`
	DifficultyLevel string   `json:"difficultyLevel"`
	Marks           *int     `json:"marks"`
}

// ParseJSON reads an array of question objects. Items are numbered from 1.
func ParseJSON(r io.Reader) (*Result, error) {
	var items []json.RawMessage
	dec := json.NewDecoder(r)
	if err := dec.Decode(&items); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, domain.NewParseError("json", errors.New("file must contain an array of question objects"))
		}
		return nil, domain.NewParseError("json", err)
	}
	if items == nil {
		return nil, domain.NewParseError("json", errors.New("file must contain an array of question objects"))
	}

	result := &Result{}
	for i, item := range items {
		row := i + 1
		var jq jsonQuestion
		if err := json.Unmarshal(item, &jq); err != nil {
			result.Errors = append(result.Errors, RowError{Row: row, Message: fmt.Sprintf("invalid item: %v", err)})
			continue
		}
		raw := rawQuestion{
			SubjectID:     jq.SubjectID,
			Category:      jq.Category,
			QuestionText:  jq.QuestionText,
			Options:       jq.Options,
			CorrectAnswer: jq.CorrectAnswer,
			Difficulty:    jq.DifficultyLevel,
		}
		if raw.SubjectID == "" {
			raw.SubjectID = jq.Subject
		}
		if jq.Marks != nil {
			raw.Marks = strconv.Itoa(*jq.Marks)
		}

		q, rowErr := raw.build(row)
		if rowErr != nil {
			result.Errors = append(result.Errors, *rowErr)
			continue
		}
		result.Rows = append(result.Rows, Row{Number: row, Question: q})
	}
	return result, nil
}
