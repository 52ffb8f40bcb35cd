package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"examcraft/internal/domain"
)

// TemplateCSV is the sample file offered for download.
const TemplateCSV = `subjectId,category,questionText,options,correctAnswer,difficultyLevel,marks
DM101,mcq,What is the cardinality of the power set of a set with 3 elements?,2|4|8|16,8,easy,1
OS101,4marks,Explain the difference between process and thread.,,,medium,4
MP101,mcq,Which register is used as a stack pointer in 8086?,AX|BX|SP|BP,SP,medium,1
`

const optionSeparator = "|"

var headerAliases = map[string]string{
	"subjectid":       "subjectId",
	"subject":         "subjectId",
	"category":        "category",
	"questiontext":    "questionText",
	"question":        "questionText",
	"options":         "options",
	"correctanswer":   "correctAnswer",
	"answer":          "correctAnswer",
	"difficultylevel": "difficultyLevel",
	"difficulty":      "difficultyLevel",
	"marks":           "marks",
}

var requiredColumns = []string{"subjectId", "category", "questionText", "difficultyLevel"}

func canonicalHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	h = strings.NewReplacer("_", "", " ", "", "-", "").Replace(h)
	return headerAliases[h]
}

// ParseCSV reads a header row followed by one question per row.
// Options are pipe separated.
func ParseCSV(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.NewParseError("csv", errors.New("file is empty"))
	}
	if err != nil {
		return nil, domain.NewParseError("csv", err)
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		if name := canonicalHeader(h); name != "" {
			if _, dup := columns[name]; !dup {
				columns[name] = i
			}
		}
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, domain.NewParseError("csv",
			fmt.Errorf("header is missing required columns %s", strings.Join(missing, ", "))).
			WithContext("missing_columns", missing)
	}

	field := func(record []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	result := &Result{}
	row := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, domain.NewParseError("csv", err)
		}
		if isBlank(record) {
			continue
		}
		row++

		raw := rawQuestion{
			SubjectID:     field(record, "subjectId"),
			Category:      field(record, "category"),
			QuestionText:  field(record, "questionText"),
			CorrectAnswer: field(record, "correctAnswer"),
			Difficulty:    field(record, "difficultyLevel"),
			Marks:         field(record, "marks"),
		}
		if opts := field(record, "options"); opts != "" {
			raw.Options = strings.Split(opts, optionSeparator)
		}

		q, rowErr := raw.build(row)
		if rowErr != nil {
			result.Errors = append(result.Errors, *rowErr)
			continue
		}
		result.Rows = append(result.Rows, Row{Number: row, Question: q})
	}

	if row == 0 {
		return nil, domain.NewParseError("csv", errors.New("file has no data rows"))
	}
	return result, nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
