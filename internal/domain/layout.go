package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// Section groups the questions of one category inside a resolved variant.
type Section struct {
	Letter      string
	Category    QuestionCategory
	MarksEach   int
	StartNumber int
	Subtotal    int
	Questions   []*Question
}

// ResolvedVariant is the print-ready view of one set of a paper.
type ResolvedVariant struct {
	PaperID            string
	SubjectID          string
	SubjectName        string
	Variant            string
	ExamDuration       int
	TotalMarks         int
	CreatedAt          time.Time
	Sections           []Section
	QuestionCount      int
	MissingQuestionIDs []int64
}

// ResolveVariant groups a variant's questions into category sections.
// Only non-empty sections are returned; they are lettered A, B, ... in category order.
// Question numbering runs across sections. Ids missing from lookup are dropped and
// reported in MissingQuestionIDs. The result depends only on its arguments.
func ResolveVariant(paper *GeneratedPaper, label string, lookup map[int64]*Question) (*ResolvedVariant, error) {
	variant, ok := paper.Variant(label)
	if !ok {
		return nil, NewNotFoundError("Variant "+label+" not found on paper "+paper.ID).
			WithContext("variant", label)
	}

	buckets := make(map[QuestionCategory][]*Question, len(categoryOrder))
	var missing []int64
	for _, id := range variant.Questions {
		q, ok := lookup[id]
		if !ok || q == nil || !q.Category.IsValid() {
			missing = append(missing, id)
			continue
		}
		buckets[q.Category] = append(buckets[q.Category], q)
	}

	resolved := &ResolvedVariant{
		PaperID:            paper.ID,
		SubjectID:          paper.SubjectID,
		SubjectName:        paper.SubjectName,
		Variant:            variant.Variant,
		ExamDuration:       paper.ExamDuration,
		TotalMarks:         paper.TotalMarks,
		CreatedAt:          paper.CreatedAt,
		MissingQuestionIDs: missing,
	}

	next := 1
	for _, cat := range categoryOrder {
		questions := buckets[cat]
		if len(questions) == 0 {
			continue
		}
		resolved.Sections = append(resolved.Sections, Section{
			Letter:      string(rune('A' + len(resolved.Sections))),
			Category:    cat,
			MarksEach:   cat.Marks(),
			StartNumber: next,
			Subtotal:    len(questions) * cat.Marks(),
			Questions:   questions,
		})
		next += len(questions)
	}
	resolved.QuestionCount = next - 1
	return resolved, nil
}

// Fingerprint identifies the question snapshot behind a resolved set. It
// changes when a question is edited, deleted or recategorised.
func (r *ResolvedVariant) Fingerprint() string {
	h := sha256.New()
	write := func(parts ...string) {
		h.Write([]byte(strings.Join(parts, "\x1f")))
		h.Write([]byte{0x1e})
	}
	write(r.PaperID, r.Variant, r.SubjectName, strconv.Itoa(r.ExamDuration), strconv.Itoa(r.TotalMarks))
	for _, sec := range r.Sections {
		write(sec.Letter, string(sec.Category))
		for _, q := range sec.Questions {
			write(strconv.FormatInt(q.ID, 10), q.QuestionText, q.CorrectAnswer, string(q.DifficultyLevel))
			write(q.Options...)
		}
	}
	for _, id := range r.MissingQuestionIDs {
		write("missing", strconv.FormatInt(id, 10))
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
