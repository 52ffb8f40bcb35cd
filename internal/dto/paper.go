package dto

import (
	"time"

	"examcraft/internal/domain"
)

// GeneratePaperRequest is the body of POST /papers/generate.
// @Description Paper generation request
type GeneratePaperRequest struct {
	SubjectID      string `json:"subject_id" validate:"required,max=64"`
	ExamDuration   int    `json:"exam_duration" validate:"required,min=1,max=1440"`
	TotalMarks     int    `json:"total_marks" validate:"min=0"`
	MCQCount       int    `json:"mcq_count" validate:"min=0,max=500"`
	TwoMarkCount   int    `json:"two_mark_count" validate:"min=0,max=500"`
	FourMarkCount  int    `json:"four_mark_count" validate:"min=0,max=500"`
	SixMarkCount   int    `json:"six_mark_count" validate:"min=0,max=500"`
	EightMarkCount int    `json:"eight_mark_count" validate:"min=0,max=500"`
}

// ToDomain converts the request for the paper generator.
func (r *GeneratePaperRequest) ToDomain(teacherID string) domain.GenerationRequest {
	return domain.GenerationRequest{
		SubjectID:           r.SubjectID,
		TeacherID:           teacherID,
		ExamDurationMinutes: r.ExamDuration,
		TotalMarks:          r.TotalMarks,
		Counts: domain.CategoryCounts{
			domain.CategoryMCQ:        r.MCQCount,
			domain.CategoryTwoMarks:   r.TwoMarkCount,
			domain.CategoryFourMarks:  r.FourMarkCount,
			domain.CategorySixMarks:   r.SixMarkCount,
			domain.CategoryEightMarks: r.EightMarkCount,
		},
	}
}

type PaperVariantResponse struct {
	Variant   string  `json:"variant"`
	Questions []int64 `json:"questions"`
}

// PaperResponse represents a generated paper in the API response
// @Description Generated paper with its five sets
type PaperResponse struct {
	ID           string                 `json:"id"`
	SubjectID    string                 `json:"subject_id"`
	SubjectName  string                 `json:"subject_name"`
	TeacherID    string                 `json:"teacher_id"`
	ExamDuration int                    `json:"exam_duration"`
	TotalMarks   int                    `json:"total_marks"`
	CreatedAt    time.Time              `json:"created_at"`
	Questions    []int64                `json:"questions"`
	SetVariants  []PaperVariantResponse `json:"set_variants"`
}

type SectionResponse struct {
	Letter      string             `json:"letter"`
	Category    string             `json:"category"`
	Title       string             `json:"title"`
	MarksEach   int                `json:"marks_each"`
	StartNumber int                `json:"start_number"`
	Subtotal    int                `json:"subtotal"`
	Questions   []QuestionResponse `json:"questions"`
}

// ResolvedVariantResponse is the print-ready view of one set.
// @Description One set of a paper grouped into sections
type ResolvedVariantResponse struct {
	PaperID            string            `json:"paper_id"`
	SubjectID          string            `json:"subject_id"`
	SubjectName        string            `json:"subject_name"`
	Variant            string            `json:"variant"`
	ExamDuration       int               `json:"exam_duration"`
	TotalMarks         int               `json:"total_marks"`
	CreatedAt          time.Time         `json:"created_at"`
	QuestionCount      int               `json:"question_count"`
	Sections           []SectionResponse `json:"sections"`
	MissingQuestionIDs []int64           `json:"missing_question_ids"`
}

// VariantsResponse lists the set labels every paper carries.
type VariantsResponse struct {
	Variants []string `json:"variants"`
}
