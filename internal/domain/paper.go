package domain

import (
	"fmt"
	"strings"
	"time"
)

// VariantCount is the number of sets produced for every paper.
const VariantCount = 5

var variantLabels = [VariantCount]string{"A", "B", "C", "D", "E"}

// VariantLabels returns the set labels in order.
func VariantLabels() []string {
	labels := variantLabels
	return labels[:]
}

// NormalizeVariantLabel upper-cases a label and reports whether it names a known set.
func NormalizeVariantLabel(label string) (string, bool) {
	label = strings.ToUpper(strings.TrimSpace(label))
	for _, l := range variantLabels {
		if l == label {
			return label, true
		}
	}
	return label, false
}

// VariantPolicy decides how the sets of one paper relate to each other.
type VariantPolicy string

const (
	// VariantPolicyPermute reorders one shared question set per variant.
	VariantPolicyPermute VariantPolicy = "permute"
	// VariantPolicyResample draws a fresh subset per category for every variant.
	VariantPolicyResample VariantPolicy = "resample"
)

func ParseVariantPolicy(s string) (VariantPolicy, error) {
	switch p := VariantPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", VariantPolicyPermute:
		return VariantPolicyPermute, nil
	case VariantPolicyResample:
		return p, nil
	}
	return "", fmt.Errorf("unknown variant policy %q", s)
}

// CategoryCounts is the requested number of questions per category.
type CategoryCounts map[QuestionCategory]int

// Questions is the total number of questions across categories.
func (c CategoryCounts) Questions() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// TotalMarks is the sum of count times fixed marks.
func (c CategoryCounts) TotalMarks() int {
	total := 0
	for cat, n := range c {
		total += n * cat.Marks()
	}
	return total
}

// GenerationRequest is the input of the paper generator.
type GenerationRequest struct {
	SubjectID           string
	TeacherID           string
	ExamDurationMinutes int
	// TotalMarks is the declared total; zero means derive it from Counts.
	TotalMarks int
	Counts     CategoryCounts
}

func (r *GenerationRequest) Validate() ValidationErrors {
	var errs ValidationErrors
	if strings.TrimSpace(r.SubjectID) == "" {
		errs = append(errs, NewMissingFieldError("subject_id"))
	}
	if r.ExamDurationMinutes <= 0 {
		errs = append(errs, NewOutOfRangeError("exam_duration", r.ExamDurationMinutes, "a positive number of minutes"))
	}
	for cat, n := range r.Counts {
		if !cat.IsValid() {
			errs = append(errs, NewInvalidFormatError("counts", string(cat), "a known category"))
			continue
		}
		if n < 0 {
			errs = append(errs, NewOutOfRangeError(string(cat), n, "zero or more"))
		}
	}
	if r.Counts.Questions() <= 0 {
		errs.Add("counts", "at least one category must request questions", r.Counts.Questions())
	}
	if r.TotalMarks < 0 {
		errs = append(errs, NewOutOfRangeError("total_marks", r.TotalMarks, "zero or more"))
	}
	if len(errs) == 0 && r.TotalMarks != 0 && r.TotalMarks != r.Counts.TotalMarks() {
		errs.Add("total_marks",
			fmt.Sprintf("declared total %d does not match %d computed from the requested counts", r.TotalMarks, r.Counts.TotalMarks()),
			r.TotalMarks)
	}
	return errs
}

// PaperVariant is one labeled ordering of a paper's questions.
type PaperVariant struct {
	Variant   string
	Questions []int64
}

// GeneratedPaper is an immutable, multi-variant exam paper.
type GeneratedPaper struct {
	ID           string
	SubjectID    string
	SubjectName  string
	TeacherID    string
	ExamDuration int
	TotalMarks   int
	CreatedAt    time.Time
	Questions    []int64
	SetVariants  []PaperVariant
}

// Variant returns the set with the given label.
func (p *GeneratedPaper) Variant(label string) (*PaperVariant, bool) {
	label, _ = NormalizeVariantLabel(label)
	for i := range p.SetVariants {
		if p.SetVariants[i].Variant == label {
			return &p.SetVariants[i], true
		}
	}
	return nil, false
}

// OwnedBy reports whether the paper belongs to the given teacher.
func (p *GeneratedPaper) OwnedBy(teacherID string) bool {
	return p.TeacherID == teacherID
}
