package dto

import (
	"examcraft/internal/domain"
)

func NewSubjectResponse(s *domain.Subject) SubjectResponse {
	return SubjectResponse{ID: s.ID, Name: s.Name, Code: s.Code}
}

func NewSubjectResponses(subjects []*domain.Subject) []SubjectResponse {
	out := make([]SubjectResponse, len(subjects))
	for i, s := range subjects {
		out[i] = NewSubjectResponse(s)
	}
	return out
}

func NewQuestionResponse(q *domain.Question) QuestionResponse {
	return QuestionResponse{
		ID:              q.ID,
		SubjectID:       q.SubjectID,
		Category:        string(q.Category),
		Marks:           q.Marks(),
		QuestionText:    q.QuestionText,
		Options:         q.Options,
		CorrectAnswer:   q.CorrectAnswer,
		DifficultyLevel: string(q.DifficultyLevel),
		CreatedAt:       q.CreatedAt,
	}
}

func NewQuestionResponses(questions []*domain.Question) []QuestionResponse {
	out := make([]QuestionResponse, len(questions))
	for i, q := range questions {
		out[i] = NewQuestionResponse(q)
	}
	return out
}

func NewAvailabilityResponse(subjectID string, counts domain.CategoryAvailability) AvailabilityResponse {
	resp := AvailabilityResponse{SubjectID: subjectID}
	for _, cat := range domain.AllCategories() {
		resp.Categories = append(resp.Categories, CategoryAvailabilityItem{
			Category:  string(cat),
			Marks:     cat.Marks(),
			Available: counts[cat],
		})
	}
	return resp
}

func NewPaperResponse(p *domain.GeneratedPaper) PaperResponse {
	resp := PaperResponse{
		ID:           p.ID,
		SubjectID:    p.SubjectID,
		SubjectName:  p.SubjectName,
		TeacherID:    p.TeacherID,
		ExamDuration: p.ExamDuration,
		TotalMarks:   p.TotalMarks,
		CreatedAt:    p.CreatedAt,
		Questions:    p.Questions,
		SetVariants:  make([]PaperVariantResponse, len(p.SetVariants)),
	}
	for i, v := range p.SetVariants {
		resp.SetVariants[i] = PaperVariantResponse{Variant: v.Variant, Questions: v.Questions}
	}
	return resp
}

func NewPaperResponses(papers []*domain.GeneratedPaper) []PaperResponse {
	out := make([]PaperResponse, len(papers))
	for i, p := range papers {
		out[i] = NewPaperResponse(p)
	}
	return out
}

// NewResolvedVariantResponse maps a resolved set. Answer keys are left out so
// the response can be handed to a printer as is.
func NewResolvedVariantResponse(v *domain.ResolvedVariant, sectionTitle func(domain.QuestionCategory) string) ResolvedVariantResponse {
	resp := ResolvedVariantResponse{
		PaperID:            v.PaperID,
		SubjectID:          v.SubjectID,
		SubjectName:        v.SubjectName,
		Variant:            v.Variant,
		ExamDuration:       v.ExamDuration,
		TotalMarks:         v.TotalMarks,
		CreatedAt:          v.CreatedAt,
		QuestionCount:      v.QuestionCount,
		Sections:           make([]SectionResponse, len(v.Sections)),
		MissingQuestionIDs: v.MissingQuestionIDs,
	}
	if resp.MissingQuestionIDs == nil {
		resp.MissingQuestionIDs = []int64{}
	}
	for i, sec := range v.Sections {
		questions := NewQuestionResponses(sec.Questions)
		for j := range questions {
			questions[j].CorrectAnswer = ""
		}
		resp.Sections[i] = SectionResponse{
			Letter:      sec.Letter,
			Category:    string(sec.Category),
			Title:       sectionTitle(sec.Category),
			MarksEach:   sec.MarksEach,
			StartNumber: sec.StartNumber,
			Subtotal:    sec.Subtotal,
			Questions:   questions,
		}
	}
	return resp
}

func NewUserProfileResponse(u *domain.User) UserProfileResponse {
	return UserProfileResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Designation: u.Designation,
		Department:  u.Department,
		Role:        string(u.Role),
		CreatedAt:   u.CreatedAt,
	}
}
