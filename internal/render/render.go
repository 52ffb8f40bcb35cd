// Package render produces the printable HTML document of one paper set.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"examcraft/internal/domain"
)

//go:embed templates/paper.html
var templateFS embed.FS

type sectionMeta struct {
	Title       string
	Instruction string
}

var sectionMetas = map[domain.QuestionCategory]sectionMeta{
	domain.CategoryMCQ:        {"Multiple Choice Questions", "Choose the correct answer. Each question carries 1 mark."},
	domain.CategoryTwoMarks:   {"Short Answer Questions", "Answer all questions. Each question carries 2 marks."},
	domain.CategoryFourMarks:  {"Short Answer Questions", "Answer all questions. Each question carries 4 marks."},
	domain.CategorySixMarks:   {"Long Answer Questions", "Answer all questions. Each question carries 6 marks."},
	domain.CategoryEightMarks: {"Long Answer Questions", "Answer all questions. Each question carries 8 marks."},
}

// SectionTitle is the heading printed next to the section letter.
func SectionTitle(c domain.QuestionCategory) string {
	return sectionMetas[c].Title
}

// SectionInstruction is the line printed under a section heading.
func SectionInstruction(c domain.QuestionCategory) string {
	return sectionMetas[c].Instruction
}

// OptionLabel returns "(A)", "(B)", ... for the i-th MCQ option.
func OptionLabel(i int) string {
	if i < 26 {
		return fmt.Sprintf("(%c)", 'A'+i)
	}
	return fmt.Sprintf("(%d)", i+1)
}

// Institution is printed in the document header.
type Institution struct {
	Name    string
	Tagline string
}

// Renderer executes the embedded paper template.
type Renderer struct {
	tmpl        *template.Template
	institution Institution
}

func NewRenderer(institution Institution) (*Renderer, error) {
	tmpl, err := template.New("paper.html").Funcs(template.FuncMap{
		"sectionTitle":       SectionTitle,
		"sectionInstruction": SectionInstruction,
		"optionLabel":        OptionLabel,
	}).ParseFS(templateFS, "templates/paper.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse paper template: %w", err)
	}
	return &Renderer{tmpl: tmpl, institution: institution}, nil
}

type paperView struct {
	Institution Institution
	Paper       *domain.ResolvedVariant
}

// Write renders the variant to w.
func (r *Renderer) Write(w io.Writer, variant *domain.ResolvedVariant) error {
	return r.tmpl.Execute(w, paperView{Institution: r.institution, Paper: variant})
}

// HTML renders the variant as a self-contained document.
func (r *Renderer) HTML(variant *domain.ResolvedVariant) (string, error) {
	var buf bytes.Buffer
	if err := r.Write(&buf, variant); err != nil {
		return "", fmt.Errorf("failed to render set %s of paper %s: %w", variant.Variant, variant.PaperID, err)
	}
	return buf.String(), nil
}
