package seedmodels

// SeedQuestion defines the structure for a question item in the JSON seed file.
type SeedQuestion struct {
	Category      string   `json:"category"`
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	Difficulty    string   `json:"difficulty"`
}

// SeedSubject defines the structure for a subject in the JSON seed file.
type SeedSubject struct {
	ID        string         `json:"id,omitempty"`
	Name      string         `json:"name"`
	Code      string         `json:"code"`
	Questions []SeedQuestion `json:"questions"`
}
