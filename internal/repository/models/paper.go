package models

// Paper row; questions is the base selection as a JSON id list.
type Paper struct {
	ID           string     `db:"id"`
	SubjectID    string     `db:"subject_id"`
	SubjectName  string     `db:"subject_name"`
	TeacherID    string     `db:"teacher_id"`
	ExamDuration int        `db:"exam_duration"`
	TotalMarks   int        `db:"total_marks"`
	Questions    Int64Slice `db:"questions"`
	CreatedAt    int64      `db:"created_at"`
}

// PaperVariant row; position keeps the A..E order.
type PaperVariant struct {
	PaperID   string     `db:"paper_id"`
	Variant   string     `db:"variant"`
	Position  int        `db:"position"`
	Questions Int64Slice `db:"questions"`
}
