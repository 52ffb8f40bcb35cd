package dto

type CategoryStat struct {
	Category   string  `json:"category"`
	Marks      int     `json:"marks"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// DashboardResponse summarises the question bank for the signed-in teacher.
// @Description Dashboard statistics
type DashboardResponse struct {
	Subjects   int            `json:"subjects"`
	Questions  int            `json:"questions"`
	MyPapers   int            `json:"my_papers"`
	Categories []CategoryStat `json:"categories"`
}
