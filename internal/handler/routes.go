package handler

import (
	"examcraft/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups every HTTP handler of the API.
type Handlers struct {
	Auth      *AuthHandler
	User      *UserHandler
	Subject   *SubjectHandler
	Question  *QuestionHandler
	Paper     *PaperHandler
	Dashboard *DashboardHandler
	Health    *HealthHandler
}

// RegisterRoutes mounts the health probes and the /api tree. authLimiter
// guards the credential endpoints and may be nil.
func RegisterRoutes(app *fiber.App, h Handlers, tokens middleware.TokenValidator, authLimiter fiber.Handler) {
	if authLimiter == nil {
		authLimiter = func(c *fiber.Ctx) error { return c.Next() }
	}
	vm := middleware.NewValidationMiddleware()
	protected := middleware.Protected(tokens)
	writer := middleware.RequireWriter()

	health := app.Group("/health")
	health.Get("/live", h.Health.Live)
	health.Get("/ready", h.Health.Ready)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authLimiter, h.Auth.Register)
	auth.Post("/login", authLimiter, h.Auth.Login)
	auth.Get("/google/login", h.Auth.GoogleLogin)
	auth.Get("/google/callback", authLimiter, h.Auth.GoogleCallback)
	auth.Post("/refresh", authLimiter, h.Auth.RefreshToken)
	auth.Post("/logout", protected, h.Auth.Logout)

	users := api.Group("/users", protected)
	users.Get("/me", h.User.GetMyProfile)
	users.Put("/me", h.User.UpdateMyProfile)
	users.Put("/:id/role", middleware.RequireAdmin(), h.User.ChangeRole)

	api.Get("/dashboard", protected, h.Dashboard.GetDashboard)

	subjects := api.Group("/subjects", protected)
	subjects.Get("/", h.Subject.ListSubjects)
	subjects.Post("/", writer, h.Subject.CreateSubject)
	subjects.Get("/:id", h.Subject.GetSubject)
	subjects.Put("/:id", writer, h.Subject.UpdateSubject)
	subjects.Delete("/:id", writer, h.Subject.DeleteSubject)
	subjects.Get("/:id/questions", h.Subject.ListSubjectQuestions)
	subjects.Get("/:id/availability", h.Subject.GetAvailability)

	api.Get("/questions/template.csv", h.Question.DownloadTemplate)
	questions := api.Group("/questions", protected)
	questions.Get("/", h.Question.ListQuestions)
	questions.Post("/", writer, h.Question.CreateQuestion)
	questions.Post("/bulk", writer, h.Question.BulkUpload)
	questions.Get("/:id", vm.ValidateQuestionID(), h.Question.GetQuestion)
	questions.Put("/:id", writer, vm.ValidateQuestionID(), h.Question.UpdateQuestion)
	questions.Delete("/:id", writer, vm.ValidateQuestionID(), h.Question.DeleteQuestion)

	api.Get("/papers/variants", h.Paper.ListVariants)
	papers := api.Group("/papers", protected)
	papers.Post("/generate", writer, h.Paper.GeneratePaper)
	papers.Get("/", h.Paper.ListMyPapers)
	papers.Get("/all", middleware.RequireAdmin(), h.Paper.ListAllPapers)
	papers.Get("/:id", vm.ValidatePaperID(), h.Paper.GetPaper)
	papers.Delete("/:id", vm.ValidatePaperID(), h.Paper.DeletePaper)

	papers.Get("/:id/variants/:variant", vm.ValidatePaperID(), vm.ValidateVariant(), h.Paper.GetVariant)
	papers.Get("/:id/variants/:variant/print", vm.ValidatePaperID(), vm.ValidateVariant(), h.Paper.PrintVariant)
	papers.Get("/:id/variants/:variant/pdf", vm.ValidatePaperID(), vm.ValidateVariant(), h.Paper.DownloadPDF)
}
