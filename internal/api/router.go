package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"lumijob/internal/api/controllers"
	"lumijob/internal/config"
	"lumijob/internal/models/db_models"
	mem "lumijob/pkg/memcache"
	"lumijob/pkg/middleware"
)

type RouterParams struct {
	fx.In

	Config      config.Config
	Logger      *zap.Logger
	Tokens      middleware.TokenValidator
	Roles       middleware.RoleResolver
	Limiter     middleware.Limiter `optional:"true"`
	Idempotency mem.IdempotencyStore

	Account      *controllers.AccountController
	Application  *controllers.ApplicationController
	Pipeline     *controllers.PipelineController
	Job          *controllers.JobController
	Bookmark     *controllers.BookmarkController
	Subscription *controllers.SubscriptionController
	Admin        *controllers.AdminController
	Dashboard    *controllers.DashboardController
	Health       *controllers.HealthController
}

func NewRouter(p RouterParams) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Logger))
	r.Use(middleware.CORSMiddleware(p.Config.AllowedOrigins))

	RegisterRoutes(r, p)
	return r
}

func RegisterRoutes(r *gin.Engine, p RouterParams) {
	candidate := string(db_models.RoleCandidate)
	company := string(db_models.RoleCompany)
	idemTTL, _ := config.ParseDuration(p.Config.IdempotencyTTL)

	r.GET("/", p.Health.Root)
	r.GET("/health", p.Health.Health)
	r.GET("/plans", p.Subscription.GetPlans)

	r.GET("/all-job-posts", p.Job.GetAllJobs)
	r.GET("/job-Search", p.Job.SearchJobs)
	r.GET("/jobs/:id", p.Job.GetJob)
	r.GET("/jobs-by-category/:category", p.Job.FilterJobs("category"))
	r.GET("/jobs-by-date/:date", p.Job.FilterJobs("date"))
	r.GET("/jobs-by-jobType/:jobType", p.Job.FilterJobs("jobType"))
	r.GET("/jobs-by-salary/:salary", p.Job.FilterJobs("salary"))

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware(p.Tokens))

	auth.POST("/users", p.Account.CreateAccount)
	auth.GET("/users/:email", p.Account.GetAccount)
	auth.GET("/user-profile/:email", p.Account.GetAccount)
	auth.PUT("/roles/:email", p.Account.SetRole)
	auth.GET("/check-role/:email", p.Account.CheckRole)
	auth.GET("/check-which-role/:email", p.Account.CheckRole)
	auth.PUT("/user-update/:email", p.Account.UpdateProfile)
	auth.GET("/specific-candidate/:email", p.Account.GetCandidateProfile)
	auth.POST("/update-photo/:email", p.Account.UpdatePhoto)
	auth.POST("/upload-resume/:email", p.Account.UploadResume)

	auth.GET("/bookmarks", p.Bookmark.GetBookmarks)
	auth.POST("/bookmarks", p.Bookmark.AddBookmark)
	auth.DELETE("/bookmarks/:id", p.Bookmark.DeleteBookmark)

	candidates := auth.Group("/")
	candidates.Use(middleware.RoleMiddleware(p.Roles, candidate))
	candidates.POST("/apply-to-jobs",
		middleware.RateLimit(p.Limiter, "apply", p.Logger),
		middleware.Idempotency(p.Idempotency, idemTTL),
		p.Application.ApplyToJob)
	candidates.GET("/get-applied-jobs/:email", p.Application.GetAppliedJobs)
	candidates.POST("/delete-jobs-from-candidate", p.Application.WithdrawApplication)

	companies := auth.Group("/")
	companies.Use(middleware.RoleMiddleware(p.Roles, company))
	companies.POST("/post-jobs", p.Job.PostJob)
	companies.GET("/get-company-posted-jobs/:email", p.Job.GetCompanyPostedJobs)
	companies.GET("/dnd-applicants/:id", p.Pipeline.ApplicantsByStatus(db_models.StatusApplicant))
	companies.GET("/dnd-pre-select/:id", p.Pipeline.ApplicantsByStatus(db_models.StatusPreSelected))
	companies.GET("/dnd-interview/:id", p.Pipeline.ApplicantsByStatus(db_models.StatusInterview))
	companies.GET("/dnd-selected/:id", p.Pipeline.ApplicantsByStatus(db_models.StatusSelected))
	companies.GET("/selectedApplicants", p.Pipeline.SelectedApplicants)
	companies.PUT("/updateApplicantsStatus/:id", p.Pipeline.UpdateApplicantStatus)
	companies.POST("/schedule-interview", p.Pipeline.ScheduleInterview)

	admin := auth.Group("/")
	admin.Use(middleware.AdminOnly())
	admin.POST("/subscriptions", p.Subscription.ApplySubscription)
	admin.POST("/admin/reconcile", p.Admin.Reconcile)
	admin.GET("/admin/dashboard", p.Dashboard.GetDashboard)
}
