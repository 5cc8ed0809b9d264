package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"clubhub/internal/achievement"
	"clubhub/internal/auth"
	"clubhub/internal/cache"
	"clubhub/internal/config"
	"clubhub/internal/event"
	"clubhub/internal/finance"
	"clubhub/internal/mailer"
	"clubhub/internal/member"
	"clubhub/internal/notebook"
	"clubhub/internal/project"
	"clubhub/internal/queue"
	"clubhub/internal/registration"
	"clubhub/internal/settings"
	"clubhub/internal/store"
)

// Handler carries every dependency the HTTP layer needs.
type Handler struct {
	cfg   config.App
	log   *logrus.Logger
	cache *cache.Cache
	queue queue.Queue
	admin auth.Admin

	members       *member.Repository
	events        *event.Repository
	projects      *project.Repository
	achievements  *achievement.Repository
	transactions  *finance.Repository
	registrations *registration.Repository
	settings      *settings.Repository
	workflow      *registration.Workflow
	mailer        *mailer.Mailer
	notebook      *notebook.Service
}

// Deps bundles the constructor arguments.
type Deps struct {
	Cfg   config.App
	Log   *logrus.Logger
	Cache *cache.Cache
	Queue queue.Queue
	Docs  store.Documents

	Mailer   *mailer.Mailer
	Notebook *notebook.Service
}

// New builds the handler and its repositories.
func New(d Deps) *Handler {
	members := member.NewRepository(d.Docs, d.Log)
	regs := registration.NewRepository(d.Docs, d.Log)
	return &Handler{
		cfg:   d.Cfg,
		log:   d.Log,
		cache: d.Cache,
		queue: d.Queue,
		admin: auth.Admin{
			Email:        d.Cfg.AdminEmail,
			PasswordHash: d.Cfg.AdminPasswordHash,
			Issuer:       d.Cfg.JWTIssuer,
			SigningKey:   d.Cfg.JWTSigningKey,
			AccessTTL:    d.Cfg.AccessTTL,
			RefreshTTL:   d.Cfg.RefreshTTL,
		},
		members:       members,
		events:        event.NewRepository(d.Docs, d.Log),
		projects:      project.NewRepository(d.Docs, d.Log),
		achievements:  achievement.NewRepository(d.Docs, d.Log),
		transactions:  finance.NewRepository(d.Docs, d.Log),
		registrations: regs,
		settings:      settings.NewRepository(d.Docs, d.Log),
		workflow:      registration.NewWorkflow(regs, members),
		mailer:        d.Mailer,
		notebook:      d.Notebook,
	}
}

// Register attaches all routes. Admin routes sit behind the bearer
// middleware.
func (h *Handler) Register(r *gin.Engine) {
	api := r.Group("/api")

	api.GET("/members", h.ListMembers)
	api.GET("/members/grouped", h.GroupedMembers)
	api.GET("/events", h.ListEvents)
	api.GET("/events/:id", h.GetEvent)
	api.GET("/projects", h.ListProjects)
	api.GET("/achievements", h.ListAchievements)
	api.GET("/settings", h.GetSettings)
	api.POST("/registrations", h.CreateRegistration)

	api.GET("/doctors", h.ListDoctors)
	api.GET("/doctors/specialties", h.DoctorSpecialties)
	api.GET("/doctors/locations", h.DoctorLocations)
	api.GET("/doctors/:id", h.GetDoctor)
	api.POST("/doctors/search", h.SearchDoctors)

	api.POST("/generate-flashcards", h.GenerateFlashcards)
	api.POST("/generate-quiz", h.GenerateQuiz)
	api.POST("/generate-mind-map", h.GenerateMindMap)
	api.POST("/generate-audio-overview", h.GenerateAudioOverview)

	api.POST("/admin/login", h.AdminLogin)
	api.POST("/admin/refresh", h.AdminRefresh)

	adm := api.Group("/admin", auth.AdminAuth(h.cfg.JWTSigningKey, h.cfg.JWTIssuer))
	adm.POST("/members", h.CreateMember)
	adm.PUT("/members/:id", h.UpdateMember)
	adm.DELETE("/members/:id", h.DeleteMember)
	adm.GET("/members/distribution", h.MemberDistribution)

	adm.POST("/events", h.CreateEvent)
	adm.PUT("/events/:id", h.UpdateEvent)
	adm.DELETE("/events/:id", h.DeleteEvent)

	adm.POST("/projects", h.CreateProject)
	adm.PUT("/projects/:id", h.UpdateProject)
	adm.DELETE("/projects/:id", h.DeleteProject)

	adm.POST("/achievements", h.CreateAchievement)
	adm.PUT("/achievements/:id", h.UpdateAchievement)
	adm.DELETE("/achievements/:id", h.DeleteAchievement)

	adm.GET("/transactions", h.ListTransactions)
	adm.POST("/transactions", h.CreateTransaction)
	adm.PUT("/transactions/:id", h.UpdateTransaction)
	adm.DELETE("/transactions/:id", h.DeleteTransaction)
	adm.GET("/finance/stats", h.FinanceStats)

	adm.GET("/registrations", h.ListRegistrations)
	adm.POST("/registrations/:id/approve", h.ApproveRegistration)
	adm.POST("/registrations/:id/reject", h.RejectRegistration)

	adm.PUT("/settings", h.UpdateSettings)

	api.POST("/email/send-bulk", auth.AdminAuth(h.cfg.JWTSigningKey, h.cfg.JWTIssuer), h.SendBulkEmail)
}

// storeErrorMessage phrases known store failure codes for the admin UI.
func storeErrorMessage(err error) string {
	code := store.CodeOf(err)
	switch code {
	case store.CodePermissionDenied:
		return "You do not have permission to perform this action."
	case store.CodeResourceExhausted:
		return "The database quota has been exceeded. Please try again later."
	case store.CodeUnavailable:
		return "The database is temporarily unavailable. Please try again shortly."
	case store.CodeDeadlineExceeded:
		return "The operation timed out. Check your connection and retry."
	case store.CodeNotFound:
		return "The requested record no longer exists."
	default:
		return "Error: " + code
	}
}

// writeError maps a write failure onto the admin-facing message. Status is
// 404 for missing records, 500 otherwise.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if store.IsNotFound(err) {
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": storeErrorMessage(err)})
}

// cachedJSON serves key from the cache or rebuilds it with fetch and stores
// it for ttl. Cached entries are raw JSON, shared with the redis layer.
func (h *Handler) cachedJSON(c *gin.Context, key string, ttl time.Duration, fetch func(ctx context.Context) any) {
	ctx := c.Request.Context()
	if raw, ok := h.cache.Get(ctx, key); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(raw))
		return
	}
	payload := fetch(ctx)
	raw, err := json.Marshal(payload)
	if err != nil {
		h.log.WithError(err).WithField("key", key).Error("cache marshal failed")
		c.JSON(http.StatusOK, payload)
		return
	}
	h.cache.Set(ctx, key, string(raw), ttl)
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}
