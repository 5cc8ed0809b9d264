package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"clubhub/internal/member"
	"clubhub/internal/queue"
	"clubhub/internal/registration"
)

// Cache keys for the public read endpoints.
const (
	cacheKeyMembers        = "members"
	cacheKeyMembersGrouped = "members:grouped"
	cacheKeyEvents         = "events"
	cacheKeyProjects       = "projects"
	cacheKeyAchievements   = "achievements"
	cacheKeySettings       = "settings"
)

// publicMembers is the shared read path: list, collapse duplicates, scrub
// bios, then rank. Every member-facing view starts from this.
func (h *Handler) publicMembers(ctx context.Context) []member.Member {
	members := member.Dedupe(h.members.List(ctx))
	for i := range members {
		members[i].Bio = member.SanitizeBio(members[i].Bio)
	}
	return member.SortByRank(members)
}

// ListMembers serves the deduplicated, sanitized roster ordered by rank.
func (h *Handler) ListMembers(c *gin.Context) {
	h.cachedJSON(c, cacheKeyMembers, h.cfg.MembersTTL, func(ctx context.Context) any {
		return h.publicMembers(ctx)
	})
}

// GroupedMembers serves the roster partitioned into display buckets.
func (h *Handler) GroupedMembers(c *gin.Context) {
	h.cachedJSON(c, cacheKeyMembersGrouped, h.cfg.MembersTTL, func(ctx context.Context) any {
		return member.GroupByRole(h.publicMembers(ctx))
	})
}

// ListEvents serves all events, newest first, with derived status.
func (h *Handler) ListEvents(c *gin.Context) {
	h.cachedJSON(c, cacheKeyEvents, h.cfg.EventsTTL, func(ctx context.Context) any {
		return h.events.List(ctx)
	})
}

// GetEvent serves a single event.
func (h *Handler) GetEvent(c *gin.Context) {
	e := h.events.GetByID(c.Request.Context(), c.Param("id"))
	if e == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}
	c.JSON(http.StatusOK, e)
}

// ListProjects serves all projects, newest first.
func (h *Handler) ListProjects(c *gin.Context) {
	h.cachedJSON(c, cacheKeyProjects, h.cfg.ProjectsTTL, func(ctx context.Context) any {
		return h.projects.List(ctx)
	})
}

// ListAchievements serves all achievements, newest first.
func (h *Handler) ListAchievements(c *gin.Context) {
	h.cachedJSON(c, cacheKeyAchievements, h.cfg.AchievementsTTL, func(ctx context.Context) any {
		return h.achievements.List(ctx)
	})
}

// GetSettings serves the public site settings within a hard read deadline so
// the landing page never hangs on a slow store.
func (h *Handler) GetSettings(c *gin.Context) {
	h.cachedJSON(c, cacheKeySettings, h.cfg.SettingsTTL, func(ctx context.Context) any {
		return h.settings.GetWithin(ctx, h.cfg.SettingsReadTimeout)
	})
}

// registrationRequest is the public application payload.
type registrationRequest struct {
	FullName   string       `json:"fullName" binding:"required"`
	StudentID  string       `json:"studentId" binding:"required"`
	Email      string       `json:"email" binding:"required,email"`
	Phone      string       `json:"phone"`
	Department string       `json:"department" binding:"required"`
	Year       string       `json:"year"`
	Interests  []string     `json:"interests"`
	Experience string       `json:"experience"`
	Motivation string       `json:"motivation"`
	Photo      member.Photo `json:"photo"`
}

// ackEmailJob is what the mail worker dequeues for a new application.
type ackEmailJob struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateRegistration accepts a membership application. Submissions are
// refused while applications are disabled. The acknowledgement email is
// enqueued best-effort; a full queue never fails the application.
func (h *Handler) CreateRegistration(c *gin.Context) {
	ctx := c.Request.Context()

	s := h.settings.GetWithin(ctx, h.cfg.SettingsReadTimeout)
	if !s.ApplicationsEnabled {
		msg := s.DisabledMessage
		if msg == "" {
			msg = "Applications are currently closed."
		}
		c.JSON(http.StatusForbidden, gin.H{"error": msg})
		return
	}

	var req registrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.registrations.Create(ctx, registration.Registration{
		FullName:   req.FullName,
		StudentID:  req.StudentID,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		Year:       req.Year,
		Interests:  req.Interests,
		Experience: req.Experience,
		Motivation: req.Motivation,
		Photo:      req.Photo,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	if h.queue != nil {
		body, _ := json.Marshal(ackEmailJob{Name: req.FullName, Email: req.Email})
		if err := h.queue.Publish(ctx, queue.Message{Type: queue.TypeRegistrationEmail, Body: body}); err != nil {
			h.log.WithError(err).Warn("ack email enqueue failed")
		}
	}

	c.JSON(http.StatusCreated, gin.H{"id": id, "status": registration.StatusPending})
}
