package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"clubhub/internal/achievement"
	"clubhub/internal/auth"
	"clubhub/internal/event"
	"clubhub/internal/finance"
	"clubhub/internal/mailer"
	"clubhub/internal/member"
	"clubhub/internal/project"
	"clubhub/internal/registration"
	"clubhub/internal/settings"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func tokenResponse(pair auth.TokenPair) gin.H {
	return gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"accessExp":    pair.AccessExp,
		"refreshExp":   pair.RefreshExp,
	}
}

// AdminLogin exchanges credentials for a token pair.
func (h *Handler) AdminLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pair, err := h.admin.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		h.log.WithError(err).Error("admin login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login unavailable"})
		return
	}
	c.JSON(http.StatusOK, tokenResponse(pair))
}

// AdminRefresh exchanges a refresh token for a new pair.
func (h *Handler) AdminRefresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pair, err := h.admin.Refresh(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	c.JSON(http.StatusOK, tokenResponse(pair))
}

// invalidateMembers drops every cached view derived from the roster.
func (h *Handler) invalidateMembers(c *gin.Context) {
	ctx := c.Request.Context()
	h.cache.Invalidate(ctx, cacheKeyMembers)
	h.cache.Invalidate(ctx, cacheKeyMembersGrouped)
}

// CreateMember adds a roster entry.
func (h *Handler) CreateMember(c *gin.Context) {
	var m member.Member
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.members.Create(c.Request.Context(), m)
	if err != nil {
		writeError(c, err)
		return
	}
	h.invalidateMembers(c)
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateMember applies a partial update.
func (h *Handler) UpdateMember(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.members.Update(c.Request.Context(), c.Param("id"), fields); err != nil {
		writeError(c, err)
		return
	}
	h.invalidateMembers(c)
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// DeleteMember removes a roster entry.
func (h *Handler) DeleteMember(c *gin.Context) {
	if err := h.members.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	h.invalidateMembers(c)
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// MemberDistribution reports roster headcount per department.
func (h *Handler) MemberDistribution(c *gin.Context) {
	members := member.Dedupe(h.members.List(c.Request.Context()))
	c.JSON(http.StatusOK, member.DepartmentDistribution(members))
}

// CreateEvent adds an event.
func (h *Handler) CreateEvent(c *gin.Context) {
	var e event.Event
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.events.Create(c.Request.Context(), e)
	if err != nil {
		writeError(c, err)
		return
	}
	h.cache.Invalidate(c.Request.Context(), cacheKeyEvents)
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateEvent applies a partial update.
func (h *Handler) UpdateEvent(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.events.Update(c.Request.Context(), c.Param("id"), fields); err != nil {
		writeError(c, err)
		return
	}
	h.cache.Invalidate(c.Request.Context(), cacheKeyEvents)
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// DeleteEvent removes an event.
func (h *Handler) DeleteEvent(c *gin.Context) {
	if err := h.events.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	h.cache.Invalidate(c.Request.Context(), cacheKeyEvents)
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// CreateProject adds a project.
func (h *Handler) CreateProject(c *gin.Context) {
	var p project.Project
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.projects.Create(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	h.cache.Invalidate(c.Request.Context(), cacheKeyProjects)
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateProject applies a partial update.
func (h *Handler) UpdateProject(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.projects.Update(c.Request.Context(), c.Param("id"), fields); err != nil {
		writeError(c, err)
		return
	}
	h.cache.Invalidate(c.Request.Context(), cacheKeyProjects)
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// DeleteProject removes a project.
func (h *Handler) DeleteProject(c *gin.Context) {
	if err := h.projects.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	h.cache.Invalidate(c.Request.Context(), cacheKeyProjects)
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// CreateAchievement adds an achievement.
func (h *Handler) CreateAchievement(c *gin.Context) {
	var a achievement.Achievement
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.achievements.Create(c.Request.Context(), a)
	if err != nil {
		writeError(c, err)
		return
	}
	h.cache.Invalidate(c.Request.Context(), cacheKeyAchievements)
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateAchievement applies a partial update.
func (h *Handler) UpdateAchievement(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.achievements.Update(c.Request.Context(), c.Param("id"), fields); err != nil {
		writeError(c, err)
		return
	}
	h.cache.Invalidate(c.Request.Context(), cacheKeyAchievements)
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// DeleteAchievement removes an achievement.
func (h *Handler) DeleteAchievement(c *gin.Context) {
	if err := h.achievements.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	h.cache.Invalidate(c.Request.Context(), cacheKeyAchievements)
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListTransactions serves the full ledger, newest first.
func (h *Handler) ListTransactions(c *gin.Context) {
	c.JSON(http.StatusOK, h.transactions.List(c.Request.Context()))
}

// CreateTransaction adds a ledger entry.
func (h *Handler) CreateTransaction(c *gin.Context) {
	var tx finance.Transaction
	if err := c.ShouldBindJSON(&tx); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.transactions.Create(c.Request.Context(), tx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateTransaction applies a partial update.
func (h *Handler) UpdateTransaction(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.transactions.Update(c.Request.Context(), c.Param("id"), fields); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// DeleteTransaction removes a ledger entry.
func (h *Handler) DeleteTransaction(c *gin.Context) {
	if err := h.transactions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// parseDateParam accepts RFC 3339 or a bare calendar date.
func parseDateParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FinanceStats aggregates the ledger, optionally windowed by ?start and ?end
// (inclusive).
func (h *Handler) FinanceStats(c *gin.Context) {
	start, err := parseDateParam(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be RFC 3339 or YYYY-MM-DD"})
		return
	}
	end, err := parseDateParam(c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be RFC 3339 or YYYY-MM-DD"})
		return
	}
	// a bare end date means the whole of that day
	if end != nil && c.Query("end") != "" && len(c.Query("end")) == len("2006-01-02") {
		e := end.Add(24*time.Hour - time.Nanosecond)
		end = &e
	}

	stats := finance.ComputeStats(h.transactions.List(c.Request.Context()), start, end)
	c.JSON(http.StatusOK, gin.H{
		"stats":         stats,
		"topCategories": finance.TopCategories(stats.CategoryBreakdown, 5),
	})
}

// ListRegistrations serves all applications, newest first.
func (h *Handler) ListRegistrations(c *gin.Context) {
	c.JSON(http.StatusOK, h.registrations.List(c.Request.Context()))
}

// ApproveRegistration converts a pending application into a member.
func (h *Handler) ApproveRegistration(c *gin.Context) {
	memberID, err := h.workflow.Approve(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, registration.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, registration.ErrAlreadyDecided):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.log.WithError(err).WithField("id", c.Param("id")).Error("approve failed")
		resp := gin.H{"error": storeErrorMessage(err)}
		if memberID != "" {
			// member exists but the registration is still pending; safe to retry
			resp["memberId"] = memberID
		}
		c.JSON(http.StatusInternalServerError, resp)
		return
	}
	h.invalidateMembers(c)
	c.JSON(http.StatusOK, gin.H{"memberId": memberID, "status": registration.StatusApproved})
}

// RejectRegistration marks a pending application rejected.
func (h *Handler) RejectRegistration(c *gin.Context) {
	err := h.workflow.Reject(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, registration.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, registration.ErrAlreadyDecided):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		writeError(c, err)
	default:
		c.JSON(http.StatusOK, gin.H{"status": registration.StatusRejected})
	}
}

// UpdateSettings replaces the site settings singleton.
func (h *Handler) UpdateSettings(c *gin.Context) {
	var s settings.Settings
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.settings.Save(c.Request.Context(), s); err != nil {
		writeError(c, err)
		return
	}
	h.cache.Invalidate(c.Request.Context(), cacheKeySettings)
	c.JSON(http.StatusOK, s)
}

type bulkEmailRequest struct {
	Subject   string   `json:"subject" binding:"required"`
	Message   string   `json:"message" binding:"required"`
	MemberIDs []string `json:"memberIds"`
}

// SendBulkEmail delivers a templated message to members, either the whole
// roster or an explicit selection. Broadcasts skip members without an email
// address; explicitly selected members without one are reported as failures.
func (h *Handler) SendBulkEmail(c *gin.Context) {
	var req bulkEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	members := member.Dedupe(h.members.List(c.Request.Context()))
	var recipients []mailer.Recipient
	if len(req.MemberIDs) > 0 {
		wanted := make(map[string]bool, len(req.MemberIDs))
		for _, id := range req.MemberIDs {
			wanted[id] = true
		}
		for _, m := range members {
			if wanted[m.ID] {
				recipients = append(recipients, mailer.Recipient{Name: m.Name, Email: m.Email})
			}
		}
	} else {
		for _, m := range members {
			if m.Email == "" {
				continue
			}
			recipients = append(recipients, mailer.Recipient{Name: m.Name, Email: m.Email})
		}
	}

	if len(recipients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no recipients"})
		return
	}

	res := h.mailer.SendBulk(c.Request.Context(), recipients, req.Subject, req.Message)
	c.JSON(http.StatusOK, res)
}
