package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"clubhub/internal/cache"
	"clubhub/internal/config"
	"clubhub/internal/mailer"
	"clubhub/internal/member"
	"clubhub/internal/notebook"
	"clubhub/internal/settings"
	"clubhub/internal/store"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testConfig() config.App {
	return config.App{
		Env:                 "test",
		JWTIssuer:           "clubhub-test",
		JWTSigningKey:       "test-signing-key",
		AccessTTL:           time.Minute,
		RefreshTTL:          time.Hour,
		MembersTTL:          time.Minute,
		EventsTTL:           time.Minute,
		ProjectsTTL:         time.Minute,
		AchievementsTTL:     time.Minute,
		SettingsTTL:         time.Minute,
		SettingsReadTimeout: time.Second,
	}
}

// newTestServer wires the handler against the in-memory store with no redis
// and the AI upstream disabled.
func newTestServer(t *testing.T) (*gin.Engine, store.Documents) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	docs := store.NewMemory()
	log := quietLogger()
	h := New(Deps{
		Cfg:      testConfig(),
		Log:      log,
		Cache:    cache.New(nil),
		Docs:     docs,
		Mailer:   mailer.New(nopSender{}, log),
		Notebook: notebook.NewService(notebook.New("", "", "", true), log),
	})

	r := gin.New()
	h.Register(r)
	return r, docs
}

type nopSender struct{}

func (nopSender) Send(to, subject, body string) error { return nil }

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListMembers_DedupesAndSanitizes(t *testing.T) {
	r, docs := newTestServer(t)
	ctx := context.Background()

	old := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := old.AddDate(0, 6, 0)
	for _, m := range []member.Member{
		{Name: "Rahim", Email: "rahim@x", Role: "President", Bio: "student", CreatedAt: old},
		{Name: "rahim", Email: "RAHIM@x", Role: "President", Bio: "CSE student", CreatedAt: newer},
		{Name: "Karim", Email: "karim@x", Role: "Member", CreatedAt: old},
	} {
		if _, err := docs.Insert(ctx, store.Members, m); err != nil {
			t.Fatal(err)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/api/members", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var got []member.Member
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 members after dedup, got %d: %+v", len(got), got)
	}
	// president ranks above member, and the newer duplicate won
	if got[0].Name != "rahim" {
		t.Fatalf("got[0] = %+v", got[0])
	}
	if got[0].Bio != "student" {
		t.Fatalf("bio not sanitized: %q", got[0].Bio)
	}
}

func TestGroupedMembers_Buckets(t *testing.T) {
	r, docs := newTestServer(t)
	ctx := context.Background()
	for _, m := range []member.Member{
		{Name: "P", Email: "p@x", Role: "President"},
		{Name: "T", Email: "t@x", Role: "Treasurer"},
		{Name: "M", Email: "m@x", Role: "General Member"},
	} {
		if _, err := docs.Insert(ctx, store.Members, m); err != nil {
			t.Fatal(err)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/api/members/grouped", "")
	var got member.Groups
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.President) != 1 || len(got.DepartmentHeads) != 1 || len(got.Members) != 1 {
		t.Fatalf("groups = %+v", got)
	}
}

func TestCreateRegistration_RefusedWhenDisabled(t *testing.T) {
	r, docs := newTestServer(t)
	ctx := context.Background()

	log := quietLogger()
	if err := settings.NewRepository(docs, log).Save(ctx, settings.Settings{
		ApplicationsEnabled: false,
		DisabledMessage:     "Recruitment opens next semester.",
	}); err != nil {
		t.Fatal(err)
	}

	body := `{"fullName":"A","studentId":"1","email":"a@x.com","department":"CSE"}`
	w := doJSON(t, r, http.MethodPost, "/api/registrations", body)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "next semester") {
		t.Fatalf("disabled message not surfaced: %s", w.Body.String())
	}
}

func TestCreateRegistration_Pending(t *testing.T) {
	r, _ := newTestServer(t)

	body := `{"fullName":"A","studentId":"1","email":"a@x.com","department":"CSE"}`
	w := doJSON(t, r, http.MethodPost, "/api/registrations", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"pending"`) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestAdminRoutes_RequireToken(t *testing.T) {
	r, _ := newTestServer(t)
	w := doJSON(t, r, http.MethodPost, "/api/admin/members", `{"name":"X"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestGetDoctor_NotFoundEnvelope(t *testing.T) {
	r, _ := newTestServer(t)
	w := doJSON(t, r, http.MethodGet, "/api/doctors/9999", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success || resp.Error != "Doctor not found" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestSearchDoctors_FeeCeiling(t *testing.T) {
	r, _ := newTestServer(t)
	w := doJSON(t, r, http.MethodPost, "/api/doctors/search", `{"maxFees":700}`)
	var resp struct {
		Success bool `json:"success"`
		Doctors []struct {
			Fees string `json:"fees"`
		} `json:"doctors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || len(resp.Doctors) == 0 {
		t.Fatalf("resp = %+v", resp)
	}
	for _, d := range resp.Doctors {
		if strings.Contains(d.Fees, "1500") {
			t.Fatalf("fee ceiling ignored: %+v", resp.Doctors)
		}
	}
}

func TestGenerateFlashcards_FallbackWhenDisabled(t *testing.T) {
	r, _ := newTestServer(t)
	w := doJSON(t, r, http.MethodPost, "/api/generate-flashcards", `{"prompt":"sorting algorithms"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Flashcards []notebook.Flashcard `json:"flashcards"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Flashcards) != len(notebook.FallbackFlashcards()) {
		t.Fatalf("got %d cards", len(resp.Flashcards))
	}
}

func TestGenerateFlashcards_PromptRequired(t *testing.T) {
	r, _ := newTestServer(t)
	w := doJSON(t, r, http.MethodPost, "/api/generate-flashcards", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestGetSettings_DefaultsWhenAbsent(t *testing.T) {
	r, _ := newTestServer(t)
	w := doJSON(t, r, http.MethodGet, "/api/settings", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var got settings.Settings
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if !got.ApplicationsEnabled {
		t.Fatalf("got = %+v", got)
	}
}
