package web_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/model"
	"portfolio/internal/web"
)

const adminPassword = "correct horse battery staple"

func newTestServer(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Contact.CooldownSeconds = 0
	cfg.Admin.Email = "admin@example.com"
	cfg.Admin.PasswordHash = string(hash)
	cfg.Admin.JWTSecret = "test-secret"

	srv := web.NewServer(cfg, zap.NewNop(), db)
	return srv.Handler(), db
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/admin/login", map[string]string{
		"email":    "admin@example.com",
		"password": adminPassword,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body["token"])
	return body["token"]
}

func TestPublicEndpoints(t *testing.T) {
	h, db := newTestServer(t)

	t.Run("home renders with absent profile", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/home", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "null", string(body["personal_info"]))
	})

	t.Run("missing project id is 404", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/projects/9999", nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-numeric project id is 404", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/projects/abc", nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unpublished slug matches missing slug", func(t *testing.T) {
		require.NoError(t, db.Create(&model.BlogPost{Title: "Draft", Slug: "draft-post"}).Error)

		hidden := doJSON(t, h, http.MethodGet, "/api/blog/draft-post", nil, "")
		missing := doJSON(t, h, http.MethodGet, "/api/blog/never-existed", nil, "")
		assert.Equal(t, http.StatusNotFound, hidden.Code)
		assert.Equal(t, http.StatusNotFound, missing.Code)
		assert.Equal(t, missing.Body.String(), hidden.Body.String())
	})

	t.Run("invalid page numbers are clamped, not rejected", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/projects?page=banana", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		rec = doJSON(t, h, http.MethodGet, "/api/projects?page=-5", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("skills endpoint groups by category", func(t *testing.T) {
		require.NoError(t, db.Create(&model.Skill{Name: "Go", Category: model.CategoryProgramming, Proficiency: 95}).Error)
		rec := doJSON(t, h, http.MethodGet, "/api/skills", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Programming Languages")
	})
}

func TestContactEndpoint(t *testing.T) {
	h, db := newTestServer(t)

	count := func() int64 {
		var n int64
		require.NoError(t, db.Model(&model.ContactMessage{}).Count(&n).Error)
		return n
	}

	t.Run("valid JSON submission is created", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/contact", map[string]string{
			"name":    "Ada Lovelace",
			"email":   "ada@example.com",
			"subject": "Hello",
			"message": "A note.",
		}, "")
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, int64(1), count())
	})

	t.Run("form submission works too", func(t *testing.T) {
		form := url.Values{}
		form.Set("name", "Grace Hopper")
		form.Set("email", "grace@example.com")
		form.Set("subject", "Compilers")
		form.Set("message", "Another note.")
		req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, int64(2), count())
	})

	t.Run("empty message returns field errors and persists nothing", func(t *testing.T) {
		before := count()
		rec := doJSON(t, h, http.MethodPost, "/api/contact", map[string]string{
			"name":    "Ada Lovelace",
			"email":   "ada@example.com",
			"subject": "Hello",
			"message": "",
		}, "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var body struct {
			Fields map[string]string `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body.Fields, "message")
		assert.Equal(t, before, count())
	})
}

func TestAdminAuth(t *testing.T) {
	h, _ := newTestServer(t)

	t.Run("admin routes reject missing token", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/admin/skills", nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("admin routes reject a garbage token", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/admin/skills", nil, "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/admin/login", map[string]string{
			"email":    "admin@example.com",
			"password": "wrong",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid login grants access", func(t *testing.T) {
		token := login(t, h)
		rec := doJSON(t, h, http.MethodGet, "/api/admin/skills", nil, token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAdminCRUD(t *testing.T) {
	h, db := newTestServer(t)
	token := login(t, h)

	t.Run("create and delete a skill", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/admin/skills", model.Skill{
			Name: "Go", Category: model.CategoryProgramming, Proficiency: 95,
		}, token)
		require.Equal(t, http.StatusCreated, rec.Code)

		var created model.Skill
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		require.NotZero(t, created.ID)

		rec = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/admin/skills/%d", created.ID), nil, token)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/admin/skills/%d", created.ID), nil, token)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("out-of-range proficiency is rejected", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/admin/skills", model.Skill{
			Name: "Guessing", Category: model.CategorySoft, Proficiency: 150,
		}, token)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("post with unsafe slug is rejected", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/admin/posts", model.BlogPost{
			Title: "Bad", Slug: "Not A Slug",
		}, token)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("profile create is a single-row upsert", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/admin/personal-info", model.PersonalInfo{
			Name: "Jamuna Yadav", Title: "Data Engineer",
		}, token)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doJSON(t, h, http.MethodPost, "/api/admin/personal-info", model.PersonalInfo{
			Name: "Jamuna Yadav", Title: "Senior Data Engineer",
		}, token)
		require.Equal(t, http.StatusOK, rec.Code)

		var n int64
		require.NoError(t, db.Model(&model.PersonalInfo{}).Count(&n).Error)
		assert.Equal(t, int64(1), n)

		var info model.PersonalInfo
		require.NoError(t, db.First(&info).Error)
		assert.Equal(t, "Senior Data Engineer", info.Title)
	})

	t.Run("update an existing project", func(t *testing.T) {
		p := model.Project{Title: "Before"}
		require.NoError(t, db.Create(&p).Error)

		rec := doJSON(t, h, http.MethodPut, fmt.Sprintf("/api/admin/projects/%d", p.ID), map[string]interface{}{
			"title":    "After",
			"featured": true,
		}, token)
		require.Equal(t, http.StatusOK, rec.Code)

		var got model.Project
		require.NoError(t, db.First(&got, p.ID).Error)
		assert.Equal(t, "After", got.Title)
		assert.True(t, got.Featured)
	})

	t.Run("update ignores a mismatched id in the body", func(t *testing.T) {
		p1 := model.Project{Title: "First"}
		p2 := model.Project{Title: "Second"}
		require.NoError(t, db.Create(&p1).Error)
		require.NoError(t, db.Create(&p2).Error)

		rec := doJSON(t, h, http.MethodPut, fmt.Sprintf("/api/admin/projects/%d", p1.ID), map[string]interface{}{
			"ID":    p2.ID,
			"title": "Renamed",
		}, token)
		require.Equal(t, http.StatusOK, rec.Code)

		var got1, got2 model.Project
		require.NoError(t, db.First(&got1, p1.ID).Error)
		require.NoError(t, db.First(&got2, p2.ID).Error)
		assert.Equal(t, "Renamed", got1.Title)
		assert.Equal(t, "Second", got2.Title)
	})

	t.Run("unknown resource type is 404", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/admin/widgets", nil, token)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAdminContacts(t *testing.T) {
	h, db := newTestServer(t)
	token := login(t, h)

	msgs := []model.ContactMessage{
		{Name: "A", Email: "a@example.com", Subject: "s", Message: "m"},
		{Name: "B", Email: "b@example.com", Subject: "s", Message: "m"},
	}
	require.NoError(t, db.Create(&msgs).Error)

	t.Run("mark-read flips the flag", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/admin/contacts/mark-read", map[string][]uint{
			"ids": {msgs[0].ID},
		}, token)
		require.Equal(t, http.StatusOK, rec.Code)

		var got model.ContactMessage
		require.NoError(t, db.First(&got, msgs[0].ID).Error)
		assert.True(t, got.Read)
	})

	t.Run("unread filter excludes read messages", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/admin/contacts?status=unread", nil, token)
		require.Equal(t, http.StatusOK, rec.Code)

		var got []model.ContactMessage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "B", got[0].Name)
	})

	t.Run("mark-unread restores the flag", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/admin/contacts/mark-unread", map[string][]uint{
			"ids": {msgs[0].ID},
		}, token)
		require.Equal(t, http.StatusOK, rec.Code)

		var got model.ContactMessage
		require.NoError(t, db.First(&got, msgs[0].ID).Error)
		assert.False(t, got.Read)
	})
}
