package web

// Admin back-office API: operator CRUD over every entity, contact
// read-state actions, and the frontend revalidation ping.

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"portfolio/internal/model"
)

type adminResource struct {
	newRecord func() interface{}
	newSlice  func() interface{}
	order     func(*gorm.DB) *gorm.DB
	preload   string
	validate  func(interface{}) error
}

var adminResources = map[string]adminResource{
	"personal-info": {
		newRecord: func() interface{} { return &model.PersonalInfo{} },
		newSlice:  func() interface{} { return &[]model.PersonalInfo{} },
		order:     func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") },
	},
	"skills": {
		newRecord: func() interface{} { return &model.Skill{} },
		newSlice:  func() interface{} { return &[]model.Skill{} },
		order:     model.SkillOrder,
		validate: func(rec interface{}) error {
			return rec.(*model.Skill).Validate()
		},
	},
	"projects": {
		newRecord: func() interface{} { return &model.Project{} },
		newSlice:  func() interface{} { return &[]model.Project{} },
		order:     model.ProjectOrder,
		preload:   "Technologies",
	},
	"experiences": {
		newRecord: func() interface{} { return &model.Experience{} },
		newSlice:  func() interface{} { return &[]model.Experience{} },
		order:     model.ExperienceOrder,
		preload:   "Technologies",
	},
	"education": {
		newRecord: func() interface{} { return &model.Education{} },
		newSlice:  func() interface{} { return &[]model.Education{} },
		order:     model.EducationOrder,
	},
	"certifications": {
		newRecord: func() interface{} { return &model.Certification{} },
		newSlice:  func() interface{} { return &[]model.Certification{} },
		order:     model.CertificationOrder,
	},
	"posts": {
		newRecord: func() interface{} { return &model.BlogPost{} },
		newSlice:  func() interface{} { return &[]model.BlogPost{} },
		order:     model.PostOrder,
		validate: func(rec interface{}) error {
			return rec.(*model.BlogPost).Validate()
		},
	},
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var loginData struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&loginData); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	admin := s.cfg.Admin
	if admin.Email == "" || admin.PasswordHash == "" || loginData.Email != admin.Email {
		s.writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(loginData.Password)); err != nil {
		s.writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": admin.Email,
		"exp": time.Now().Add(time.Duration(admin.TokenTTLHours) * time.Hour).Unix(),
	})
	tokenString, err := token.SignedString([]byte(admin.JWTSecret))
	if err != nil {
		s.serverError(w, "sign token", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"token": tokenString})
}

func (s *Server) resource(w http.ResponseWriter, r *http.Request) (adminResource, bool) {
	res, ok := adminResources[r.PathValue("entity")]
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown resource type")
	}
	return res, ok
}

func (s *Server) handleAdminList(w http.ResponseWriter, r *http.Request) {
	res, ok := s.resource(w, r)
	if !ok {
		return
	}
	slice := res.newSlice()
	q := s.db.WithContext(r.Context()).Scopes(res.order)
	if res.preload != "" {
		q = q.Preload(res.preload)
	}
	if err := q.Find(slice).Error; err != nil {
		s.serverError(w, "admin list", err)
		return
	}
	s.writeJSON(w, http.StatusOK, slice)
}

func (s *Server) handleAdminCreate(w http.ResponseWriter, r *http.Request) {
	res, ok := s.resource(w, r)
	if !ok {
		return
	}
	rec := res.newRecord()
	if err := json.NewDecoder(r.Body).Decode(rec); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if res.validate != nil {
		if err := res.validate(rec); err != nil {
			s.writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}

	// The profile is a single-row entity: creating when a row already
	// exists updates that row instead of adding a second one.
	if info, isProfile := rec.(*model.PersonalInfo); isProfile {
		var existing model.PersonalInfo
		err := s.db.WithContext(r.Context()).Order("id ASC").First(&existing).Error
		if err == nil {
			info.ID = existing.ID
			info.CreatedAt = existing.CreatedAt
			if err := s.db.WithContext(r.Context()).Save(info).Error; err != nil {
				s.serverError(w, "admin upsert profile", err)
				return
			}
			go s.pingRevalidate()
			s.writeJSON(w, http.StatusOK, info)
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.serverError(w, "admin upsert profile", err)
			return
		}
	}

	if err := s.db.WithContext(r.Context()).Create(rec).Error; err != nil {
		s.serverError(w, "admin create", err)
		return
	}
	go s.pingRevalidate()
	s.writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleAdminGet(w http.ResponseWriter, r *http.Request) {
	res, ok := s.resource(w, r)
	if !ok {
		return
	}
	rec := res.newRecord()
	q := s.db.WithContext(r.Context())
	if res.preload != "" {
		q = q.Preload(res.preload)
	}
	err := q.First(rec, r.PathValue("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.writeError(w, http.StatusNotFound, "resource not found")
		return
	}
	if err != nil {
		s.serverError(w, "admin get", err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleAdminUpdate(w http.ResponseWriter, r *http.Request) {
	res, ok := s.resource(w, r)
	if !ok {
		return
	}
	rec := res.newRecord()
	q := s.db.WithContext(r.Context())
	if res.preload != "" {
		q = q.Preload(res.preload)
	}
	err := q.First(rec, r.PathValue("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.writeError(w, http.StatusNotFound, "resource not found")
		return
	}
	if err != nil {
		s.serverError(w, "admin update", err)
		return
	}

	loadedID := recordID(rec)
	if err := json.NewDecoder(r.Body).Decode(rec); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// The path id names the row being updated; an ID in the body must
	// not redirect the save to another row.
	setRecordID(rec, loadedID)
	if res.validate != nil {
		if err := res.validate(rec); err != nil {
			s.writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}

	if err := s.db.WithContext(r.Context()).Omit("Technologies").Save(rec).Error; err != nil {
		s.serverError(w, "admin update", err)
		return
	}
	if err := s.replaceTechnologies(rec); err != nil {
		s.serverError(w, "admin update technologies", err)
		return
	}
	go s.pingRevalidate()
	s.writeJSON(w, http.StatusOK, rec)
}

func recordID(rec interface{}) uint64 {
	return reflect.ValueOf(rec).Elem().FieldByName("ID").Uint()
}

func setRecordID(rec interface{}, id uint64) {
	reflect.ValueOf(rec).Elem().FieldByName("ID").SetUint(id)
}

// replaceTechnologies makes the stored technology set match the
// submitted one for the entities that carry it.
func (s *Server) replaceTechnologies(rec interface{}) error {
	switch v := rec.(type) {
	case *model.Project:
		return s.db.Model(v).Association("Technologies").Replace(v.Technologies)
	case *model.Experience:
		return s.db.Model(v).Association("Technologies").Replace(v.Technologies)
	}
	return nil
}

func (s *Server) handleAdminDelete(w http.ResponseWriter, r *http.Request) {
	res, ok := s.resource(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		s.writeError(w, http.StatusNotFound, "resource not found")
		return
	}
	result := s.db.WithContext(r.Context()).Delete(res.newRecord(), uint(id))
	if result.Error != nil {
		s.serverError(w, "admin delete", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		s.writeError(w, http.StatusNotFound, "resource not found")
		return
	}
	go s.pingRevalidate()
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	q := s.db.WithContext(r.Context()).Scopes(model.ContactOrder)
	switch r.URL.Query().Get("status") {
	case "", "all":
	case "read":
		q = q.Where("read = ?", true)
	case "unread":
		q = q.Where("read = ?", false)
	default:
		s.writeError(w, http.StatusBadRequest, "status must be all, read, or unread")
		return
	}

	var contacts []model.ContactMessage
	if err := q.Find(&contacts).Error; err != nil {
		s.serverError(w, "list contacts", err)
		return
	}
	s.writeJSON(w, http.StatusOK, contacts)
}

// handleMarkContacts flips the read flag on the selected messages, the
// only mutation a contact record allows.
func (s *Server) handleMarkContacts(read bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			IDs []uint `json:"ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.IDs) == 0 {
			s.writeError(w, http.StatusBadRequest, "ids are required")
			return
		}
		result := s.db.WithContext(r.Context()).
			Model(&model.ContactMessage{}).
			Where("id IN ?", body.IDs).
			Update("read", read)
		if result.Error != nil {
			s.serverError(w, "mark contacts", result.Error)
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]int64{"updated": result.RowsAffected})
	}
}

// pingRevalidate notifies the frontend that content changed so it can
// rebuild its static pages. Best effort; failures are only logged.
func (s *Server) pingRevalidate() {
	if s.cfg.RevalidateURL == "" {
		return
	}

	payload, _ := json.Marshal(map[string]string{"secret": s.cfg.RevalidateSecret})
	resp, err := http.Post(s.cfg.RevalidateURL, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		s.log.Warn("revalidation failed", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Warn("revalidation failed", zap.Int("status", resp.StatusCode))
	}
}
