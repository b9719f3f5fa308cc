// Package model holds the database models for the portfolio site.
package model

import (
	"fmt"
	"regexp"
	"time"

	"gorm.io/gorm"
)

// SkillCategory is one of the fixed skill groupings shown on the skills page.
type SkillCategory string

const (
	CategoryProgramming SkillCategory = "programming"
	CategoryDatabase    SkillCategory = "database"
	CategoryCloud       SkillCategory = "cloud"
	CategoryTools       SkillCategory = "tools"
	CategorySoft        SkillCategory = "soft"
)

// SkillCategories returns every category in display order.
func SkillCategories() []SkillCategory {
	return []SkillCategory{
		CategoryProgramming,
		CategoryDatabase,
		CategoryCloud,
		CategoryTools,
		CategorySoft,
	}
}

var categoryLabels = map[SkillCategory]string{
	CategoryProgramming: "Programming Languages",
	CategoryDatabase:    "Databases",
	CategoryCloud:       "Cloud Platforms",
	CategoryTools:       "Tools & Technologies",
	CategorySoft:        "Soft Skills",
}

// Label returns the human-readable name for the category.
func (c SkillCategory) Label() string {
	return categoryLabels[c]
}

// Valid reports whether c is one of the known categories.
func (c SkillCategory) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// PersonalInfo is the site owner's profile. The store keeps at most one
// row; pages use the first one found and render a placeholder when none
// exists.
type PersonalInfo struct {
	gorm.Model
	Name           string `json:"name"`
	Title          string `json:"title"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Location       string `json:"location"`
	LinkedIn       string `json:"linkedin"`
	GitHub         string `json:"github"`
	Website        string `json:"website"`
	ProfilePicture string `json:"profile_picture"`
	AboutMe        string `json:"about_me" gorm:"type:text"`
	Summary        string `json:"summary" gorm:"type:text"`
}

type Skill struct {
	gorm.Model
	Name        string        `json:"name"`
	Category    SkillCategory `json:"category" gorm:"size:20;index"`
	Proficiency int           `json:"proficiency"` // 1-100
	Icon        string        `json:"icon" gorm:"size:50"`
	SortOrder   int           `json:"sort_order" gorm:"default:0"`
}

// Validate checks the category and proficiency constraints.
func (s Skill) Validate() error {
	if !s.Category.Valid() {
		return fmt.Errorf("unknown skill category %q", s.Category)
	}
	if s.Proficiency < 1 || s.Proficiency > 100 {
		return fmt.Errorf("proficiency %d out of range [1,100]", s.Proficiency)
	}
	return nil
}

type Project struct {
	gorm.Model
	Title            string  `json:"title"`
	Description      string  `json:"description" gorm:"type:text"`
	ShortDescription string  `json:"short_description" gorm:"size:300"`
	Image            string  `json:"image"`
	Technologies     []Skill `json:"technologies" gorm:"many2many:project_technologies"`
	GithubURL        string  `json:"github_url"`
	LiveURL          string  `json:"live_url"`
	Featured         bool    `json:"featured" gorm:"default:false"`
	SortOrder        int     `json:"sort_order" gorm:"default:0"`
}

type Experience struct {
	gorm.Model
	Company      string     `json:"company"`
	Position     string     `json:"position"`
	Location     string     `json:"location"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date"` // nil while Current
	Current      bool       `json:"current" gorm:"default:false"`
	Description  string     `json:"description" gorm:"type:text"`
	Achievements string     `json:"achievements" gorm:"type:text"`
	Technologies []Skill    `json:"technologies" gorm:"many2many:experience_technologies"`
	SortOrder    int        `json:"sort_order" gorm:"default:0"`
}

type Education struct {
	gorm.Model
	Institution  string     `json:"institution"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"field_of_study"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Current      bool       `json:"current" gorm:"default:false"`
	GPA          *float64   `json:"gpa" gorm:"type:decimal(3,2)"` // 0.00-4.00, optional
	Description  string     `json:"description" gorm:"type:text"`
	SortOrder    int        `json:"sort_order" gorm:"default:0"`
}

type Certification struct {
	gorm.Model
	Name          string     `json:"name"`
	Issuer        string     `json:"issuer"`
	IssueDate     time.Time  `json:"issue_date"`
	ExpiryDate    *time.Time `json:"expiry_date"`
	CredentialID  string     `json:"credential_id" gorm:"size:100"`
	CredentialURL string     `json:"credential_url"`
	Image         string     `json:"image"`
	SortOrder     int        `json:"sort_order" gorm:"default:0"`
}

// ContactMessage is an inbound message from the public contact form.
// Rows are immutable after creation except for the Read flag, which the
// operator toggles from the back office.
type ContactMessage struct {
	gorm.Model
	Name    string `json:"name" gorm:"size:100"`
	Email   string `json:"email"`
	Subject string `json:"subject" gorm:"size:200"`
	Message string `json:"message" gorm:"type:text"`
	Read    bool   `json:"read" gorm:"default:false"`
}

type BlogPost struct {
	gorm.Model
	Title     string `json:"title"`
	Slug      string `json:"slug" gorm:"uniqueIndex;not null"`
	Content   string `json:"content" gorm:"type:text"`
	Excerpt   string `json:"excerpt" gorm:"size:300"`
	Image     string `json:"image"`
	Published bool   `json:"published" gorm:"default:false"`
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Validate checks that the slug is present and URL-safe.
func (p BlogPost) Validate() error {
	if !slugPattern.MatchString(p.Slug) {
		return fmt.Errorf("slug %q is not URL-safe", p.Slug)
	}
	return nil
}
