// Package view assembles the record subsets each public page displays:
// filtering, search, ordering and pagination all live here so the page
// surface renders its input verbatim.
package view

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"portfolio/internal/database"
	"portfolio/internal/model"
)

const (
	// ProjectPageSize is the number of projects per listing page.
	ProjectPageSize = 9
	// BlogPageSize is the number of posts per blog listing page.
	BlogPageSize = 6

	maxFeaturedProjects = 3
	maxRecentProjects   = 6
	maxRelated          = 3
)

// Service answers read-only page queries against the record store.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// HomeView is everything the home page shows.
type HomeView struct {
	PersonalInfo     *model.PersonalInfo   `json:"personal_info"`
	Skills           []model.Skill         `json:"skills"`
	FeaturedProjects []model.Project       `json:"featured_projects"`
	RecentProjects   []model.Project       `json:"recent_projects"`
	Experiences      []model.Experience    `json:"experiences"`
	Education        []model.Education     `json:"education"`
	Certifications   []model.Certification `json:"certifications"`
}

// AboutView is the home view minus projects.
type AboutView struct {
	PersonalInfo   *model.PersonalInfo   `json:"personal_info"`
	Skills         []model.Skill         `json:"skills"`
	Experiences    []model.Experience    `json:"experiences"`
	Education      []model.Education     `json:"education"`
	Certifications []model.Certification `json:"certifications"`
}

// ProjectList is one page of the (optionally searched) project listing.
type ProjectList struct {
	Projects   []model.Project `json:"projects"`
	Pagination Pagination      `json:"pagination"`
	Search     string          `json:"search"`
}

// ProjectDetail is a single project plus up to three projects sharing a
// technology with it.
type ProjectDetail struct {
	Project model.Project   `json:"project"`
	Related []model.Project `json:"related_projects"`
}

// PostList is one page of the (optionally searched) published posts.
type PostList struct {
	Posts      []model.BlogPost `json:"posts"`
	Pagination Pagination       `json:"pagination"`
	Search     string           `json:"search"`
}

// PostDetail is a single published post plus up to three other
// published posts.
type PostDetail struct {
	Post    model.BlogPost   `json:"post"`
	Related []model.BlogPost `json:"related_posts"`
}

// SkillGroup is one non-empty skill category with its members in order.
type SkillGroup struct {
	Category model.SkillCategory `json:"category"`
	Label    string              `json:"label"`
	Skills   []model.Skill       `json:"skills"`
}

// personalInfo returns the first profile row, or nil when none exists.
// Absence is an expected state, not an error.
func (s *Service) personalInfo(ctx context.Context) (*model.PersonalInfo, error) {
	var info model.PersonalInfo
	err := s.db.WithContext(ctx).Order("id ASC").First(&info).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load personal info: %w", err)
	}
	return &info, nil
}

// Home assembles the home page data set.
func (s *Service) Home(ctx context.Context) (*HomeView, error) {
	view := &HomeView{}
	var err error
	if view.PersonalInfo, err = s.personalInfo(ctx); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if err := db.Scopes(model.SkillOrder).Find(&view.Skills).Error; err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}
	if err := db.Preload("Technologies").Scopes(model.ProjectOrder).
		Where("featured = ?", true).Limit(maxFeaturedProjects).
		Find(&view.FeaturedProjects).Error; err != nil {
		return nil, fmt.Errorf("load featured projects: %w", err)
	}
	if err := db.Preload("Technologies").Scopes(model.ProjectOrder).
		Where("featured = ?", false).Limit(maxRecentProjects).
		Find(&view.RecentProjects).Error; err != nil {
		return nil, fmt.Errorf("load recent projects: %w", err)
	}
	if err := db.Preload("Technologies").Scopes(model.ExperienceOrder).
		Find(&view.Experiences).Error; err != nil {
		return nil, fmt.Errorf("load experiences: %w", err)
	}
	if err := db.Scopes(model.EducationOrder).Find(&view.Education).Error; err != nil {
		return nil, fmt.Errorf("load education: %w", err)
	}
	if err := db.Scopes(model.CertificationOrder).Find(&view.Certifications).Error; err != nil {
		return nil, fmt.Errorf("load certifications: %w", err)
	}
	return view, nil
}

// About assembles the about page data set.
func (s *Service) About(ctx context.Context) (*AboutView, error) {
	view := &AboutView{}
	var err error
	if view.PersonalInfo, err = s.personalInfo(ctx); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if err := db.Scopes(model.SkillOrder).Find(&view.Skills).Error; err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}
	if err := db.Preload("Technologies").Scopes(model.ExperienceOrder).
		Find(&view.Experiences).Error; err != nil {
		return nil, fmt.Errorf("load experiences: %w", err)
	}
	if err := db.Scopes(model.EducationOrder).Find(&view.Education).Error; err != nil {
		return nil, fmt.Errorf("load education: %w", err)
	}
	if err := db.Scopes(model.CertificationOrder).Find(&view.Certifications).Error; err != nil {
		return nil, fmt.Errorf("load certifications: %w", err)
	}
	return view, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likeTerm builds the case-insensitive substring pattern for search.
// LIKE metacharacters in the term are escaped so they match literally;
// the queries carry a matching ESCAPE clause.
func likeTerm(search string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(search))) + "%"
}

// ListProjects returns one page of projects. A non-empty search narrows
// the listing to projects whose title, description, or any linked
// technology name contains the term; a project matching through several
// technologies still appears once.
func (s *Service) ListProjects(ctx context.Context, search string, page int) (*ProjectList, error) {
	search = strings.TrimSpace(search)
	q := s.db.WithContext(ctx).Model(&model.Project{})
	if search != "" {
		term := likeTerm(search)
		matching := s.db.Model(&model.Project{}).
			Select("projects.id").
			Joins("LEFT JOIN project_technologies pt ON pt.project_id = projects.id").
			Joins("LEFT JOIN skills tech ON tech.id = pt.skill_id").
			Where("LOWER(projects.title) LIKE ? ESCAPE '\\' OR LOWER(projects.description) LIKE ? ESCAPE '\\' OR LOWER(tech.name) LIKE ? ESCAPE '\\'",
				term, term, term)
		q = q.Where("projects.id IN (?)", matching)
	}
	// Session boundary so the filter can back both Count and Find.
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}
	pg := NewPagination(page, ProjectPageSize, total)

	var projects []model.Project
	if err := q.Preload("Technologies").Scopes(model.ProjectOrder).
		Offset(pg.Offset()).Limit(pg.PageSize).
		Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return &ProjectList{Projects: projects, Pagination: pg, Search: search}, nil
}

// GetProject returns the project with id plus its related projects.
func (s *Service) GetProject(ctx context.Context, id uint) (*ProjectDetail, error) {
	var project model.Project
	err := s.db.WithContext(ctx).Preload("Technologies").First(&project, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("project %d: %w", id, database.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load project %d: %w", id, err)
	}

	detail := &ProjectDetail{Project: project, Related: []model.Project{}}
	if len(project.Technologies) == 0 {
		return detail, nil
	}

	techIDs := make([]uint, 0, len(project.Technologies))
	for _, t := range project.Technologies {
		techIDs = append(techIDs, t.ID)
	}
	sharing := s.db.Table("project_technologies").
		Select("project_id").
		Where("skill_id IN ?", techIDs)
	if err := s.db.WithContext(ctx).
		Preload("Technologies").Scopes(model.ProjectOrder).
		Where("projects.id IN (?) AND projects.id <> ?", sharing, project.ID).
		Limit(maxRelated).
		Find(&detail.Related).Error; err != nil {
		return nil, fmt.Errorf("load related projects: %w", err)
	}
	return detail, nil
}

// ListPosts returns one page of published posts. A non-empty search
// narrows the listing to posts whose title, content, or excerpt
// contains the term.
func (s *Service) ListPosts(ctx context.Context, search string, page int) (*PostList, error) {
	search = strings.TrimSpace(search)
	q := s.db.WithContext(ctx).Model(&model.BlogPost{}).Where("published = ?", true)
	if search != "" {
		term := likeTerm(search)
		q = q.Where("LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(content) LIKE ? ESCAPE '\\' OR LOWER(excerpt) LIKE ? ESCAPE '\\'",
			term, term, term)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}
	pg := NewPagination(page, BlogPageSize, total)

	var posts []model.BlogPost
	if err := q.Scopes(model.PostOrder).
		Offset(pg.Offset()).Limit(pg.PageSize).
		Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return &PostList{Posts: posts, Pagination: pg, Search: search}, nil
}

// GetPost returns the published post with slug plus up to three other
// published posts. A slug that exists but is unpublished resolves to
// NotFound, exactly like a missing slug.
func (s *Service) GetPost(ctx context.Context, slug string) (*PostDetail, error) {
	var post model.BlogPost
	err := s.db.WithContext(ctx).
		Where("slug = ? AND published = ?", slug, true).
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("post %q: %w", slug, database.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load post %q: %w", slug, err)
	}

	detail := &PostDetail{Post: post, Related: []model.BlogPost{}}
	if err := s.db.WithContext(ctx).Scopes(model.PostOrder).
		Where("published = ? AND id <> ?", true, post.ID).
		Limit(maxRelated).
		Find(&detail.Related).Error; err != nil {
		return nil, fmt.Errorf("load related posts: %w", err)
	}
	return detail, nil
}

// SkillsGrouped partitions all skills into the fixed category order,
// omitting categories with no members.
func (s *Service) SkillsGrouped(ctx context.Context) ([]SkillGroup, error) {
	var skills []model.Skill
	if err := s.db.WithContext(ctx).Scopes(model.SkillOrder).Find(&skills).Error; err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}

	groups := make([]SkillGroup, 0, len(model.SkillCategories()))
	for _, cat := range model.SkillCategories() {
		var members []model.Skill
		for _, sk := range skills {
			if sk.Category == cat {
				members = append(members, sk)
			}
		}
		if len(members) == 0 {
			continue
		}
		groups = append(groups, SkillGroup{Category: cat, Label: cat.Label(), Skills: members})
	}
	return groups, nil
}
