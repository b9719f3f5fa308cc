package model

import "gorm.io/gorm"

// Default listing orders, applied as GORM scopes before any search or
// pagination narrows a result set.

// SkillOrder sorts by category, then manual order, then name.
func SkillOrder(db *gorm.DB) *gorm.DB {
	return db.Order("category ASC, sort_order ASC, name ASC")
}

// ProjectOrder puts featured projects first, then manual order, then
// newest first.
func ProjectOrder(db *gorm.DB) *gorm.DB {
	return db.Order("featured DESC, sort_order ASC, created_at DESC")
}

// ExperienceOrder sorts newest start date first.
func ExperienceOrder(db *gorm.DB) *gorm.DB {
	return db.Order("start_date DESC, sort_order ASC")
}

// EducationOrder sorts newest start date first.
func EducationOrder(db *gorm.DB) *gorm.DB {
	return db.Order("start_date DESC, sort_order ASC")
}

// CertificationOrder sorts newest issue date first.
func CertificationOrder(db *gorm.DB) *gorm.DB {
	return db.Order("issue_date DESC, sort_order ASC")
}

// PostOrder sorts newest post first.
func PostOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC, id DESC")
}

// ContactOrder sorts newest message first.
func ContactOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC, id DESC")
}
