package models

import (
	"time"
)

// User is an account that can log in. Password holds the bcrypt hash and is never
// serialized.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	Grade       string `json:"grade"`
}

// Profile is the public career profile of a user, addressed by GitHub username.
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Foreign Key
	UserID uint `gorm:"uniqueIndex;not null" json:"authUserId"`

	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Location        string `json:"location"`
	LinkedIn        string `gorm:"column:linkedin" json:"linkedin"`
	GitHub          string `gorm:"column:github;uniqueIndex;not null" json:"github"`
	Portfolio       string `json:"portfolio"`
	ProfileImageURL string `gorm:"column:profile_image_url" json:"profileImageUrl"`

	TechnicalSkills      []string    `gorm:"serializer:json" json:"technicalSkills"`
	SoftSkills           []string    `gorm:"serializer:json" json:"softSkills"`
	ToolsAndTechnologies []string    `gorm:"serializer:json" json:"toolsAndTechnologies"`
	Education            []Education `gorm:"serializer:json" json:"education"`
	Languages            []string    `gorm:"serializer:json" json:"languages"`
	Interests            []string    `gorm:"serializer:json" json:"interests"`
}

// SkillCount is the number of skills listed on the profile.
func (p Profile) SkillCount() int {
	return len(p.TechnicalSkills) + len(p.SoftSkills) + len(p.ToolsAndTechnologies)
}

type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type Project struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Technologies string `json:"technologies"`
}

type ResumeEducation struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	Description string `json:"description"`
}

// ResumeData is the builder form content, stored as one JSON column.
type ResumeData struct {
	Experiences    []Experience      `json:"experiences"`
	Projects       []Project         `json:"projects"`
	Educations     []ResumeEducation `json:"educations"`
	Summary        string            `json:"summary"`
	LinkedIn       string            `json:"linkedin"`
	GitHub         string            `json:"github"`
	Portfolio      string            `json:"portfolio"`
	Phone          string            `json:"phone"`
	Address        string            `json:"address"`
	Certifications []string          `json:"certifications"`
	Hobbies        []string          `json:"hobbies"`
}

type Resume struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_resume_user_created,priority:2" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID     string     `gorm:"not null;index:idx_resume_user_created,priority:1" json:"userId"`
	ResumeName string     `gorm:"not null" json:"resumeName"`
	Data       ResumeData `gorm:"serializer:json;type:jsonb" json:"data"`
}

// Application statuses
const (
	StatusPending   = "pending"
	StatusInterview = "interview"
	StatusRejected  = "rejected"
	StatusAccepted  = "accepted"
)

// ValidApplicationStatus reports whether s is a known application status.
func ValidApplicationStatus(s string) bool {
	switch s {
	case StatusPending, StatusInterview, StatusRejected, StatusAccepted:
		return true
	}
	return false
}

type Application struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID      string `gorm:"not null;index" json:"userId"`
	JobTitle    string `gorm:"not null" json:"jobTitle"`
	Company     string `gorm:"not null" json:"company"`
	Location    string `gorm:"not null" json:"location"`
	AppliedDate string `gorm:"not null" json:"appliedDate"`
	Status      string `gorm:"default:'pending'" json:"status"`
	NextStep    string `json:"nextStep"`
	Notes       string `gorm:"type:text" json:"notes"`
	JobURL      string `json:"jobUrl"`
}

// Skill is one skill extracted from an analyzed resume.
type Skill struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	UserID string `gorm:"uniqueIndex:idx_skill_user_skill" json:"userId"`
	Skill  string `gorm:"uniqueIndex:idx_skill_user_skill;not null" json:"skill"`
	Source string `gorm:"default:'nlp'" json:"source"`
}

// All lists every model for migrations.
func All() []any {
	return []any{&User{}, &Profile{}, &Resume{}, &Application{}, &Skill{}}
}
