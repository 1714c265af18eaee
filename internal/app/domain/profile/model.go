package profile

import "time"

// Profile holds the four free-text sections a student fills in. Exactly zero
// or one profile exists per user; absent profiles are created empty on first
// read.
type Profile struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	AcademicInfo    string    `json:"academicInfo"`
	FinancialInfo   string    `json:"financialInfo"`
	AchievementInfo string    `json:"achievementInfo"`
	CategoryInfo    string    `json:"categoryInfo"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Fields is the full set of editable profile sections. Upserts replace all
// four in one write.
type Fields struct {
	AcademicInfo    string `json:"academicInfo"`
	FinancialInfo   string `json:"financialInfo"`
	AchievementInfo string `json:"achievementInfo"`
	CategoryInfo    string `json:"categoryInfo"`
}
