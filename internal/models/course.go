package models

type Course struct {
	BaseModel
	Name     string `gorm:"not null" json:"name"`
	Location string `json:"location"`

	Holes []CourseHole `gorm:"foreignKey:CourseID" json:"holes,omitempty"`
}

// CourseHole carries the par used to classify hole results.
type CourseHole struct {
	BaseModel
	CourseID   string `gorm:"not null;index;uniqueIndex:idx_course_hole" json:"course_id"`
	HoleNumber int    `gorm:"not null;uniqueIndex:idx_course_hole" json:"hole_number"`
	Par        int    `gorm:"not null" json:"par"`
	Meters     int    `json:"meters"`
	Index      int    `json:"index"` // stroke index for handicap allocation
}
