package models

type Upload struct {
	BaseModelWithDeleted
	UserID      string `gorm:"not null;index" json:"user_id"`
	FileName    string `gorm:"not null" json:"file_name"`
	StoragePath string `gorm:"not null" json:"-"`
	ContentType string `gorm:"not null" json:"content_type"`
	Size        int64  `gorm:"not null" json:"size"`
	Usage       string `gorm:"not null;default:'generic'" json:"usage"` // "avatar", "post_image", "generic"
	URL         string `gorm:"not null" json:"url"`
}
