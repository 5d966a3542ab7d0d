package entity

import "time"

// Video is one card on the production pipeline board
type Video struct {
	ID             string  `json:"id" gorm:"primaryKey;size:32"`
	Title          string  `json:"title" gorm:"size:200;not null"`
	Stage          string  `json:"stage" gorm:"size:20;not null;default:idea;index"`
	DueDate        *string `json:"due_date" gorm:"size:10"`
	Notes          string  `json:"notes" gorm:"type:text"`
	YouTubeVideoID string  `json:"youtube_video_id" gorm:"size:20"`
	ViewCount      int     `json:"view_count" gorm:"default:0"`
	OutlierScore   float64 `json:"outlier_score" gorm:"type:decimal(6,2);default:0"`
	SortOrder      int     `json:"sort_order" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Video) TableName() string {
	return "videos"
}

// Video pipeline stages
const (
	VideoStageIdea      = "idea"
	VideoStagePrePro    = "pre-production"
	VideoStageFilming   = "filming"
	VideoStagePostPro   = "post-production"
	VideoStageReady     = "ready"
	VideoStagePublished = "published"
)

// ValidVideoStages is the complete video stage set
var ValidVideoStages = map[string]bool{
	VideoStageIdea:      true,
	VideoStagePrePro:    true,
	VideoStageFilming:   true,
	VideoStagePostPro:   true,
	VideoStageReady:     true,
	VideoStagePublished: true,
}
