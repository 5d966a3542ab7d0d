package entity

import "time"

// Series is a filming trip / content series, the unit the pre-production
// checklist hangs off.
type Series struct {
	ID       string `json:"id" gorm:"primaryKey;size:32"`
	Title    string `json:"title" gorm:"size:200;not null"`
	Location string `json:"location" gorm:"size:200"`
	Country  string `json:"country" gorm:"size:100"`
	Status   string `json:"status" gorm:"size:20;not null;default:planning;index"`

	// Pre-production runs on a 5-week countdown
	PreProWeek int `json:"pre_pro_week" gorm:"default:1"`

	ShootStart    *string `json:"shoot_start" gorm:"size:10"`
	ShootEnd      *string `json:"shoot_end" gorm:"size:10"`
	TargetPublish *string `json:"target_publish" gorm:"size:10"`

	BudgetTotal          float64 `json:"budget_total" gorm:"type:decimal(12,2);default:0"`
	TargetCostPerEpisode float64 `json:"target_cost_per_episode" gorm:"type:decimal(12,2);default:1000"`

	FixerName    string   `json:"fixer_name" gorm:"size:100"`
	FixerContact string   `json:"fixer_contact" gorm:"size:200"`
	FixerRateDay *float64 `json:"fixer_rate_day" gorm:"type:decimal(10,2)"`

	Notes string `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Episodes []Episode    `json:"episodes,omitempty" gorm:"foreignKey:SeriesID;constraint:OnDelete:CASCADE"`
	Tasks    []PreProTask `json:"tasks,omitempty" gorm:"foreignKey:SeriesID;constraint:OnDelete:CASCADE"`
}

func (Series) TableName() string {
	return "series"
}

// Series statuses
const (
	SeriesStatusPlanning  = "planning"
	SeriesStatusPrePro    = "pre_production"
	SeriesStatusFilming   = "filming"
	SeriesStatusPostPro   = "post_production"
	SeriesStatusPublished = "published"
	SeriesStatusComplete  = "complete"
)

// Episode is one planned video inside a series
type Episode struct {
	ID               string  `json:"id" gorm:"primaryKey;size:32"`
	SeriesID         string  `json:"series_id" gorm:"size:32;not null;index"`
	EpisodeNumber    int     `json:"episode_number" gorm:"default:1"`
	Title            string  `json:"title" gorm:"size:200;not null"`
	Hook             string  `json:"hook" gorm:"type:text"`
	ThumbnailConcept string  `json:"thumbnail_concept" gorm:"type:text"`
	EpisodeType      string  `json:"episode_type" gorm:"size:20;default:secondary"` // cornerstone/secondary
	Status           string  `json:"status" gorm:"size:20;not null;default:planning"`
	TargetPublish    *string `json:"target_publish" gorm:"size:10"`
	Notes            string  `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Episode) TableName() string {
	return "episodes"
}

// Episode types
const (
	EpisodeTypeCornerstone = "cornerstone"
	EpisodeTypeSecondary   = "secondary"
)

// PreProTask is one checklist item on a series' pre-production countdown
type PreProTask struct {
	ID         string `json:"id" gorm:"primaryKey;size:32"`
	SeriesID   string `json:"series_id" gorm:"size:32;not null;index"`
	WeekNumber int    `json:"week_number" gorm:"not null"`
	TaskName   string `json:"task_name" gorm:"size:300;not null"`
	Completed  int    `json:"completed" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PreProTask) TableName() string {
	return "pre_pro_tasks"
}

// checklistItem pairs a countdown week with a task name
type checklistItem struct {
	Week int
	Name string
}

// defaultChecklist is the fixed pre-production checklist seeded for every new
// series, spread across the 5-week countdown.
var defaultChecklist = []checklistItem{
	{1, "Generate 10-20 episode ideas"},
	{1, "Interview 6-7 fixers"},
	{1, "Select 1-2 fixers"},
	{1, "Confirm fixer availability"},
	{2, "Lock 4-5 episode concepts"},
	{2, "Classify Cornerstone vs Secondary"},
	{2, "Sketch thumbnails for each episode"},
	{2, "Write hooks for each episode"},
	{3, "Confirm all locations"},
	{3, "Receive photo/video proof from fixer"},
	{3, "Lock expert interviews"},
	{3, "Confirm shooting permissions"},
	{4, "Book flights"},
	{4, "Book hotels"},
	{4, "Book transport"},
	{4, "Purchase equipment"},
	{4, "Daily fixer comms established"},
	{5, "Packing checklist checked"},
	{5, "Final confirmation call with fixer"},
	{5, "Backup plans documented"},
	{5, "Editor queue confirmed"},
}

// DefaultPreProTasks builds the seeded checklist rows for a new series
func DefaultPreProTasks(seriesID string, newID func() string) []PreProTask {
	tasks := make([]PreProTask, 0, len(defaultChecklist))
	for _, item := range defaultChecklist {
		tasks = append(tasks, PreProTask{
			ID:         newID(),
			SeriesID:   seriesID,
			WeekNumber: item.Week,
			TaskName:   item.Name,
		})
	}
	return tasks
}
