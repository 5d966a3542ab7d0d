package entity

import "time"

// Deal is one brand sponsorship negotiation (a kanban card).
//
// Calendar dates are stored as YYYY-MM-DD strings. Milestone dates are
// auto-populated the first time their stage is entered and never overwritten.
type Deal struct {
	ID        string `json:"id" gorm:"primaryKey;size:32"`
	BrandName string `json:"brand_name" gorm:"size:200;not null"`
	DealType  string `json:"deal_type" gorm:"size:20;not null;default:flat_rate"` // flat_rate/cpm/full_video

	// Commercial terms
	DealValueGross float64  `json:"deal_value_gross" gorm:"type:decimal(12,2);default:0"`
	DealValueNet   float64  `json:"deal_value_net" gorm:"type:decimal(12,2);default:0"`
	CPMRate        *float64 `json:"cpm_rate" gorm:"type:decimal(10,2)"`
	CPMCap         *float64 `json:"cpm_cap" gorm:"type:decimal(12,2)"`
	MVG            *int     `json:"mvg"`

	Stage string `json:"stage" gorm:"size:20;not null;default:offer_received;index"`

	AgencyContact string `json:"agency_contact" gorm:"size:100"`
	AgencyEmail   string `json:"agency_email" gorm:"size:200"`

	// Milestone dates, one per pipeline stage
	OfferDate           *string `json:"offer_date" gorm:"size:10"`
	ContractDate        *string `json:"contract_date" gorm:"size:10"`
	BriefReceivedDate   *string `json:"brief_received_date" gorm:"size:10"`
	ScriptDueDate       *string `json:"script_due_date" gorm:"size:10"`
	FilmByDate          *string `json:"film_by_date" gorm:"size:10"`
	RoughCutDueDate     *string `json:"rough_cut_due_date" gorm:"size:10"`
	PublishDate         *string `json:"publish_date" gorm:"size:10"`
	InvoiceDate         *string `json:"invoice_date" gorm:"size:10"`
	PaymentDueDate      *string `json:"payment_due_date" gorm:"size:10"`
	PaymentReceivedDate *string `json:"payment_received_date" gorm:"size:10"`

	// Payment terms: brand pays the agency, agency pays us
	PaymentTermsBrandDays  int     `json:"payment_terms_brand_days" gorm:"default:30"`
	PaymentTermsAgencyDays int     `json:"payment_terms_agency_days" gorm:"default:15"`
	InvoiceAmount          float64 `json:"invoice_amount" gorm:"type:decimal(12,2);default:0"`

	// Integration details
	Placement                string `json:"placement" gorm:"size:50;default:first_5_min"`
	IntegrationLengthSeconds int    `json:"integration_length_seconds" gorm:"default:60"`
	BriefText                string `json:"brief_text" gorm:"type:text"`
	BriefLink                string `json:"brief_link" gorm:"size:500"`
	ScriptDraft              string `json:"script_draft" gorm:"type:text"`
	ScriptStatus             string `json:"script_status" gorm:"size:20;default:not_started"`

	// Checklist flags, stored as 0/1
	HasTrackingLink  int    `json:"has_tracking_link" gorm:"default:0"`
	HasPinnedComment int    `json:"has_pinned_comment" gorm:"default:0"`
	HasQRCode        int    `json:"has_qr_code" gorm:"default:0"`
	TrackingLink     string `json:"tracking_link" gorm:"size:500"`
	PromoCode        string `json:"promo_code" gorm:"size:100"`

	// Published video tracking
	YouTubeVideoID    string `json:"youtube_video_id" gorm:"size:20"`
	YouTubeVideoTitle string `json:"youtube_video_title" gorm:"size:200"`
	ViewsAt30Days     int    `json:"views_at_30_days" gorm:"default:0"`

	CPMScreenshotTaken  int `json:"cpm_screenshot_taken" gorm:"default:0"`
	CPMInvoiceGenerated int `json:"cpm_invoice_generated" gorm:"default:0"`

	// Make-good handling when the minimum view guarantee is missed
	MVGMet          *int   `json:"mvg_met"`
	MakeGoodRequired int    `json:"make_good_required" gorm:"default:0"`
	MakeGoodVideoID string `json:"make_good_video_id" gorm:"size:20"`

	ExclusivityWindowDays int    `json:"exclusivity_window_days" gorm:"default:0"`
	ExclusivityCategory   string `json:"exclusivity_category" gorm:"size:100"`

	Notes         string  `json:"notes" gorm:"type:text"`
	NextAction    string  `json:"next_action" gorm:"size:500"`
	NextActionDue *string `json:"next_action_due" gorm:"size:10"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Deliverables []Deliverable `json:"deliverables,omitempty" gorm:"foreignKey:DealID;constraint:OnDelete:CASCADE"`
	DealNotes    []Note        `json:"deal_notes,omitempty" gorm:"foreignKey:DealID;constraint:OnDelete:CASCADE"`
}

func (Deal) TableName() string {
	return "sponsor_deals"
}

// Deal types
const (
	DealTypeFlatRate  = "flat_rate"
	DealTypeCPM       = "cpm"
	DealTypeFullVideo = "full_video"
)

// Pipeline stages
const (
	StageOfferReceived  = "offer_received"
	StageQualified      = "qualified"
	StageContractSigned = "contract_signed"
	StageBriefScript    = "brief_script"
	StageFilming        = "filming"
	StageBrandReview    = "brand_review"
	StagePublished      = "published"
	StageInvoiced       = "invoiced"
	StagePaid           = "paid"
	StageMakeGood       = "make_good"
)

// StageOrder is the linear pipeline sequence. Default advancement walks this
// list and clamps at the final stage; make_good is out-of-band and reachable
// only by explicit target.
var StageOrder = []string{
	StageOfferReceived,
	StageQualified,
	StageContractSigned,
	StageBriefScript,
	StageFilming,
	StageBrandReview,
	StagePublished,
	StageInvoiced,
	StagePaid,
}

// ValidStages is the complete stage set, including make_good.
var ValidStages = map[string]bool{
	StageOfferReceived:  true,
	StageQualified:      true,
	StageContractSigned: true,
	StageBriefScript:    true,
	StageFilming:        true,
	StageBrandReview:    true,
	StagePublished:      true,
	StageInvoiced:       true,
	StagePaid:           true,
	StageMakeGood:       true,
}

// StageMilestoneColumn maps a stage to the milestone date column populated
// the first time that stage is entered. qualified and make_good record no
// milestone date.
var StageMilestoneColumn = map[string]string{
	StageOfferReceived:  "offer_date",
	StageContractSigned: "contract_date",
	StageBriefScript:    "brief_received_date",
	StageFilming:        "film_by_date",
	StageBrandReview:    "rough_cut_due_date",
	StagePublished:      "publish_date",
	StageInvoiced:       "invoice_date",
	StagePaid:           "payment_received_date",
}

// MilestoneValue returns the current value of the milestone date column for
// the given stage, or nil when the stage records no milestone.
func (d *Deal) MilestoneValue(stage string) *string {
	switch StageMilestoneColumn[stage] {
	case "offer_date":
		return d.OfferDate
	case "contract_date":
		return d.ContractDate
	case "brief_received_date":
		return d.BriefReceivedDate
	case "film_by_date":
		return d.FilmByDate
	case "rough_cut_due_date":
		return d.RoughCutDueDate
	case "publish_date":
		return d.PublishDate
	case "invoice_date":
		return d.InvoiceDate
	case "payment_received_date":
		return d.PaymentReceivedDate
	}
	return nil
}

// Script statuses
const (
	ScriptStatusNotStarted = "not_started"
	ScriptStatusDrafting   = "drafting"
	ScriptStatusSubmitted  = "submitted"
	ScriptStatusRevision1  = "revision_1"
	ScriptStatusRevision2  = "revision_2"
	ScriptStatusRevision3  = "revision_3"
	ScriptStatusApproved   = "approved"
)
