package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Bunrieu-sketch/content-pipeline/internal/sponsor/entity"
	"github.com/Bunrieu-sketch/content-pipeline/internal/sponsor/repository"
	"github.com/Bunrieu-sketch/content-pipeline/internal/sse"
	"github.com/google/uuid"
)

var (
	ErrInvalidStage = errors.New("invalid stage")
	ErrNoFields     = errors.New("no fields to update")
)

// DealService owns the sponsor deal pipeline: CRUD, the stage machine with
// milestone-date side effects, and the payment/net derivations.
type DealService struct {
	deals        *repository.DealRepository
	deliverables *repository.DeliverableRepository
	notes        *repository.NoteRepository
}

func NewDealService(deals *repository.DealRepository, deliverables *repository.DeliverableRepository, notes *repository.NoteRepository) *DealService {
	return &DealService{deals: deals, deliverables: deliverables, notes: notes}
}

// CreateDealRequest carries the deal creation payload. Pointer fields
// distinguish absent from zero so derivations only run on supplied inputs.
type CreateDealRequest struct {
	BrandName string  `json:"brand_name" binding:"required"`
	DealType  *string `json:"deal_type"`

	DealValueGross *float64 `json:"deal_value_gross"`
	DealValueNet   *float64 `json:"deal_value_net"`
	CPMRate        *float64 `json:"cpm_rate"`
	CPMCap         *float64 `json:"cpm_cap"`
	MVG            *int     `json:"mvg"`

	Stage *string `json:"stage"`

	AgencyContact *string `json:"agency_contact"`
	AgencyEmail   *string `json:"agency_email"`

	OfferDate           *string `json:"offer_date"`
	ContractDate        *string `json:"contract_date"`
	BriefReceivedDate   *string `json:"brief_received_date"`
	ScriptDueDate       *string `json:"script_due_date"`
	FilmByDate          *string `json:"film_by_date"`
	RoughCutDueDate     *string `json:"rough_cut_due_date"`
	PublishDate         *string `json:"publish_date"`
	InvoiceDate         *string `json:"invoice_date"`
	PaymentDueDate      *string `json:"payment_due_date"`
	PaymentReceivedDate *string `json:"payment_received_date"`

	PaymentTermsBrandDays  *int     `json:"payment_terms_brand_days"`
	PaymentTermsAgencyDays *int     `json:"payment_terms_agency_days"`
	InvoiceAmount          *float64 `json:"invoice_amount"`

	Placement                *string `json:"placement"`
	IntegrationLengthSeconds *int    `json:"integration_length_seconds"`
	BriefText                *string `json:"brief_text"`
	BriefLink                *string `json:"brief_link"`
	ScriptDraft              *string `json:"script_draft"`
	ScriptStatus             *string `json:"script_status"`

	HasTrackingLink  *int    `json:"has_tracking_link"`
	HasPinnedComment *int    `json:"has_pinned_comment"`
	HasQRCode        *int    `json:"has_qr_code"`
	TrackingLink     *string `json:"tracking_link"`
	PromoCode        *string `json:"promo_code"`

	YouTubeVideoID    *string `json:"youtube_video_id"`
	YouTubeVideoTitle *string `json:"youtube_video_title"`
	ViewsAt30Days     *int    `json:"views_at_30_days"`

	CPMScreenshotTaken  *int `json:"cpm_screenshot_taken"`
	CPMInvoiceGenerated *int `json:"cpm_invoice_generated"`

	MVGMet           *int    `json:"mvg_met"`
	MakeGoodRequired *int    `json:"make_good_required"`
	MakeGoodVideoID  *string `json:"make_good_video_id"`

	ExclusivityWindowDays *int    `json:"exclusivity_window_days"`
	ExclusivityCategory   *string `json:"exclusivity_category"`

	Notes         *string `json:"notes"`
	NextAction    *string `json:"next_action"`
	NextActionDue *string `json:"next_action_due"`
}

// List lists deals, optionally filtered by stage
func (s *DealService) List(ctx context.Context, stage string) ([]entity.Deal, error) {
	if stage != "" && !entity.ValidStages[stage] {
		return nil, ErrInvalidStage
	}
	return s.deals.FindAll(ctx, stage)
}

// Get loads one deal
func (s *DealService) Get(ctx context.Context, id string) (*entity.Deal, error) {
	return s.deals.FindByID(ctx, id)
}

// Create creates a deal, deriving net value and payment due date from
// whichever inputs are supplied.
func (s *DealService) Create(ctx context.Context, req *CreateDealRequest) (*entity.Deal, error) {
	deal := &entity.Deal{
		ID:                       uuid.New().String()[:32],
		BrandName:                strings.TrimSpace(req.BrandName),
		DealType:                 entity.DealTypeFlatRate,
		Stage:                    entity.StageOfferReceived,
		PaymentTermsBrandDays:    30,
		PaymentTermsAgencyDays:   15,
		Placement:                "first_5_min",
		IntegrationLengthSeconds: 60,
		ScriptStatus:             entity.ScriptStatusNotStarted,
	}

	if req.Stage != nil {
		if !entity.ValidStages[*req.Stage] {
			return nil, ErrInvalidStage
		}
		deal.Stage = *req.Stage
	}
	if req.DealType != nil {
		deal.DealType = *req.DealType
	}

	if req.DealValueGross != nil {
		deal.DealValueGross = *req.DealValueGross
	}
	deal.DealValueNet = DeriveNetValue(deal.DealValueGross, req.DealValueNet)

	deal.CPMRate = req.CPMRate
	deal.CPMCap = req.CPMCap
	deal.MVG = req.MVG

	setString(&deal.AgencyContact, req.AgencyContact)
	setString(&deal.AgencyEmail, req.AgencyEmail)

	deal.OfferDate = dateOrNil(req.OfferDate)
	deal.ContractDate = dateOrNil(req.ContractDate)
	deal.BriefReceivedDate = dateOrNil(req.BriefReceivedDate)
	deal.ScriptDueDate = dateOrNil(req.ScriptDueDate)
	deal.FilmByDate = dateOrNil(req.FilmByDate)
	deal.RoughCutDueDate = dateOrNil(req.RoughCutDueDate)
	deal.PublishDate = dateOrNil(req.PublishDate)
	deal.InvoiceDate = dateOrNil(req.InvoiceDate)
	deal.PaymentDueDate = dateOrNil(req.PaymentDueDate)
	deal.PaymentReceivedDate = dateOrNil(req.PaymentReceivedDate)
	deal.NextActionDue = dateOrNil(req.NextActionDue)

	setInt(&deal.PaymentTermsBrandDays, req.PaymentTermsBrandDays)
	setInt(&deal.PaymentTermsAgencyDays, req.PaymentTermsAgencyDays)
	setFloat(&deal.InvoiceAmount, req.InvoiceAmount)

	setString(&deal.Placement, req.Placement)
	setInt(&deal.IntegrationLengthSeconds, req.IntegrationLengthSeconds)
	setString(&deal.BriefText, req.BriefText)
	setString(&deal.BriefLink, req.BriefLink)
	setString(&deal.ScriptDraft, req.ScriptDraft)
	setString(&deal.ScriptStatus, req.ScriptStatus)

	setInt(&deal.HasTrackingLink, req.HasTrackingLink)
	setInt(&deal.HasPinnedComment, req.HasPinnedComment)
	setInt(&deal.HasQRCode, req.HasQRCode)
	setString(&deal.TrackingLink, req.TrackingLink)
	setString(&deal.PromoCode, req.PromoCode)

	setString(&deal.YouTubeVideoID, req.YouTubeVideoID)
	setString(&deal.YouTubeVideoTitle, req.YouTubeVideoTitle)
	setInt(&deal.ViewsAt30Days, req.ViewsAt30Days)

	setInt(&deal.CPMScreenshotTaken, req.CPMScreenshotTaken)
	setInt(&deal.CPMInvoiceGenerated, req.CPMInvoiceGenerated)

	deal.MVGMet = req.MVGMet
	setInt(&deal.MakeGoodRequired, req.MakeGoodRequired)
	setString(&deal.MakeGoodVideoID, req.MakeGoodVideoID)

	setInt(&deal.ExclusivityWindowDays, req.ExclusivityWindowDays)
	setString(&deal.ExclusivityCategory, req.ExclusivityCategory)

	setString(&deal.Notes, req.Notes)
	setString(&deal.NextAction, req.NextAction)

	// The derived due date shadows an explicit one whenever any of its
	// inputs appear in the payload.
	if req.PublishDate != nil || req.PaymentTermsBrandDays != nil || req.PaymentTermsAgencyDays != nil {
		if computed := ComputePaymentDueDate(deal.PublishDate, req.PaymentTermsBrandDays, req.PaymentTermsAgencyDays); computed != nil {
			deal.PaymentDueDate = computed
		}
	}

	if err := s.deals.Create(ctx, deal); err != nil {
		return nil, err
	}
	return deal, nil
}

// PatchDealRequest is a partial field patch; only non-nil fields are applied.
type PatchDealRequest struct {
	BrandName *string `json:"brand_name"`
	DealType  *string `json:"deal_type"`

	DealValueGross *float64 `json:"deal_value_gross"`
	DealValueNet   *float64 `json:"deal_value_net"`
	CPMRate        *float64 `json:"cpm_rate"`
	CPMCap         *float64 `json:"cpm_cap"`
	MVG            *int     `json:"mvg"`

	Stage *string `json:"stage"`

	AgencyContact *string `json:"agency_contact"`
	AgencyEmail   *string `json:"agency_email"`

	OfferDate           *string `json:"offer_date"`
	ContractDate        *string `json:"contract_date"`
	BriefReceivedDate   *string `json:"brief_received_date"`
	ScriptDueDate       *string `json:"script_due_date"`
	FilmByDate          *string `json:"film_by_date"`
	RoughCutDueDate     *string `json:"rough_cut_due_date"`
	PublishDate         *string `json:"publish_date"`
	InvoiceDate         *string `json:"invoice_date"`
	PaymentDueDate      *string `json:"payment_due_date"`
	PaymentReceivedDate *string `json:"payment_received_date"`

	PaymentTermsBrandDays  *int     `json:"payment_terms_brand_days"`
	PaymentTermsAgencyDays *int     `json:"payment_terms_agency_days"`
	InvoiceAmount          *float64 `json:"invoice_amount"`

	Placement                *string `json:"placement"`
	IntegrationLengthSeconds *int    `json:"integration_length_seconds"`
	BriefText                *string `json:"brief_text"`
	BriefLink                *string `json:"brief_link"`
	ScriptDraft              *string `json:"script_draft"`
	ScriptStatus             *string `json:"script_status"`

	HasTrackingLink  *int    `json:"has_tracking_link"`
	HasPinnedComment *int    `json:"has_pinned_comment"`
	HasQRCode        *int    `json:"has_qr_code"`
	TrackingLink     *string `json:"tracking_link"`
	PromoCode        *string `json:"promo_code"`

	YouTubeVideoID    *string `json:"youtube_video_id"`
	YouTubeVideoTitle *string `json:"youtube_video_title"`
	ViewsAt30Days     *int    `json:"views_at_30_days"`

	CPMScreenshotTaken  *int `json:"cpm_screenshot_taken"`
	CPMInvoiceGenerated *int `json:"cpm_invoice_generated"`

	MVGMet           *int    `json:"mvg_met"`
	MakeGoodRequired *int    `json:"make_good_required"`
	MakeGoodVideoID  *string `json:"make_good_video_id"`

	ExclusivityWindowDays *int    `json:"exclusivity_window_days"`
	ExclusivityCategory   *string `json:"exclusivity_category"`

	Notes         *string `json:"notes"`
	NextAction    *string `json:"next_action"`
	NextActionDue *string `json:"next_action_due"`
}

// Patch applies a partial field patch to one deal. All changes are collected
// into a single pending-update set; derived fields (net value, payment due
// date) are resolved against the merged view of payload and stored record
// before the one UPDATE is issued, so a rejected patch leaves the record
// untouched.
func (s *DealService) Patch(ctx context.Context, id string, req *PatchDealRequest) (*entity.Deal, error) {
	deal, err := s.deals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Stage != nil && !entity.ValidStages[*req.Stage] {
		return nil, ErrInvalidStage
	}

	updates := map[string]interface{}{}
	putString(updates, "brand_name", req.BrandName)
	putString(updates, "deal_type", req.DealType)
	putFloat(updates, "deal_value_gross", req.DealValueGross)
	putFloat(updates, "deal_value_net", req.DealValueNet)
	putFloat(updates, "cpm_rate", req.CPMRate)
	putFloat(updates, "cpm_cap", req.CPMCap)
	putInt(updates, "mvg", req.MVG)
	putString(updates, "stage", req.Stage)
	putString(updates, "agency_contact", req.AgencyContact)
	putString(updates, "agency_email", req.AgencyEmail)
	putDate(updates, "offer_date", req.OfferDate)
	putDate(updates, "contract_date", req.ContractDate)
	putDate(updates, "brief_received_date", req.BriefReceivedDate)
	putDate(updates, "script_due_date", req.ScriptDueDate)
	putDate(updates, "film_by_date", req.FilmByDate)
	putDate(updates, "rough_cut_due_date", req.RoughCutDueDate)
	putDate(updates, "publish_date", req.PublishDate)
	putDate(updates, "invoice_date", req.InvoiceDate)
	putDate(updates, "payment_due_date", req.PaymentDueDate)
	putDate(updates, "payment_received_date", req.PaymentReceivedDate)
	putInt(updates, "payment_terms_brand_days", req.PaymentTermsBrandDays)
	putInt(updates, "payment_terms_agency_days", req.PaymentTermsAgencyDays)
	putFloat(updates, "invoice_amount", req.InvoiceAmount)
	putString(updates, "placement", req.Placement)
	putInt(updates, "integration_length_seconds", req.IntegrationLengthSeconds)
	putString(updates, "brief_text", req.BriefText)
	putString(updates, "brief_link", req.BriefLink)
	putString(updates, "script_draft", req.ScriptDraft)
	putString(updates, "script_status", req.ScriptStatus)
	putInt(updates, "has_tracking_link", req.HasTrackingLink)
	putInt(updates, "has_pinned_comment", req.HasPinnedComment)
	putInt(updates, "has_qr_code", req.HasQRCode)
	putString(updates, "tracking_link", req.TrackingLink)
	putString(updates, "promo_code", req.PromoCode)
	putString(updates, "youtube_video_id", req.YouTubeVideoID)
	putString(updates, "youtube_video_title", req.YouTubeVideoTitle)
	putInt(updates, "views_at_30_days", req.ViewsAt30Days)
	putInt(updates, "cpm_screenshot_taken", req.CPMScreenshotTaken)
	putInt(updates, "cpm_invoice_generated", req.CPMInvoiceGenerated)
	putInt(updates, "mvg_met", req.MVGMet)
	putInt(updates, "make_good_required", req.MakeGoodRequired)
	putString(updates, "make_good_video_id", req.MakeGoodVideoID)
	putInt(updates, "exclusivity_window_days", req.ExclusivityWindowDays)
	putString(updates, "exclusivity_category", req.ExclusivityCategory)
	putString(updates, "notes", req.Notes)
	putString(updates, "next_action", req.NextAction)
	putDate(updates, "next_action_due", req.NextActionDue)

	if len(updates) == 0 {
		return nil, ErrNoFields
	}

	// Gross supplied without net derives net.
	if req.DealValueGross != nil && req.DealValueNet == nil {
		updates["deal_value_net"] = DeriveNetValue(*req.DealValueGross, nil)
	}

	// Touching any due-date input recomputes payment_due_date from the merged
	// payload + stored values; the computed value shadows an explicit one in
	// the same payload.
	if req.PublishDate != nil || req.PaymentTermsBrandDays != nil || req.PaymentTermsAgencyDays != nil {
		publish := req.PublishDate
		if publish == nil {
			publish = deal.PublishDate
		}
		brand := deal.PaymentTermsBrandDays
		if req.PaymentTermsBrandDays != nil {
			brand = *req.PaymentTermsBrandDays
		}
		agency := deal.PaymentTermsAgencyDays
		if req.PaymentTermsAgencyDays != nil {
			agency = *req.PaymentTermsAgencyDays
		}
		if computed := ComputePaymentDueDate(publish, &brand, &agency); computed != nil {
			updates["payment_due_date"] = *computed
		}
	}

	if err := s.deals.UpdateColumns(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.deals.FindByID(ctx, id)
}

// MoveStage advances a deal through the pipeline. With an empty target the
// deal moves to the next stage in order, clamped at the final stage. The
// milestone date for the new stage is recorded once; entering published also
// recomputes the payment due date, substituting today when no publish date is
// recorded yet.
func (s *DealService) MoveStage(ctx context.Context, id, target string) (*entity.Deal, error) {
	deal, err := s.deals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := target
	if next == "" {
		next = NextStage(deal.Stage)
	}
	if !entity.ValidStages[next] {
		return nil, ErrInvalidStage
	}

	updates := map[string]interface{}{"stage": next}

	if _, ok := entity.StageMilestoneColumn[next]; ok {
		if current := deal.MilestoneValue(next); current == nil || *current == "" {
			updates[entity.StageMilestoneColumn[next]] = TodayISO()
		}
	}

	if next == entity.StagePublished {
		publish := deal.PublishDate
		if publish == nil || *publish == "" {
			today := TodayISO()
			publish = &today
		}
		if computed := ComputePaymentDueDate(publish, &deal.PaymentTermsBrandDays, &deal.PaymentTermsAgencyDays); computed != nil {
			updates["payment_due_date"] = *computed
		}
	}

	if err := s.deals.UpdateColumns(ctx, id, updates); err != nil {
		return nil, err
	}

	updated, err := s.deals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sse.PublishDealUpdate(id, next, "stage_moved")
	return updated, nil
}

// Delete removes a deal and its children
func (s *DealService) Delete(ctx context.Context, id string) error {
	if _, err := s.deals.FindByID(ctx, id); err != nil {
		return err
	}
	return s.deals.Delete(ctx, id)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// dateOrNil normalizes an optional date: absent or empty stays NULL
func dateOrNil(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}

func putString(m map[string]interface{}, col string, v *string) {
	if v != nil {
		m[col] = *v
	}
}

func putInt(m map[string]interface{}, col string, v *int) {
	if v != nil {
		m[col] = *v
	}
}

func putFloat(m map[string]interface{}, col string, v *float64) {
	if v != nil {
		m[col] = *v
	}
}

// putDate stores NULL for an empty date string so dates can be cleared
func putDate(m map[string]interface{}, col string, v *string) {
	if v == nil {
		return
	}
	if *v == "" {
		m[col] = nil
		return
	}
	m[col] = *v
}
