/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the internal
  domain model from the external API contract.

NAMING CONVENTION:
  - *Request: Request body types from clients
  - *Response: Response wrappers where a domain value is not returned as-is

Most responses serialize domain values directly; their json tags are the API
contract. DTOs here exist only where the wire shape differs from the domain
shape (dates as YYYY-MM-DD strings, decimals as strings).

SEE ALSO:
  - handlers.go: Uses these types
  - server.go: Router setup
*/
package api

import (
	"time"

	"github.com/reviewcrew/review-engine/comments"
	"github.com/reviewcrew/review-engine/domain"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// AUTH
// =============================================================================

type LoginRequest struct {
	Phone string `json:"phone"`
}

// =============================================================================
// WORKERS & TIERS
// =============================================================================

type CreateWorkerRequest struct {
	Name   string        `json:"name"`
	Phone  string        `json:"phone"`
	Role   domain.Role   `json:"role,omitempty"`
	Gender domain.Gender `json:"gender"`
	City   string        `json:"city"`
}

type BulkWorkersRequest struct {
	Workers []CreateWorkerRequest `json:"workers"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

type TierRequest struct {
	Level    int    `json:"level"`
	ProofURL string `json:"proofUrl"`
}

// =============================================================================
// BUSINESSES
// =============================================================================

type BusinessRequest struct {
	Name              string `json:"name"`
	MapsURL           string `json:"mapsUrl"`
	City              string `json:"city"`
	TargetReviewCount int    `json:"targetReviewCount"`
}

// =============================================================================
// TASKS
// =============================================================================

type StatusRequest struct {
	Status domain.TaskStatus `json:"status"`
}

type ReviewRequest struct {
	Link   string            `json:"link"`
	Status domain.TaskStatus `json:"status,omitempty"`
}

type DetailsRequest struct {
	SuggestedContent *string `json:"suggestedContent,omitempty"`
	Keywords         *string `json:"keywords,omitempty"`
}

// =============================================================================
// PLANNING
// =============================================================================

// PlanRules is the wire form of planner.Rules: the start date arrives as
// YYYY-MM-DD and weekdays as 0-6 (Sunday = 0).
type PlanRules struct {
	TotalTarget      int           `json:"totalTarget"`
	DailyMax         int           `json:"dailyMax"`
	RestPeriodDays   int           `json:"restPeriodDays"`
	StartDate        string        `json:"startDate"`
	Weekdays         []int         `json:"weekdays"`
	Gender           domain.Gender `json:"gender,omitempty"`
	MinTierLevel     int           `json:"minTierLevel"`
	LocationPriority bool          `json:"locationPriority"`
}

type PreviewRequest struct {
	BusinessID string    `json:"businessId"`
	Rules      PlanRules `json:"rules"`
}

type ManualAssignRequest struct {
	WorkerID   string       `json:"workerId"`
	BusinessID string       `json:"businessId"`
	Date       string       `json:"date"`
	Shift      domain.Shift `json:"shift"`
}

// =============================================================================
// PAYMENTS & RATES
// =============================================================================

type PaymentRequestBody struct {
	WorkerID string               `json:"workerId"`
	Points   string               `json:"points"`
	Method   domain.PaymentMethod `json:"method"`
	Details  string               `json:"details"`
}

type RateRequest struct {
	Rate string `json:"rate"`
}

type MultipliersRequest struct {
	Multipliers map[int]string `json:"multipliers"`
}

// =============================================================================
// MESSAGING & TICKETS
// =============================================================================

type AnnouncementRequest struct {
	Title   string                  `json:"title"`
	Content string                  `json:"content"`
	Kind    domain.AnnouncementKind `json:"kind,omitempty"`
}

type CreateTicketRequest struct {
	WorkerID string                `json:"workerId"`
	Subject  string                `json:"subject"`
	Message  string                `json:"message"`
	Priority domain.TicketPriority `json:"priority"`
}

type TicketReplyRequest struct {
	SenderID string `json:"senderId"`
	Message  string `json:"message"`
}

type TicketStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// =============================================================================
// COMMENT POOL
// =============================================================================

type PoolCommentRequest struct {
	Content    string        `json:"content"`
	Sector     domain.Sector `json:"sector"`
	Tags       []string      `json:"tags,omitempty"`
	BusinessID string        `json:"businessId,omitempty"`
}

type GenerateCommentsRequest struct {
	Sector       domain.Sector `json:"sector"`
	BusinessName string        `json:"businessName"`
	Keywords     []string      `json:"keywords"`
	Count        int           `json:"count"`
	Tone         comments.Tone `json:"tone"`
}

type GenerateCommentsResponse struct {
	Drafts []string `json:"drafts"`
}

// =============================================================================
// MISC
// =============================================================================

type MessageDTO struct {
	ID      string    `json:"id"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sentAt"`
	Read    bool      `json:"read"`
	Kind    string    `json:"kind"`
}
