/*
Package domain contains the core types of the review coordination engine.

PURPOSE:
  This package defines the entities shared by every other package: workers,
  businesses, tasks, payment requests, and the supporting messaging types.
  It has no dependencies on storage or transport - the planner and the
  settlement engine operate on plain values from this package.

KEY CONCEPTS IN THIS FILE (types.go):
  - Worker: a reviewer with a decimal point balance and a tier level
  - Business: a review campaign target with a city and a target count
  - Task: one scheduled review, whose status transitions drive settlement
  - PaymentRequest: a payout of points frozen at a conversion rate

DESIGN PRINCIPLES:
  1. Precision: point balances use decimal.Decimal, never float64
  2. Statuses are typed string enums so they serialize readably
  3. Optional references (last task date, pending tier) are pointers

SEE ALSO:
  - day.go: calendar-day time handling
  - multiplier.go: tier-to-multiplier table
  - errors.go: sentinel errors shared across packages
*/
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// WORKER - A reviewer identity with balance and tier
// =============================================================================

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleWorker Role = "WORKER"
)

type Gender string

const (
	GenderMale        Gender = "MALE"
	GenderFemale      Gender = "FEMALE"
	GenderUnspecified Gender = "UNSPECIFIED"
)

// TierStatus tracks the approval workflow for a requested tier level.
type TierStatus string

const (
	TierNone     TierStatus = "NONE"
	TierPending  TierStatus = "PENDING"
	TierApproved TierStatus = "APPROVED"
	TierRejected TierStatus = "REJECTED"
)

// Worker is a platform member. Balances may go negative: penalties can exceed
// earned points and no floor is enforced.
type Worker struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	Role           Role            `json:"role"`
	Gender         Gender          `json:"gender"`
	City           string          `json:"city"`
	Points         decimal.Decimal `json:"points"`
	CompletedTasks int             `json:"completedTasks"`
	LastTaskDate   *Day            `json:"lastTaskDate,omitempty"`

	// Tier ("local guide" style reputation rank, 0-10). TierLevel scales
	// point awards via the multiplier table; PendingTierLevel holds a
	// requested upgrade awaiting admin review.
	TierLevel        int        `json:"tierLevel"`
	PendingTierLevel *int       `json:"pendingTierLevel,omitempty"`
	TierProofURL     string     `json:"tierProofUrl,omitempty"`
	TierStatus       TierStatus `json:"tierStatus"`
}

// =============================================================================
// BUSINESS - Review campaign target
// =============================================================================

type Business struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	MapsURL           string `json:"mapsUrl"`
	City              string `json:"city"`
	TargetReviewCount int    `json:"targetReviewCount"`
}

// =============================================================================
// TASK - One scheduled review
// =============================================================================

type TaskStatus string

const (
	StatusAssigned      TaskStatus = "ASSIGNED"
	StatusPendingReview TaskStatus = "PENDING_REVIEW"
	StatusPublished     TaskStatus = "PUBLISHED"
	StatusSpamDeleted   TaskStatus = "SPAM_DELETED"
)

type Shift string

const (
	ShiftMorning Shift = "MORNING"
	ShiftNoon    Shift = "NOON"
	ShiftEvening Shift = "EVENING"
)

// Task links a worker to a business on a scheduled date. Status transitions
// drive point deltas exactly once per transition; see the settle package.
type Task struct {
	ID               string     `json:"id"`
	WorkerID         string     `json:"workerId"`
	BusinessID       string     `json:"businessId"`
	ScheduledAt      time.Time  `json:"scheduledAt"`
	Shift            Shift      `json:"shift"`
	Status           TaskStatus `json:"status"`
	ReviewLink       string     `json:"reviewLink,omitempty"`
	SuggestedContent string     `json:"suggestedContent,omitempty"`
	Keywords         string     `json:"keywords,omitempty"`
}

// Day returns the calendar day the task is scheduled on.
func (t Task) Day() Day {
	return DayOf(t.ScheduledAt)
}

// =============================================================================
// PAYMENT REQUEST - Point payout with frozen fiat value
// =============================================================================

type PaymentMethod string

const (
	MethodIBAN   PaymentMethod = "IBAN"
	MethodPapara PaymentMethod = "PAPARA"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRejected PaymentStatus = "REJECTED"
)

// PaymentRequest records a payout. Points are deducted eagerly at request
// time; Fiat is frozen at the conversion rate in effect when the request was
// created and never recomputed.
type PaymentRequest struct {
	ID          string          `json:"id"`
	WorkerID    string          `json:"workerId"`
	WorkerName  string          `json:"workerName"`
	WorkerPhone string          `json:"workerPhone"`
	Points      decimal.Decimal `json:"points"`
	Fiat        decimal.Decimal `json:"fiat"`
	Method      PaymentMethod   `json:"method"`
	Details     string          `json:"details"`
	Status      PaymentStatus   `json:"status"`
	RequestedAt time.Time       `json:"requestedAt"`
	ProcessedAt *time.Time      `json:"processedAt,omitempty"`
}

// =============================================================================
// MESSAGING - Notification sink and announcements
// =============================================================================

type MessageKind string

const (
	MessageSystem MessageKind = "SYSTEM"
	MessageChat   MessageKind = "CHAT"
)

// Message is an entry in a worker's inbox. The settlement engine, the
// planner confirmation path and the payment ledger all append here.
type Message struct {
	ID         string      `json:"id"`
	SenderID   string      `json:"senderId"`
	ReceiverID string      `json:"receiverId"`
	Content    string      `json:"content"`
	SentAt     time.Time   `json:"sentAt"`
	Read       bool        `json:"read"`
	Kind       MessageKind `json:"kind"`
}

type AnnouncementKind string

const (
	AnnouncementInfo    AnnouncementKind = "INFO"
	AnnouncementWarning AnnouncementKind = "WARNING"
	AnnouncementSuccess AnnouncementKind = "SUCCESS"
)

type Announcement struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	CreatedAt time.Time        `json:"createdAt"`
	Active    bool             `json:"active"`
	Kind      AnnouncementKind `json:"kind"`
}

// =============================================================================
// COMMENT POOL
// =============================================================================

type Sector string

const (
	SectorRestaurant Sector = "RESTAURANT"
	SectorCafe       Sector = "CAFE"
	SectorHealth     Sector = "HEALTH"
	SectorBeauty     Sector = "BEAUTY"
	SectorHotel      Sector = "HOTEL"
	SectorGeneral    Sector = "GENERAL"
)

// PoolComment is a reusable review text, optionally pinned to one business.
type PoolComment struct {
	ID         string   `json:"id"`
	Content    string   `json:"content"`
	Sector     Sector   `json:"sector"`
	Tags       []string `json:"tags,omitempty"`
	BusinessID string   `json:"businessId,omitempty"`
}

// =============================================================================
// SUPPORT TICKETS
// =============================================================================

type TicketStatus string

const (
	TicketOpen     TicketStatus = "OPEN"
	TicketResolved TicketStatus = "RESOLVED"
	TicketClosed   TicketStatus = "CLOSED"
)

type TicketPriority string

const (
	PriorityLow    TicketPriority = "LOW"
	PriorityMedium TicketPriority = "MEDIUM"
	PriorityHigh   TicketPriority = "HIGH"
)

type TicketMessage struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
	FromAdmin  bool      `json:"fromAdmin"`
}

type Ticket struct {
	ID         string          `json:"id"`
	WorkerID   string          `json:"workerId"`
	WorkerName string          `json:"workerName"`
	Subject    string          `json:"subject"`
	Status     TicketStatus    `json:"status"`
	Priority   TicketPriority  `json:"priority"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	Messages   []TicketMessage `json:"messages"`
}

// Cities supported for workers and businesses. City equality is what the
// planner's location-priority mode ranks on.
var Cities = []string{
	"İstanbul", "Ankara", "İzmir", "Bursa", "Antalya", "Adana",
	"Konya", "Gaziantep", "Mersin", "Kocaeli", "Diyarbakır",
	"Hatay", "Manisa", "Kayseri", "Samsun", "Balıkesir",
	"Kahramanmaraş", "Van", "Aydın", "Denizli",
}
