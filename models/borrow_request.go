package models

import "time"

// Status is the borrow request lifecycle state.
// pending -> approved -> returned
// pending -> rejected
// rejected and returned are terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusReturned Status = "returned"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusReturned:
		return true
	}
	return false
}

// Duration bounds for a borrow request, in days.
const (
	MinDurationDays = 1
	MaxDurationDays = 30
)

// BorrowRequest is a borrower's request to borrow a specific Tool.
// ReturnDate is written exactly once, on the pending->approved
// transition; it is the approval date plus Duration days.
type BorrowRequest struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	ToolID string `gorm:"type:uuid;index;not null" json:"toolId"`
	Tool   *Tool  `gorm:"foreignKey:ToolID;constraint:OnDelete:CASCADE" json:"tool,omitempty"`

	BorrowerID string `gorm:"type:uuid;index;not null" json:"borrowerId"`
	Borrower   *User  `gorm:"foreignKey:BorrowerID;constraint:OnDelete:CASCADE" json:"borrower,omitempty"`

	Reason   string `gorm:"type:text;not null" json:"reason"`
	Duration int    `gorm:"not null" json:"duration"` // days
	Status   Status `gorm:"size:20;not null;default:'pending'" json:"status"`

	ReturnDate *time.Time `gorm:"type:date" json:"returnDate,omitempty"`

	OwnerNotified    bool `gorm:"not null;default:false" json:"ownerNotified"`
	BorrowerNotified bool `gorm:"not null;default:false" json:"borrowerNotified"`

	// Derived, never stored. Populated on reads.
	Overdue bool `gorm:"-" json:"isOverdue"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (BorrowRequest) TableName() string { return RequestTable }

// ReturnDateFrom computes the return date for an approval made at the
// given instant: the approval date plus the request duration in days.
func ReturnDateFrom(approvedAt time.Time, durationDays int) time.Time {
	y, m, d := approvedAt.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, durationDays)
}

// IsOverdueAt reports whether the request is overdue at the given
// instant. Only approved requests can be overdue, regardless of how
// stale the stored return date is.
func (r *BorrowRequest) IsOverdueAt(now time.Time) bool {
	if r.Status != StatusApproved || r.ReturnDate == nil {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return today.After(*r.ReturnDate)
}

// IsOverdue is IsOverdueAt against the wall clock.
func (r *BorrowRequest) IsOverdue() bool { return r.IsOverdueAt(time.Now().UTC()) }
