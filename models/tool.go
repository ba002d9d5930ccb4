package models

import "time"

const ToolTable = "ts_tools"
const RequestTable = "ts_borrow_requests"

// Category is the closed set of tool categories.
type Category string

const (
	CategoryPowerTools  Category = "Power Tools"
	CategoryHandTools   Category = "Hand Tools"
	CategoryGardenTools Category = "Garden Tools"
	CategoryCleaning    Category = "Cleaning"
	CategoryAutomotive  Category = "Automotive"
	CategoryMeasuring   Category = "Measuring"
	CategoryOther       Category = "Other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryPowerTools, CategoryHandTools, CategoryGardenTools,
		CategoryCleaning, CategoryAutomotive, CategoryMeasuring, CategoryOther:
		return true
	}
	return false
}

// Condition is the closed set of tool conditions.
type Condition string

const (
	ConditionExcellent Condition = "Excellent"
	ConditionVeryGood  Condition = "Very Good"
	ConditionGood      Condition = "Good"
	ConditionFair      Condition = "Fair"
)

func (c Condition) Valid() bool {
	switch c {
	case ConditionExcellent, ConditionVeryGood, ConditionGood, ConditionFair:
		return true
	}
	return false
}

// Tool is a physical item listed by its owner as lendable.
// IsAvailable is false exactly while an approved, not-yet-returned
// request references the tool; only the request transitions write it.
type Tool struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Category    Category  `gorm:"size:50;not null" json:"category"`
	Condition   Condition `gorm:"size:20;not null" json:"condition"`
	IsAvailable bool      `gorm:"not null;default:true" json:"isAvailable"`
	ImagePath   string    `gorm:"size:255" json:"-"`

	// Derived from ImagePath per request host, never stored.
	ImageURL string `gorm:"-" json:"imageUrl,omitempty"`

	OwnerID string `gorm:"type:uuid;index;not null" json:"ownerId"`
	Owner   *User  `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Tool) TableName() string { return ToolTable }
