package course

import (
	"edumart/models"

	"gorm.io/gorm"
)

type Category string

const (
	CategoryMathematics      Category = "MA"
	CategoryPhysics          Category = "PH"
	CategoryEconomics        Category = "EC"
	CategoryFinanceMarketing Category = "FM"
	CategoryComputerScience  Category = "CS"
	CategoryNotCategorized   Category = "NC"
)

// CategoryLabels maps category codes to display names.
var CategoryLabels = map[Category]string{
	CategoryMathematics:      "Mathematics",
	CategoryPhysics:          "Physics",
	CategoryEconomics:        "Economics",
	CategoryFinanceMarketing: "Finance & Marketing",
	CategoryComputerScience:  "Computer Science",
	CategoryNotCategorized:   "Not Categorized",
}

// Valid reports whether c is a known category code.
func (c Category) Valid() bool {
	_, ok := CategoryLabels[c]
	return ok
}

type Currency string

type CurrencyInfo struct {
	Code  Currency `json:"code"`
	Label string   `json:"label"`
}

// AvailableCurrencies lists the ISO codes a course may be priced in.
var AvailableCurrencies = []CurrencyInfo{
	{"USD", "United States Dollar"},
	{"INR", "Indian Rupee"},
	{"EUR", "EURO"},
	{"RUB", "Russian Ruble"},
	{"JPY", "Japanese Yen"},
	{"AUD", "Australian Dollar"},
	{"CNY", "Chinese Yuan"},
	{"GBP", "British Pound Sterling"},
}

// Valid reports whether cur is a supported currency code.
func (cur Currency) Valid() bool {
	for _, c := range AvailableCurrencies {
		if c.Code == cur {
			return true
		}
	}
	return false
}

// Course represents a course in the catalog
type Course struct {
	gorm.Model
	Title         string        `json:"title" gorm:"size:64;not null"`
	Category      Category      `json:"category" gorm:"size:32;default:'NC'"`
	Description   string        `json:"description" gorm:"size:128"`
	Outcomes      string        `json:"outcomes" gorm:"type:text"`
	Prerequisites string        `json:"prerequisites" gorm:"type:text"`
	Price         float64       `json:"price" gorm:"type:decimal(7,2);not null"`
	Currency      Currency      `json:"currency" gorm:"size:3;default:'INR'"`
	CoverImg      string        `json:"cover_img" gorm:"size:256"`
	PreviewVideo  string        `json:"preview_video" gorm:"size:256"`
	Languages     string        `json:"languages" gorm:"size:108"`
	Captions      string        `json:"captions" gorm:"size:108"`
	OwnerID       uint          `json:"owner_id" gorm:"index;not null"` // protected: owner cannot be deleted
	Instructors   []models.User `json:"instructors" gorm:"many2many:course_instructors"`
	Students      []models.User `json:"-" gorm:"many2many:course_students"` // derived from enrollments
	Rating        float64       `json:"rating" gorm:"default:0"`
	TotalRatings  int           `json:"total_ratings" gorm:"default:0"`
	IsDeleted     bool          `json:"-" gorm:"default:false"`
}
