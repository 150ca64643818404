package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringArray is a string list stored as a JSONB array
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	// lib/pq encodes []byte as bytea, which jsonb rejects
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *StringArray) Scan(value interface{}) error {
	*a = StringArray{}
	return scanJSON(value, (*[]string)(a))
}

// MarshalJSON never emits null
func (a StringArray) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(a))
}

// Comment is a single entry in a recipe's comment thread
type Comment struct {
	User    string    `json:"user"`
	Comment string    `json:"comment"`
	Date    time.Time `json:"date"`
}

// Comments is the append-only comment thread stored as a JSONB array
type Comments []Comment

// Value implements the driver.Valuer interface
func (c Comments) Value() (driver.Value, error) {
	if len(c) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]Comment(c))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (c *Comments) Scan(value interface{}) error {
	*c = Comments{}
	return scanJSON(value, (*[]Comment)(c))
}

// MarshalJSON never emits null
func (c Comments) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Comment(c))
}

func scanJSON(value interface{}, dest interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported JSON column type %T", value)
	}
	if len(bytes) == 0 {
		return nil
	}
	return json.Unmarshal(bytes, dest)
}

// Recipe is the single document type managed by the API
type Recipe struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string      `gorm:"type:text" json:"title"`
	Ingredients  StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions string      `gorm:"type:text" json:"instructions"`
	ImageURL     string      `gorm:"column:image_url;type:text" json:"imageUrl"`
	Category     string      `gorm:"type:text" json:"category"`
	PrepTime     float64     `gorm:"column:prep_time" json:"prepTime"`
	Servings     float64     `json:"servings"`
	Author       string      `gorm:"type:text" json:"author"`
	DateAdded    time.Time   `gorm:"column:date_added;not null" json:"dateAdded"`
	Ratings      float64     `gorm:"not null;default:0" json:"ratings"`
	Comments     Comments    `gorm:"type:jsonb;not null;default:'[]'" json:"comments"`
	Favorites    int64       `gorm:"not null;default:0" json:"favorites"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// BeforeCreate assigns the id and fills defaults the caller left empty
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.DateAdded.IsZero() {
		r.DateAdded = time.Now().UTC()
	}
	if r.Ingredients == nil {
		r.Ingredients = StringArray{}
	}
	if r.Comments == nil {
		r.Comments = Comments{}
	}
	return nil
}
