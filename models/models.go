package models

import (
	"strconv"
	"strings"
	"time"
)

type Image struct {
	ID       uint      `gorm:"primarykey"`
	ImageURL string    `gorm:"size:255;not null" validate:"required,http_url,max=255"`
	Length   string    `gorm:"size:50;not null" validate:"required,max=50"`
	Width    string    `gorm:"size:50;not null" validate:"required,max=50"`
	Created  time.Time `gorm:"not null"`
}

type User struct {
	ID          uint       `gorm:"primarykey"`
	Email       string     `gorm:"size:254;not null;unique" validate:"required,email,max=254"`
	FirstName   string     `gorm:"size:50;not null;default:''" validate:"max=50"`
	LastName    string     `gorm:"size:50;not null;default:''" validate:"max=50"`
	Birthday    *time.Time `gorm:"type:date"`
	PhoneNumber string     `gorm:"size:12;not null;default:''" validate:"max=12"`
	DateJoined  time.Time  `gorm:"not null"`
	IsActive    bool       `gorm:"not null;default:true"`
	AvatarID    uint       `gorm:"not null;index"`
	Avatar      *Image     `json:"avatar,omitempty" gorm:"foreignKey:AvatarID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" validate:"-"`
}

// FullName returns the first and last name separated by a space, trimmed.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u User) ShortName() string {
	return u.FirstName
}

// UserInfo is keyed by the owning user's ID.
type UserInfo struct {
	UserID  uint      `gorm:"primaryKey;autoIncrement:false"`
	User    *User     `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" validate:"-"`
	Country string    `gorm:"size:50;not null" validate:"required,max=50"`
	City    string    `gorm:"size:50;not null" validate:"required,max=50"`
	Address string    `gorm:"size:50;not null" validate:"required,max=50"`
	Phone   string    `gorm:"size:12;not null" validate:"required,max=12"`
	Created time.Time `gorm:"not null"`
	Updated time.Time `gorm:"not null"`
}

func (UserInfo) TableName() string {
	return "user_info"
}

type Post struct {
	ID            uint         `gorm:"primarykey"`
	UserID        uint         `gorm:"not null;index"`
	User          *User        `json:"user,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" validate:"-"`
	CategoryID    *uint        `gorm:"index"`
	Category      *Category    `json:"category,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" validate:"-"`
	SubcategoryID *uint        `gorm:"index"`
	Subcategory   *Subcategory `json:"subcategory,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" validate:"-"`
	Title         string       `gorm:"size:50;not null" validate:"required,max=50"`
	Body          string       `gorm:"type:text;not null;default:''"`
	Tags          []Tag        `json:"tags,omitempty" gorm:"many2many:post_tags;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" validate:"-"`
	Created       time.Time    `gorm:"not null;index"`
	Updated       time.Time    `gorm:"not null"`
	ImageID       uint         `gorm:"not null;index"`
	Image         *Image       `json:"image,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" validate:"-"`
}

func (p Post) String() string {
	return p.Title
}

type Category struct {
	ID            uint          `gorm:"primarykey"`
	Title         string        `gorm:"size:50;not null" validate:"required,max=50"`
	Subcategories []Subcategory `json:"subcategories,omitempty" gorm:"many2many:category_subcategories;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" validate:"-"`
	Created       time.Time     `gorm:"not null"`
}

func (c Category) String() string {
	return c.Title
}

type Subcategory struct {
	ID      uint      `gorm:"primarykey"`
	Title   string    `gorm:"size:50;not null" validate:"required,max=50"`
	Created time.Time `gorm:"not null"`
}

func (s Subcategory) String() string {
	return s.Title
}

type Tag struct {
	ID      uint      `gorm:"primarykey"`
	Title   string    `gorm:"size:50;not null" validate:"required,max=50"`
	Created time.Time `gorm:"not null"`
}

func (t Tag) String() string {
	return t.Title
}

type Comment struct {
	ID      uint      `gorm:"primarykey"`
	UserID  uint      `gorm:"not null;index"`
	User    *User     `json:"user,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" validate:"-"`
	PostID  uint      `gorm:"not null;index"`
	Post    *Post     `json:"post,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" validate:"-"`
	Body    string    `gorm:"type:text;not null" validate:"required"`
	Created time.Time `gorm:"not null"`
	Updated time.Time `gorm:"not null"`
}

// PostRating has no uniqueness over (user, post); a user may rate a post more than once.
type PostRating struct {
	ID      uint      `gorm:"primarykey"`
	Value   int16     `gorm:"type:smallint;not null"`
	UserID  uint      `gorm:"not null;index"`
	User    *User     `json:"user,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" validate:"-"`
	PostID  uint      `gorm:"not null;index"`
	Post    *Post     `json:"post,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" validate:"-"`
	Created time.Time `gorm:"not null"`
	Updated time.Time `gorm:"not null"`
}

func (r PostRating) String() string {
	return strconv.Itoa(int(r.Value))
}

// All lists every entity in dependency order: referenced tables before the tables
// that point at them.
func All() []any {
	return []any{
		&Image{},
		&User{},
		&UserInfo{},
		&Subcategory{},
		&Category{},
		&Tag{},
		&Post{},
		&Comment{},
		&PostRating{},
	}
}
