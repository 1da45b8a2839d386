package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// PortfolioCollection is the document collection (or table) holding portfolio items.
const PortfolioCollection = "portfolio"

type Category string

const (
	CategoryPortraits Category = "Портрети"
	CategoryWedding   Category = "Весілля"
	CategoryFamily    Category = "Сім'я"
	CategoryFashion   Category = "Fashion"
	CategoryCorporate Category = "Корпоратив"
)

var categories = []Category{
	CategoryPortraits,
	CategoryWedding,
	CategoryFamily,
	CategoryFashion,
	CategoryCorporate,
}

// Categories returns the gallery categories in display order.
func Categories() []Category {
	return slices.Clone(categories)
}

func (c Category) IsValid() bool {
	return slices.Contains(categories, c)
}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.TrimSpace(s))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: unknown category %q", ErrInvalidItem, s)
	}
	return c, nil
}

type PortfolioItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    Category  `json:"category"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p PortfolioItem) HasImage(ref string) bool {
	return slices.Contains(p.Images, ref)
}

// Clone returns a copy that shares no slices with p.
func (p PortfolioItem) Clone() PortfolioItem {
	p.Images = slices.Clone(p.Images)
	return p
}

// NormalizeItem converts a raw stored record into the domain shape.
// Records written before multi-image support carry only ImageURL; they get
// a one-element Images list. ImageURL is filled from Images when missing.
func NormalizeItem(raw PortfolioItem) PortfolioItem {
	item := raw.Clone()
	if len(item.Images) == 0 {
		if item.ImageURL != "" {
			item.Images = []string{item.ImageURL}
		} else {
			item.Images = []string{}
		}
	}
	if item.ImageURL == "" && len(item.Images) > 0 {
		item.ImageURL = item.Images[0]
	}
	return item
}

// ItemFields are the editable fields supplied when creating an item.
type ItemFields struct {
	Title       string
	Category    Category
	Description string
}

func (f ItemFields) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidItem)
	}
	if !f.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidItem, f.Category)
	}
	return nil
}

// ItemPatch carries optional field edits. Nil fields are left untouched.
type ItemPatch struct {
	Title       *string
	Category    *Category
	Description *string
}

func (p ItemPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrInvalidItem)
	}
	if p.Category != nil && !p.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidItem, *p.Category)
	}
	return nil
}

// ItemUpdate is the patch written to the document store. Images is nil
// when the image list is unchanged.
type ItemUpdate struct {
	Title       *string
	Category    *Category
	Description *string
	Images      []string
	ImageURL    *string
	UpdatedAt   time.Time
}

func NewItemUpdate(patch ItemPatch, now time.Time) ItemUpdate {
	return ItemUpdate{
		Title:       patch.Title,
		Category:    patch.Category,
		Description: patch.Description,
		UpdatedAt:   now,
	}
}

// WithImages sets the image list and recomputes the cover reference.
func (u ItemUpdate) WithImages(images []string) ItemUpdate {
	u.Images = slices.Clone(images)
	if len(images) > 0 {
		cover := images[0]
		u.ImageURL = &cover
	}
	return u
}

// Apply patches item in place with the fields set on u.
func (u ItemUpdate) Apply(item *PortfolioItem) {
	if u.Title != nil {
		item.Title = *u.Title
	}
	if u.Category != nil {
		item.Category = *u.Category
	}
	if u.Description != nil {
		item.Description = *u.Description
	}
	if u.Images != nil {
		item.Images = slices.Clone(u.Images)
	}
	if u.ImageURL != nil {
		item.ImageURL = *u.ImageURL
	}
	if !u.UpdatedAt.IsZero() {
		item.UpdatedAt = u.UpdatedAt
	}
}
