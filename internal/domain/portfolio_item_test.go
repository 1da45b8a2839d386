package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeItem_LegacySingleImage(t *testing.T) {
	raw := PortfolioItem{ID: "legacy", Title: "Old", ImageURL: "https://cdn/a.jpg"}

	item := NormalizeItem(raw)

	if len(item.Images) != 1 || item.Images[0] != "https://cdn/a.jpg" {
		t.Fatalf("expected images [https://cdn/a.jpg], got %v", item.Images)
	}
	if item.ImageURL != "https://cdn/a.jpg" {
		t.Errorf("expected image_url to stay, got %s", item.ImageURL)
	}
}

func TestNormalizeItem_KeepsImages(t *testing.T) {
	raw := PortfolioItem{ImageURL: "a", Images: []string{"a", "b"}}

	item := NormalizeItem(raw)

	if len(item.Images) != 2 || item.Images[1] != "b" {
		t.Errorf("expected images untouched, got %v", item.Images)
	}

	item.Images[0] = "changed"
	if raw.Images[0] != "a" {
		t.Error("NormalizeItem must not share the images slice with its input")
	}
}

func TestNormalizeItem_FillsImageURL(t *testing.T) {
	item := NormalizeItem(PortfolioItem{Images: []string{"x", "y"}})

	if item.ImageURL != "x" {
		t.Errorf("expected image_url x, got %s", item.ImageURL)
	}
}

func TestNormalizeItem_NoImages(t *testing.T) {
	item := NormalizeItem(PortfolioItem{ID: "empty"})

	if item.Images == nil || len(item.Images) != 0 {
		t.Errorf("expected empty non-nil images, got %#v", item.Images)
	}
}

func TestParseCategory(t *testing.T) {
	testCases := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{"Портрети", CategoryPortraits, false},
		{" Весілля ", CategoryWedding, false},
		{"Сім'я", CategoryFamily, false},
		{"Fashion", CategoryFashion, false},
		{"Корпоратив", CategoryCorporate, false},
		{"Landscapes", "", true},
		{"", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseCategory(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidItem) {
					t.Errorf("expected ErrInvalidItem, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestCategories_ReturnsCopy(t *testing.T) {
	c := Categories()
	c[0] = "mutated"

	if Categories()[0] != CategoryPortraits {
		t.Error("Categories must return a copy")
	}
}

func TestItemFields_Validate(t *testing.T) {
	valid := ItemFields{Title: "Sunset", Category: CategoryPortraits}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	blank := ItemFields{Title: "   ", Category: CategoryPortraits}
	if err := blank.Validate(); !errors.Is(err, ErrInvalidItem) {
		t.Errorf("expected ErrInvalidItem for blank title, got %v", err)
	}

	badCategory := ItemFields{Title: "Sunset", Category: "Nope"}
	if err := badCategory.Validate(); !errors.Is(err, ErrInvalidItem) {
		t.Errorf("expected ErrInvalidItem for unknown category, got %v", err)
	}
}

func TestItemPatch_Validate(t *testing.T) {
	empty := ""
	bad := Category("Nope")

	if err := (ItemPatch{}).Validate(); err != nil {
		t.Errorf("empty patch should be valid, got %v", err)
	}
	if err := (ItemPatch{Title: &empty}).Validate(); !errors.Is(err, ErrInvalidItem) {
		t.Errorf("expected ErrInvalidItem, got %v", err)
	}
	if err := (ItemPatch{Category: &bad}).Validate(); !errors.Is(err, ErrInvalidItem) {
		t.Errorf("expected ErrInvalidItem, got %v", err)
	}
}

func TestItemUpdate_Apply_FieldsOnly(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	item := PortfolioItem{
		ID:        "1",
		Title:     "Old",
		Category:  CategoryFashion,
		ImageURL:  "a",
		Images:    []string{"a", "b"},
		CreatedAt: created,
		UpdatedAt: created,
	}
	title := "New Title"
	now := created.Add(time.Hour)

	NewItemUpdate(ItemPatch{Title: &title}, now).Apply(&item)

	if item.Title != "New Title" {
		t.Errorf("expected title to change, got %s", item.Title)
	}
	if !item.UpdatedAt.Equal(now) {
		t.Errorf("expected updated_at %v, got %v", now, item.UpdatedAt)
	}
	if len(item.Images) != 2 || item.ImageURL != "a" || item.Category != CategoryFashion {
		t.Errorf("unexpected changes to untouched fields: %+v", item)
	}
	if !item.CreatedAt.Equal(created) {
		t.Error("created_at must never change")
	}
}

func TestItemUpdate_WithImages(t *testing.T) {
	item := PortfolioItem{ImageURL: "a", Images: []string{"a"}}
	images := []string{"b", "c"}

	update := NewItemUpdate(ItemPatch{}, time.Now()).WithImages(images)
	images[0] = "mutated"
	update.Apply(&item)

	if item.ImageURL != "b" || item.Images[0] != "b" {
		t.Errorf("expected cover b, got image_url=%s images=%v", item.ImageURL, item.Images)
	}
	if item.ImageURL != item.Images[0] {
		t.Error("image_url must equal images[0]")
	}
}

func TestPortfolioItem_HasImage(t *testing.T) {
	item := PortfolioItem{ImageURL: "legacy", Images: []string{"a", "b"}}

	if !item.HasImage("b") || item.HasImage("legacy") {
		t.Error("HasImage must only look at the images list")
	}
}
