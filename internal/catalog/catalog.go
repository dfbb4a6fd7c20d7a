// Package catalog loads the perfume catalog (brands, accords and perfumes)
// from a JSON export into the database.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"perfumism/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Catalog is the JSON layout of an export file.
type Catalog struct {
	Brands   []string  `json:"brands"`
	Accords  []Accord  `json:"accords"`
	Perfumes []Perfume `json:"perfumes"`
}

type Accord struct {
	KoreanName  string `json:"korean_name"`
	EnglishName string `json:"english_name"`
}

type Perfume struct {
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	ImageURL    *string  `json:"image_url"`
	LaunchYear  *int     `json:"launch_year"`
	TopNotes    *string  `json:"top_notes"`
	MiddleNotes *string  `json:"middle_notes"`
	BaseNotes   *string  `json:"base_notes"`
	Longevity   *string  `json:"longevity"`
	Sillage     *string  `json:"sillage"`
	Accords     []string `json:"accords"` // english names
}

// Summary counts what an import touched.
type Summary struct {
	Brands   int
	Accords  int
	Perfumes int
	Skipped  int
}

// Decode reads and validates a catalog export.
func Decode(r io.Reader) (*Catalog, error) {
	var c Catalog
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	for i, a := range c.Accords {
		if strings.TrimSpace(a.EnglishName) == "" || strings.TrimSpace(a.KoreanName) == "" {
			return fmt.Errorf("accord %d: both names are required", i)
		}
	}
	for i, p := range c.Perfumes {
		if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Brand) == "" {
			return fmt.Errorf("perfume %d: name and brand are required", i)
		}
	}
	return nil
}

// brandNames returns every brand named by the catalog, including brands only
// referenced from perfumes, without duplicates.
func (c *Catalog) brandNames() []string {
	seen := make(map[string]struct{})
	var names []string
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	for _, b := range c.Brands {
		add(b)
	}
	for _, p := range c.Perfumes {
		add(p.Brand)
	}
	return names
}

// Import upserts the catalog in one transaction. Brands are keyed by name,
// accords by english name and perfumes by brand and name, so re-running an
// export updates rows in place.
func Import(ctx context.Context, db *gorm.DB, c *Catalog, logger *slog.Logger) (Summary, error) {
	var summary Summary

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		brandIDs, err := importBrands(tx, c.brandNames())
		if err != nil {
			return err
		}
		summary.Brands = len(brandIDs)

		accords, err := importAccords(tx, c.Accords)
		if err != nil {
			return err
		}
		summary.Accords = len(accords)

		for _, p := range c.Perfumes {
			brandID, linked, err := resolve(p, brandIDs, accords)
			if err != nil {
				logger.Warn("skipping perfume", "name", p.Name, "brand", p.Brand, "error", err)
				summary.Skipped++
				continue
			}
			if err := importPerfume(tx, p, brandID, linked); err != nil {
				return err
			}
			summary.Perfumes++
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}
	return summary, nil
}

func importBrands(tx *gorm.DB, names []string) (map[string]int64, error) {
	ids := make(map[string]int64, len(names))
	for _, name := range names {
		brand := models.Brand{Name: name}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
		}).Create(&brand).Error
		if err != nil {
			return nil, fmt.Errorf("failed to upsert brand %q: %w", name, err)
		}
		ids[name] = brand.ID
	}
	return ids, nil
}

func importAccords(tx *gorm.DB, accords []Accord) (map[string]models.Accord, error) {
	byName := make(map[string]models.Accord, len(accords))
	for _, a := range accords {
		accord := models.Accord{
			KoreanName:  strings.TrimSpace(a.KoreanName),
			EnglishName: strings.TrimSpace(a.EnglishName),
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "english_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"korean_name", "updated_at"}),
		}).Create(&accord).Error
		if err != nil {
			return nil, fmt.Errorf("failed to upsert accord %q: %w", a.EnglishName, err)
		}
		byName[strings.ToLower(accord.EnglishName)] = accord
	}
	return byName, nil
}

// resolve maps the perfume's brand and accord names to stored rows
func resolve(p Perfume, brandIDs map[string]int64, accords map[string]models.Accord) (int64, []models.Accord, error) {
	brandID, ok := brandIDs[strings.TrimSpace(p.Brand)]
	if !ok {
		return 0, nil, fmt.Errorf("unknown brand %q", p.Brand)
	}

	linked := make([]models.Accord, 0, len(p.Accords))
	for _, name := range p.Accords {
		accord, ok := accords[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, nil, fmt.Errorf("unknown accord %q", name)
		}
		linked = append(linked, accord)
	}
	return brandID, linked, nil
}

func importPerfume(tx *gorm.DB, p Perfume, brandID int64, linked []models.Accord) error {
	perfume := models.Perfume{}
	err := tx.Where(models.Perfume{Name: strings.TrimSpace(p.Name), BrandID: brandID}).
		Assign(models.Perfume{
			ImageURL:    p.ImageURL,
			LaunchYear:  p.LaunchYear,
			TopNotes:    p.TopNotes,
			MiddleNotes: p.MiddleNotes,
			BaseNotes:   p.BaseNotes,
			Longevity:   p.Longevity,
			Sillage:     p.Sillage,
		}).
		FirstOrCreate(&perfume).Error
	if err != nil {
		return fmt.Errorf("failed to upsert perfume %q: %w", p.Name, err)
	}

	if err := tx.Model(&perfume).Association("Accords").Replace(linked); err != nil {
		return fmt.Errorf("failed to link accords of %q: %w", p.Name, err)
	}
	return nil
}
