// Command seed loads the ingredient catalog from a CSV file and creates the
// standard tag set. Rows that already exist are skipped, so reruns are safe.
//
// The CSV has two columns and no header: name,measurement_unit.
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/database"
	"github.com/foodgram/backend/internal/models"
)

var defaultTags = []models.Tag{
	{Name: "breakfast", Color: "#E26C2D", Slug: "breakfast"},
	{Name: "dinner", Color: "#49B64E", Slug: "dinner"},
	{Name: "supper", Color: "#8775D2", Slug: "supper"},
}

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	csvPath := flag.String("ingredients", "data/ingredients.csv", "path to the ingredients CSV file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	created, err := seedIngredients(db, *csvPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *csvPath).Msg("failed to seed ingredients")
	}
	logger.Info().Int("created", created).Msg("ingredients seeded")

	for _, tag := range defaultTags {
		var existing models.Tag
		err := db.Where("slug = ?", tag.Slug).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Fatal().Err(err).Msg("failed to check tag")
		}
		if err := db.Create(&tag).Error; err != nil {
			logger.Fatal().Err(err).Str("slug", tag.Slug).Msg("failed to create tag")
		}
		logger.Info().Str("slug", tag.Slug).Msg("tag created")
	}
}

func seedIngredients(db *gorm.DB, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2

	created := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return created, err
		}

		ingredient := models.Ingredient{Name: record[0], MeasurementUnit: record[1]}
		var existing models.Ingredient
		err = db.Where("name = ? AND measurement_unit = ?", ingredient.Name, ingredient.MeasurementUnit).
			First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, err
		}
		if err := db.Create(&ingredient).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
