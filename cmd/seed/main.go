package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/belanjaku/belanjaku-backend/config"
	"github.com/belanjaku/belanjaku-backend/internal/app/model"
	"github.com/belanjaku/belanjaku-backend/internal/app/repository"
	"github.com/belanjaku/belanjaku-backend/internal/db"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Imports a product catalog from an XLSX file. Expected columns:
// category | name | description | price | stock | image_url |
// discount_name | discount_percent | discount_days
// The discount columns are optional; when present a discount running from
// now until now+discount_days is attached to the product.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, err := readCatalogFromXLSX(filePath, categoryRepo)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d\n", len(products))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := productRepo.BulkCreate(products, batchSize); err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

func readCatalogFromXLSX(filePath string, categoryRepo repository.CategoryRepository) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var products []model.Product
	seenProducts := make(map[string]bool)
	categoryIDs := make(map[string]uint)
	skippedCount := 0
	now := time.Now()

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 5 {
			skippedCount++
			continue
		}

		categoryName := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		description := strings.TrimSpace(row[2])
		priceStr := strings.TrimSpace(row[3])
		stockStr := strings.TrimSpace(row[4])

		var imageURL string
		if len(row) > 5 {
			imageURL = strings.TrimSpace(row[5])
		}

		if categoryName == "" || name == "" {
			skippedCount++
			continue
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price <= 0 {
			skippedCount++
			continue
		}

		stock, err := strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			skippedCount++
			continue
		}

		// Duplicate check on category+name
		key := fmt.Sprintf("%s|%s", categoryName, name)
		if seenProducts[key] {
			skippedCount++
			continue
		}
		seenProducts[key] = true

		categoryID, err := resolveCategory(categoryRepo, categoryIDs, categoryName)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve category %q: %w", categoryName, err)
		}

		product := model.Product{
			Name:          name,
			Description:   description,
			Price:         price,
			StockQuantity: stock,
			CategoryID:    categoryID,
			ImageURL:      imageURL,
		}

		if discount, ok := parseDiscount(row, now); ok {
			product.Discounts = []model.Discount{discount}
		}

		products = append(products, product)

		if len(products)%500 == 0 {
			fmt.Printf("Processed %d products...\n", len(products))
		}
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid products: %d\n", len(products))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)
	fmt.Printf("  Categories used: %d\n", len(categoryIDs))

	return products, nil
}

// resolveCategory finds a category by name, creating it on first use.
func resolveCategory(categoryRepo repository.CategoryRepository, cache map[string]uint, name string) (uint, error) {
	if id, ok := cache[name]; ok {
		return id, nil
	}

	category, err := categoryRepo.FindByName(name)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
		category = &model.Category{Name: name}
		if err := categoryRepo.Create(category); err != nil {
			return 0, err
		}
	}

	cache[name] = category.ID
	return category.ID, nil
}

// parseDiscount reads the optional discount columns from a row.
func parseDiscount(row []string, now time.Time) (model.Discount, bool) {
	if len(row) < 9 {
		return model.Discount{}, false
	}

	name := strings.TrimSpace(row[6])
	percentStr := strings.TrimSpace(row[7])
	daysStr := strings.TrimSpace(row[8])

	if name == "" || percentStr == "" || daysStr == "" {
		return model.Discount{}, false
	}

	percent, err := strconv.ParseFloat(percentStr, 64)
	if err != nil || percent <= 0 || percent > 100 {
		return model.Discount{}, false
	}

	days, err := strconv.Atoi(daysStr)
	if err != nil || days <= 0 {
		return model.Discount{}, false
	}

	return model.Discount{
		Name:       name,
		Percentage: percent,
		StartDate:  now,
		EndDate:    now.AddDate(0, 0, days),
	}, true
}
