package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eivindmo/vinlager/internal/model"
)

const wineColumns = `id, user_id, name, producer, vintage, wine_type, country, region,
	grape_variety, quantity, location, supplier_name, supplier_url, supplier_sku,
	purchase_price, purchase_date, estimated_value, alcohol_percentage,
	bottle_size, notes, rating, label_mime, created_at`

// CreateWine inserts a wine record owned by userID. The owner and
// creation timestamp are stamped server-side; any user_id on the input
// record is ignored.
func CreateWine(ctx context.Context, db *sql.DB, userID int64, w *model.Wine) (*model.Wine, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO wines (user_id, name, producer, vintage, wine_type, country, region,
		     grape_variety, quantity, location, supplier_name, supplier_url, supplier_sku,
		     purchase_price, purchase_date, estimated_value, alcohol_percentage,
		     bottle_size, notes, rating)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, w.Name, nullString(w.Producer), w.Vintage, w.WineType,
		nullString(w.Country), nullString(w.Region), nullString(w.GrapeVariety),
		w.Quantity, nullString(w.Location), nullString(w.SupplierName),
		nullString(w.SupplierURL), nullString(w.SupplierSKU),
		w.PurchasePrice, nullString(w.PurchaseDate), w.EstimatedValue,
		w.AlcoholPercentage, w.BottleSize, nullString(w.Notes), w.Rating,
	)
	if err != nil {
		return nil, fmt.Errorf("creating wine: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting wine id: %w", err)
	}

	return GetWine(ctx, db, userID, id)
}

// GetWine returns one of userID's wines by ID, or nil if no such record
// belongs to the user.
func GetWine(ctx context.Context, db *sql.DB, userID, id int64) (*model.Wine, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+wineColumns+` FROM wines WHERE id = ? AND user_id = ?`, id, userID,
	)
	w, err := scanWine(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting wine: %w", err)
	}
	return w, nil
}

// ListWines returns all of userID's wines ordered by creation time
// descending, optionally filtered by wine type. Filtering happens in
// the query, not in the page layer.
func ListWines(ctx context.Context, db *sql.DB, userID int64, wineType string) ([]model.Wine, error) {
	var rows *sql.Rows
	var err error

	if wineType != "" {
		rows, err = db.QueryContext(ctx,
			`SELECT `+wineColumns+` FROM wines
			 WHERE user_id = ? AND wine_type = ? ORDER BY created_at DESC, id DESC`,
			userID, wineType,
		)
	} else {
		rows, err = db.QueryContext(ctx,
			`SELECT `+wineColumns+` FROM wines
			 WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
			userID,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("listing wines: %w", err)
	}
	defer rows.Close()

	var wines []model.Wine
	for rows.Next() {
		w, err := scanWine(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning wine: %w", err)
		}
		wines = append(wines, *w)
	}
	return wines, rows.Err()
}

// DeleteWine removes one of userID's wines. The delete is irreversible.
// Returns whether a record was actually removed.
func DeleteWine(ctx context.Context, db *sql.DB, userID, id int64) (bool, error) {
	result, err := db.ExecContext(ctx,
		`DELETE FROM wines WHERE id = ? AND user_id = ?`, id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("deleting wine: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting wine: %w", err)
	}
	return n > 0, nil
}

// SetWineLabel stores a label photo for one of userID's wines.
func SetWineLabel(ctx context.Context, db *sql.DB, userID, id int64, image []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE wines SET label_image = ?, label_mime = ? WHERE id = ? AND user_id = ?`,
		image, mime, id, userID,
	)
	if err != nil {
		return fmt.Errorf("setting wine label: %w", err)
	}
	return nil
}

// GetWineLabel returns the label photo and MIME type for one of
// userID's wines, or nil data if no photo is stored.
func GetWineLabel(ctx context.Context, db *sql.DB, userID, id int64) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT label_image, label_mime FROM wines WHERE id = ? AND user_id = ?`, id, userID,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting wine label: %w", err)
	}
	return image, mime.String, nil
}

// CollectionStats summarises a user's cellar for the dashboard.
type CollectionStats struct {
	Wines   int            `json:"wines"`
	Bottles int            `json:"bottles"`
	ByType  map[string]int `json:"by_type"`
}

// GetCollectionStats returns record and bottle counts for a user,
// broken down by wine type.
func GetCollectionStats(ctx context.Context, db *sql.DB, userID int64) (*CollectionStats, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT wine_type, COUNT(*), COALESCE(SUM(quantity), 0)
		 FROM wines WHERE user_id = ? GROUP BY wine_type`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("getting collection stats: %w", err)
	}
	defer rows.Close()

	stats := &CollectionStats{ByType: make(map[string]int)}
	for rows.Next() {
		var wineType string
		var count, bottles int
		if err := rows.Scan(&wineType, &count, &bottles); err != nil {
			return nil, fmt.Errorf("scanning collection stats: %w", err)
		}
		stats.Wines += count
		stats.Bottles += bottles
		stats.ByType[wineType] = count
	}
	return stats, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanWine(s scanner) (*model.Wine, error) {
	w := &model.Wine{}
	var producer, country, region, grapeVariety, location sql.NullString
	var supplierName, supplierURL, supplierSKU sql.NullString
	var purchaseDate, notes, labelMime sql.NullString

	err := s.Scan(&w.ID, &w.UserID, &w.Name, &producer, &w.Vintage, &w.WineType,
		&country, &region, &grapeVariety, &w.Quantity, &location,
		&supplierName, &supplierURL, &supplierSKU,
		&w.PurchasePrice, &purchaseDate, &w.EstimatedValue, &w.AlcoholPercentage,
		&w.BottleSize, &notes, &w.Rating, &labelMime, &w.CreatedAt)
	if err != nil {
		return nil, err
	}

	w.Producer = producer.String
	w.Country = country.String
	w.Region = region.String
	w.GrapeVariety = grapeVariety.String
	w.Location = location.String
	w.SupplierName = supplierName.String
	w.SupplierURL = supplierURL.String
	w.SupplierSKU = supplierSKU.String
	w.PurchaseDate = purchaseDate.String
	w.Notes = notes.String
	w.LabelMime = labelMime.String
	return w, nil
}

// nullString maps the empty string to NULL so optional text fields are
// stored as absent rather than "".
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
