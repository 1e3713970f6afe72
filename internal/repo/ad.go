package repo

import (
	"context"
	"database/sql"

	"github.com/adboard/adboard/internal/models"
)

// ==========================
// AdRepo
// ==========================
// Ads are produced by an external importer; this service only reads them.
type AdRepo struct {
	DB *sql.DB
}

func NewAdRepo(db *sql.DB) *AdRepo {
	return &AdRepo{DB: db}
}

// ==========================
// Get By External Ad ID
// ==========================
func (r *AdRepo) GetByAdID(ctx context.Context, adID int) (*models.Ad, error) {
	query := `
		SELECT id, ad_id, title, author, views, position
		FROM ads
		WHERE ad_id = $1
	`

	ad := &models.Ad{}

	err := r.DB.QueryRowContext(ctx, query, adID).
		Scan(&ad.ID, &ad.AdID, &ad.Title, &ad.Author, &ad.Views, &ad.Position)

	if err != nil {
		return nil, err
	}

	return ad, nil
}
