package assistant

import (
	"context"

	"github.com/salesai/backend/internal/catalog"
	"github.com/salesai/backend/internal/domain"
)

// PassthroughEnricher returns the data unchanged. It is the default enricher.
type PassthroughEnricher struct{}

// Enrich returns data as is
func (PassthroughEnricher) Enrich(ctx context.Context, data domain.CustomerFormData) (domain.CustomerFormData, error) {
	return data, nil
}

// CatalogEnricher fills empty fields from the catalog entry whose name or a
// keyword equals the company name
type CatalogEnricher struct {
	Catalog *catalog.Catalog
}

// Enrich returns only the fields it could fill; the caller merges them
func (e CatalogEnricher) Enrich(ctx context.Context, data domain.CustomerFormData) (domain.CustomerFormData, error) {
	if err := ctx.Err(); err != nil {
		return domain.CustomerFormData{}, err
	}

	profile, ok := e.Catalog.CompanyByName(data.CompanyName)
	if !ok {
		return domain.CustomerFormData{}, nil
	}

	var filled domain.CustomerFormData
	if data.Website == "" {
		filled.Website = profile.Website
	}
	if data.CompanyID == "" {
		filled.CompanyID = profile.CompanyID
	}
	if data.Industry == "" {
		filled.Industry = profile.Industry
	}
	if data.RawData == "" {
		filled.RawData = profile.Description
	}
	return filled, nil
}
