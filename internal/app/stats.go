package app

import (
	"context"

	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/model"
)

// Companies returns all known insurance companies.
func (s *Service) Companies(ctx context.Context) []model.Company {
	return s.store.ListCompanies(ctx)
}

// Company returns one company together with its employees.
func (s *Service) Company(ctx context.Context, id int) (model.Company, []model.Employee, error) {
	c, err := s.store.GetCompany(ctx, id)
	if err != nil {
		return model.Company{}, nil, err
	}
	return c, s.store.ListEmployees(ctx, id), nil
}

// Plans returns all known benefit plans.
func (s *Service) Plans(ctx context.Context) []model.Plan {
	return s.store.ListPlans(ctx)
}

// Stats is the operational snapshot served to administrators: store
// sizes plus the gate settings currently in force.
type Stats struct {
	TotalEmployees    int   `json:"totalEmployees"`
	TotalCompanies    int   `json:"totalCompanies"`
	TotalPlans        int   `json:"totalPlans"`
	DisableOnOmission bool  `json:"disableOnOmission"`
	MaxFileBytes      int64 `json:"maxFileBytes"`
	UploadQueueSize   int   `json:"uploadQueueSize"`
}

// GetStats returns the current operational snapshot.
func (s *Service) GetStats() Stats {
	ctx := context.Background()
	return Stats{
		TotalEmployees:    s.store.CountEmployees(ctx),
		TotalCompanies:    len(s.store.ListCompanies(ctx)),
		TotalPlans:        len(s.store.ListPlans(ctx)),
		DisableOnOmission: s.disableOnOmission,
		MaxFileBytes:      s.maxFileBytes,
		UploadQueueSize:   cap(s.uploadSlots),
	}
}
