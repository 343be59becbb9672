package services

import (
	"context"
	"net/url"

	"abarto-backend/internal/domain"
	"abarto-backend/internal/query"
	"abarto-backend/internal/repositories"
	"abarto-backend/internal/utils"
)

// SearchGroup is one resource's slice of a cross-resource search. There is
// no combined total; each group carries its own matching count.
type SearchGroup struct {
	Resource string          `json:"resource"`
	Count    int64           `json:"count"`
	Records  []domain.Record `json:"records"`
}

// SearchService fans a substring query out over every registered resource.
type SearchService struct {
	Repos     []repositories.ResourceRepository
	RequestID string
}

func NewSearchService(repos []repositories.ResourceRepository) SearchService {
	return SearchService{Repos: repos}
}

// Global runs the fan-out sequentially per resource; the page/limit
// parameters apply within each group, not across groups.
func (s SearchService) Global(ctx context.Context, q string, values url.Values) ([]SearchGroup, error) {
	utils.LogEvent(s.RequestID, "search", "global", "q="+q)

	groups := []SearchGroup{}
	for _, repo := range s.Repos {
		crit := query.GlobalCriteria(q, repo.Res)
		if crit.Empty() {
			continue
		}
		p := query.ResolvePagination(values, repo.Res)
		records, total, err := repo.Search(ctx, crit, p)
		if err != nil {
			return nil, err
		}
		groups = append(groups, SearchGroup{
			Resource: repo.Res.Name,
			Count:    total,
			Records:  records,
		})
	}
	return groups, nil
}
