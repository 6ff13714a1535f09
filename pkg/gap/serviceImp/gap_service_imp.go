package serviceImp

import (
	"context"
	"math"
	"slices"
	"strings"

	"github.com/Uvais-khan078/village360/entities"
	"github.com/Uvais-khan078/village360/pkg/gap/service"
)

type source interface {
	ListVillages(ctx context.Context) ([]entities.Village, error)
	ListAmenitiesByVillage(ctx context.Context, villageID string) ([]entities.Amenity, error)
}

type gapSvc struct{ src source }

func New(src source) service.GapService { return &gapSvc{src} }

// Coverage is available/required as a percentage, one decimal. Nothing
// required counts as fully covered.
func Coverage(available, required int) float64 {
	if required <= 0 {
		return 100
	}
	return math.Round(float64(available)/float64(required)*1000) / 10
}

func SeverityOf(coverage float64) service.Severity {
	switch {
	case coverage >= 100:
		return service.SeverityGood
	case coverage >= 70:
		return service.SeverityModerate
	}
	return service.SeverityCritical
}

func NewAmenityGap(kind string, available, required int) service.AmenityGap {
	cov := Coverage(available, required)
	return service.AmenityGap{
		AmenityType: kind,
		Available:   available,
		Required:    required,
		Gap:         max(required-available, 0),
		Coverage:    cov,
		Severity:    SeverityOf(cov),
	}
}

// Analyze only lists villages that have at least one matching amenity row.
func (s *gapSvc) Analyze(ctx context.Context, f service.Filter) (*service.Analysis, error) {
	villages, err := s.src.ListVillages(ctx)
	if err != nil {
		return nil, err
	}
	out := &service.Analysis{Villages: []service.VillageGap{}, Summary: []service.AmenityGap{}}
	totals := map[string][2]int{}

	for _, v := range villages {
		if f.District != "" && !strings.EqualFold(v.District, f.District) {
			continue
		}
		rows, err := s.src.ListAmenitiesByVillage(ctx, v.ID)
		if err != nil {
			return nil, err
		}
		vg := service.VillageGap{VillageID: v.ID, Name: v.Name, District: v.District, Block: v.Block}
		var avail, req int
		for _, a := range rows {
			if f.AmenityType != "" && a.AmenityType != f.AmenityType {
				continue
			}
			vg.Amenities = append(vg.Amenities, NewAmenityGap(a.AmenityType, a.Available, a.Required))
			avail, req = avail+a.Available, req+a.Required
			t := totals[a.AmenityType]
			totals[a.AmenityType] = [2]int{t[0] + a.Available, t[1] + a.Required}
		}
		if len(vg.Amenities) == 0 {
			continue
		}
		vg.Coverage = Coverage(avail, req)
		vg.Severity = worst(vg.Amenities)
		if vg.Severity == service.SeverityCritical {
			out.CriticalVillages++
		}
		out.Villages = append(out.Villages, vg)
	}

	for _, kind := range summaryOrder(totals) {
		t := totals[kind]
		out.Summary = append(out.Summary, NewAmenityGap(kind, t[0], t[1]))
	}
	return out, nil
}

func worst(gaps []service.AmenityGap) service.Severity {
	rank := map[service.Severity]int{service.SeverityGood: 0, service.SeverityModerate: 1, service.SeverityCritical: 2}
	sev := service.SeverityGood
	for _, g := range gaps {
		if rank[g.Severity] > rank[sev] {
			sev = g.Severity
		}
	}
	return sev
}

// summaryOrder puts the known amenity types first, then any others alphabetically.
func summaryOrder(totals map[string][2]int) []string {
	var known, extra []string
	for _, k := range entities.AmenityTypes {
		if _, ok := totals[k]; ok {
			known = append(known, k)
		}
	}
	for k := range totals {
		if !slices.Contains(entities.AmenityTypes, k) {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	return append(known, extra...)
}
