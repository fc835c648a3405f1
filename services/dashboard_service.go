package services

import (
	"context"

	"github.com/Dosada05/registration-system/repositories"
)

// CountryDashboard — сводная статистика страны по всем видам заявок.
type CountryDashboard struct {
	Country        string                                 `json:"country"`
	Choreographies []repositories.CategoryCount           `json:"choreographies"`
	Coaches        []repositories.TournamentCount         `json:"coaches"`
	Judges         []repositories.TournamentCategoryCount `json:"judges"`
}

// DashboardService собирает статистику страны: программы по категориям,
// тренеры по турнирам, судьи по турнирам и судейским категориям.
type DashboardService struct {
	choreoRepo repositories.ChoreographyRepository
	coachRepo  repositories.CoachRepository
	judgeRepo  repositories.JudgeRepository
}

func NewDashboardService(
	choreoRepo repositories.ChoreographyRepository,
	coachRepo repositories.CoachRepository,
	judgeRepo repositories.JudgeRepository,
) *DashboardService {
	return &DashboardService{
		choreoRepo: choreoRepo,
		coachRepo:  coachRepo,
		judgeRepo:  judgeRepo,
	}
}

func (s *DashboardService) ChoreographyCountryStats(ctx context.Context, country string) ([]repositories.CategoryCount, error) {
	return s.choreoRepo.CountryStatsByCategory(ctx, country)
}

func (s *DashboardService) CoachCountryStats(ctx context.Context, country string) ([]repositories.TournamentCount, error) {
	return s.coachRepo.CountryStatsByTournament(ctx, country)
}

func (s *DashboardService) JudgeCountryStats(ctx context.Context, country string) ([]repositories.TournamentCategoryCount, error) {
	return s.judgeRepo.CountryStatsByTournamentAndCategory(ctx, country)
}

func (s *DashboardService) CountryDashboard(ctx context.Context, country string) (*CountryDashboard, error) {
	choreographies, err := s.choreoRepo.CountryStatsByCategory(ctx, country)
	if err != nil {
		return nil, err
	}
	coaches, err := s.coachRepo.CountryStatsByTournament(ctx, country)
	if err != nil {
		return nil, err
	}
	judges, err := s.judgeRepo.CountryStatsByTournamentAndCategory(ctx, country)
	if err != nil {
		return nil, err
	}
	return &CountryDashboard{
		Country:        country,
		Choreographies: choreographies,
		Coaches:        coaches,
		Judges:         judges,
	}, nil
}
