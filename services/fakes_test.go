package services

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Dosada05/registration-system/fig"
	"github.com/Dosada05/registration-system/models"
	"github.com/Dosada05/registration-system/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTxRunner выполняет функцию без реальной транзакции.
type fakeTxRunner struct{}

func (fakeTxRunner) RunInTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	return fn(nil)
}

type fakeTournamentRepo struct {
	tournaments map[string]*models.Tournament
}

func newFakeTournamentRepo(tournaments ...*models.Tournament) *fakeTournamentRepo {
	repo := &fakeTournamentRepo{tournaments: make(map[string]*models.Tournament)}
	for _, t := range tournaments {
		repo.tournaments[t.ID] = t
	}
	return repo
}

func (r *fakeTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	for _, existing := range r.tournaments {
		if existing.Name == t.Name {
			return repositories.ErrTournamentNameConflict
		}
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	r.tournaments[t.ID] = t
	return nil
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTournamentRepo) List(ctx context.Context, activeOnly bool) ([]models.Tournament, error) {
	var out []models.Tournament
	for _, t := range r.tournaments {
		if activeOnly && !t.IsActive {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTournamentRepo) Update(ctx context.Context, t *models.Tournament) error {
	if _, ok := r.tournaments[t.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	r.tournaments[t.ID] = t
	return nil
}

func (r *fakeTournamentRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}

type fakeGymnastRepo struct {
	byFigID map[string]*models.Gymnast
}

func newFakeGymnastRepo() *fakeGymnastRepo {
	return &fakeGymnastRepo{byFigID: make(map[string]*models.Gymnast)}
}

func (r *fakeGymnastRepo) Create(ctx context.Context, g *models.Gymnast) error {
	if _, ok := r.byFigID[g.FigID]; ok {
		return repositories.ErrGymnastFigIDConflict
	}
	g.ID = uuid.NewString()
	copied := *g
	r.byFigID[g.FigID] = &copied
	return nil
}

func (r *fakeGymnastRepo) UpsertByFigID(ctx context.Context, exec repositories.SQLExecutor, g *models.Gymnast) error {
	if existing, ok := r.byFigID[g.FigID]; ok {
		g.ID = existing.ID
	} else {
		g.ID = uuid.NewString()
	}
	copied := *g
	r.byFigID[g.FigID] = &copied
	return nil
}

func (r *fakeGymnastRepo) FindByFigID(ctx context.Context, figID string) (*models.Gymnast, error) {
	g, ok := r.byFigID[figID]
	if !ok {
		return nil, repositories.ErrGymnastNotFound
	}
	copied := *g
	return &copied, nil
}

func (r *fakeGymnastRepo) FindByID(ctx context.Context, id string) (*models.Gymnast, error) {
	for _, g := range r.byFigID {
		if g.ID == id {
			copied := *g
			return &copied, nil
		}
	}
	return nil, repositories.ErrGymnastNotFound
}

type fakeChoreographyRepo struct {
	choreographies map[string]*models.Choreography
	attachments    map[string][]string
	gymnastsByID   map[string]models.Gymnast
}

func newFakeChoreographyRepo() *fakeChoreographyRepo {
	return &fakeChoreographyRepo{
		choreographies: make(map[string]*models.Choreography),
		attachments:    make(map[string][]string),
		gymnastsByID:   make(map[string]models.Gymnast),
	}
}

// registerGymnast делает гимнаста доступным для GetWithRelations.
func (r *fakeChoreographyRepo) registerGymnast(g models.Gymnast) {
	r.gymnastsByID[g.ID] = g
}

func (r *fakeChoreographyRepo) Create(ctx context.Context, exec repositories.SQLExecutor, c *models.Choreography) error {
	c.ID = uuid.NewString()
	c.Status = models.StatusPending
	copied := *c
	copied.Gymnasts = nil
	copied.Tournament = nil
	r.choreographies[c.ID] = &copied
	return nil
}

func (r *fakeChoreographyRepo) AttachGymnasts(ctx context.Context, exec repositories.SQLExecutor, choreographyID string, gymnastIDs []string) error {
	r.attachments[choreographyID] = append([]string(nil), gymnastIDs...)
	return nil
}

func (r *fakeChoreographyRepo) ReplaceGymnasts(ctx context.Context, exec repositories.SQLExecutor, choreographyID string, gymnastIDs []string) error {
	r.attachments[choreographyID] = append([]string(nil), gymnastIDs...)
	return nil
}

func (r *fakeChoreographyRepo) Update(ctx context.Context, exec repositories.SQLExecutor, c *models.Choreography) error {
	if _, ok := r.choreographies[c.ID]; !ok {
		return repositories.ErrChoreographyNotFound
	}
	copied := *c
	copied.Gymnasts = nil
	copied.Tournament = nil
	r.choreographies[c.ID] = &copied
	return nil
}

func (r *fakeChoreographyRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.choreographies[id]; !ok {
		return repositories.ErrChoreographyNotFound
	}
	delete(r.choreographies, id)
	delete(r.attachments, id)
	return nil
}

func (r *fakeChoreographyRepo) GetByID(ctx context.Context, id string) (*models.Choreography, error) {
	c, ok := r.choreographies[id]
	if !ok {
		return nil, repositories.ErrChoreographyNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeChoreographyRepo) GetWithRelations(ctx context.Context, id string) (*models.Choreography, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, gymnastID := range r.attachments[id] {
		if g, ok := r.gymnastsByID[gymnastID]; ok {
			c.Gymnasts = append(c.Gymnasts, g)
		}
	}
	return c, nil
}

func (r *fakeChoreographyRepo) List(ctx context.Context, filter repositories.ListRegistrationsFilter) ([]models.Choreography, error) {
	var out []models.Choreography
	for _, c := range r.choreographies {
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		if filter.Country != nil && !strings.EqualFold(c.Country, *filter.Country) {
			continue
		}
		if filter.TournamentID != nil && c.TournamentID != *filter.TournamentID {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeChoreographyRepo) CountByCountryCategoryAndTournament(ctx context.Context, country string, category models.ChoreographyCategory, tournamentID string) (int, error) {
	count := 0
	for _, c := range r.choreographies {
		if strings.EqualFold(c.Country, country) && c.Category == category && c.TournamentID == tournamentID {
			count++
		}
	}
	return count, nil
}

func (r *fakeChoreographyRepo) UpdateStatusByIDs(ctx context.Context, ids []string, status models.RegistrationStatus, notes *string) (int64, error) {
	var affected int64
	for _, id := range ids {
		c, ok := r.choreographies[id]
		if !ok {
			continue
		}
		c.Status = status
		if notes != nil {
			c.Notes = notes
		}
		affected++
	}
	return affected, nil
}

func (r *fakeChoreographyRepo) CountryStatsByCategory(ctx context.Context, country string) ([]repositories.CategoryCount, error) {
	counts := make(map[models.ChoreographyCategory]int)
	for _, c := range r.choreographies {
		if strings.EqualFold(c.Country, country) {
			counts[c.Category]++
		}
	}
	var out []repositories.CategoryCount
	for category, count := range counts {
		out = append(out, repositories.CategoryCount{Category: category, Count: count})
	}
	return out, nil
}

type fakeCoachRepo struct {
	coaches map[string]*models.Coach
}

func newFakeCoachRepo() *fakeCoachRepo {
	return &fakeCoachRepo{coaches: make(map[string]*models.Coach)}
}

func (r *fakeCoachRepo) Create(ctx context.Context, c *models.Coach) error {
	for _, existing := range r.coaches {
		if existing.FigID == c.FigID && existing.TournamentID == c.TournamentID {
			return repositories.ErrCoachConflict
		}
	}
	c.ID = uuid.NewString()
	c.Status = models.StatusPending
	copied := *c
	r.coaches[c.ID] = &copied
	return nil
}

func (r *fakeCoachRepo) Update(ctx context.Context, c *models.Coach) error {
	if _, ok := r.coaches[c.ID]; !ok {
		return repositories.ErrCoachNotFound
	}
	copied := *c
	r.coaches[c.ID] = &copied
	return nil
}

func (r *fakeCoachRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.coaches[id]; !ok {
		return repositories.ErrCoachNotFound
	}
	delete(r.coaches, id)
	return nil
}

func (r *fakeCoachRepo) FindByID(ctx context.Context, id string) (*models.Coach, error) {
	c, ok := r.coaches[id]
	if !ok {
		return nil, repositories.ErrCoachNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCoachRepo) FindByFigAndTournament(ctx context.Context, figID, tournamentID string) (*models.Coach, error) {
	for _, c := range r.coaches {
		if c.FigID == figID && c.TournamentID == tournamentID {
			copied := *c
			return &copied, nil
		}
	}
	return nil, repositories.ErrCoachNotFound
}

func (r *fakeCoachRepo) List(ctx context.Context, filter repositories.ListRegistrationsFilter) ([]models.Coach, error) {
	var out []models.Coach
	for _, c := range r.coaches {
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		if filter.Country != nil && !strings.EqualFold(c.Country, *filter.Country) {
			continue
		}
		if filter.TournamentID != nil && c.TournamentID != *filter.TournamentID {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCoachRepo) UpdateStatusByIDs(ctx context.Context, ids []string, status models.RegistrationStatus, notes *string) (int64, error) {
	var affected int64
	for _, id := range ids {
		c, ok := r.coaches[id]
		if !ok {
			continue
		}
		c.Status = status
		if notes != nil {
			c.Notes = notes
		}
		affected++
	}
	return affected, nil
}

func (r *fakeCoachRepo) CountryStatsByTournament(ctx context.Context, country string) ([]repositories.TournamentCount, error) {
	counts := make(map[string]int)
	for _, c := range r.coaches {
		if strings.EqualFold(c.Country, country) {
			counts[c.TournamentID]++
		}
	}
	var out []repositories.TournamentCount
	for tournament, count := range counts {
		out = append(out, repositories.TournamentCount{TournamentName: tournament, Count: count})
	}
	return out, nil
}

type fakeJudgeRepo struct {
	judges map[string]*models.Judge
}

func newFakeJudgeRepo() *fakeJudgeRepo {
	return &fakeJudgeRepo{judges: make(map[string]*models.Judge)}
}

func (r *fakeJudgeRepo) Create(ctx context.Context, j *models.Judge) error {
	for _, existing := range r.judges {
		if existing.FigID == j.FigID && existing.TournamentID == j.TournamentID {
			return repositories.ErrJudgeConflict
		}
	}
	j.ID = uuid.NewString()
	j.Status = models.StatusPending
	copied := *j
	r.judges[j.ID] = &copied
	return nil
}

func (r *fakeJudgeRepo) Update(ctx context.Context, j *models.Judge) error {
	if _, ok := r.judges[j.ID]; !ok {
		return repositories.ErrJudgeNotFound
	}
	copied := *j
	r.judges[j.ID] = &copied
	return nil
}

func (r *fakeJudgeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.judges[id]; !ok {
		return repositories.ErrJudgeNotFound
	}
	delete(r.judges, id)
	return nil
}

func (r *fakeJudgeRepo) FindByID(ctx context.Context, id string) (*models.Judge, error) {
	j, ok := r.judges[id]
	if !ok {
		return nil, repositories.ErrJudgeNotFound
	}
	copied := *j
	return &copied, nil
}

func (r *fakeJudgeRepo) FindByFigAndTournament(ctx context.Context, figID, tournamentID string) (*models.Judge, error) {
	for _, j := range r.judges {
		if j.FigID == figID && j.TournamentID == tournamentID {
			copied := *j
			return &copied, nil
		}
	}
	return nil, repositories.ErrJudgeNotFound
}

func (r *fakeJudgeRepo) List(ctx context.Context, filter repositories.ListRegistrationsFilter) ([]models.Judge, error) {
	var out []models.Judge
	for _, j := range r.judges {
		if filter.Status != nil && j.Status != *filter.Status {
			continue
		}
		if filter.Country != nil && !strings.EqualFold(j.Country, *filter.Country) {
			continue
		}
		if filter.TournamentID != nil && j.TournamentID != *filter.TournamentID {
			continue
		}
		out = append(out, *j)
	}
	return out, nil
}

func (r *fakeJudgeRepo) UpdateStatusByIDs(ctx context.Context, ids []string, status models.RegistrationStatus, notes *string) (int64, error) {
	var affected int64
	for _, id := range ids {
		j, ok := r.judges[id]
		if !ok {
			continue
		}
		j.Status = status
		if notes != nil {
			j.Notes = notes
		}
		affected++
	}
	return affected, nil
}

func (r *fakeJudgeRepo) CountryStatsByTournamentAndCategory(ctx context.Context, country string) ([]repositories.TournamentCategoryCount, error) {
	type key struct {
		tournament string
		category   string
	}
	counts := make(map[key]int)
	for _, j := range r.judges {
		if strings.EqualFold(j.Country, country) {
			counts[key{j.TournamentID, j.CategoryDescription}]++
		}
	}
	var out []repositories.TournamentCategoryCount
	for k, count := range counts {
		out = append(out, repositories.TournamentCategoryCount{
			TournamentName:      k.tournament,
			CategoryDescription: k.category,
			Count:               count,
		})
	}
	return out, nil
}

// fakeResolver отдаёт заранее подготовленные представления гимнастов.
type fakeResolver struct {
	views map[string]*fig.GymnastView
	err   error
}

func newFakeResolver(views ...*fig.GymnastView) *fakeResolver {
	r := &fakeResolver{views: make(map[string]*fig.GymnastView)}
	for _, v := range views {
		r.views[v.FigID] = v
	}
	return r
}

func (r *fakeResolver) FindByFigID(ctx context.Context, figID string) (*fig.GymnastView, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.views[figID], nil
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []StatusEvent
}

func (b *fakeBroadcaster) BroadcastStatusEvent(event StatusEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *fakeBroadcaster) Events() []StatusEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]StatusEvent(nil), b.events...)
}
