package fig

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	defaultRequestTimeout = 10 * time.Second
	cacheCleanupFactor    = 2
)

// HTTPClientConfig — параметры клиента внешнего реестра FIG.
type HTTPClientConfig struct {
	BaseURL  string
	CacheTTL time.Duration
}

// httpClient — read-through клиент реестра FIG поверх HTTP с TTL-кэшем.
// Повторные обращения к одному FIG ID в пределах TTL не ходят в сеть.
type httpClient struct {
	baseURL string
	client  *http.Client
	cache   *gocache.Cache
}

func NewHTTPClient(cfg HTTPClientConfig) (Registry, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("fig: base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("fig: invalid base URL: %w", err)
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &httpClient{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: defaultRequestTimeout},
		cache:   gocache.New(ttl, cacheCleanupFactor*ttl),
	}, nil
}

// athleteRecord — формат ответа реестра.
type athleteRecord struct {
	FigID     string `json:"figId"`
	FirstName string `json:"preferredFirstName"`
	LastName  string `json:"preferredLastName"`
	Gender    string `json:"gender"`
	Country   string `json:"country"`
	BirthDate string `json:"dateOfBirth"`
	Licensed  bool   `json:"licenseValid"`
}

func (c *httpClient) FindByFigID(ctx context.Context, figID string) (*GymnastView, error) {
	if cached, ok := c.cache.Get(figID); ok {
		view := cached.(GymnastView)
		return &view, nil
	}

	reqURL := fmt.Sprintf("%s/athletes?figId=%s", c.baseURL, url.QueryEscape(figID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fig: failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fig: registry request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fig: registry returned status %d", resp.StatusCode)
	}

	var records []athleteRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("fig: failed to decode registry response: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	view, err := records[0].toView()
	if err != nil {
		return nil, err
	}
	c.cache.Set(figID, *view, gocache.DefaultExpiration)
	return view, nil
}

func (r athleteRecord) toView() (*GymnastView, error) {
	birthDate, err := time.Parse("2006-01-02", r.BirthDate)
	if err != nil {
		return nil, fmt.Errorf("fig: invalid birth date %q for athlete %s: %w", r.BirthDate, r.FigID, err)
	}
	return &GymnastView{
		FigID:        r.FigID,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		FullName:     r.FirstName + " " + r.LastName,
		Gender:       r.Gender,
		Country:      r.Country,
		BirthDate:    birthDate,
		LicenseValid: r.Licensed,
		Local:        false,
	}, nil
}
