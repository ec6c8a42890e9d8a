package services

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"tripmate/internal/models/trip_models"
)

// AmapConfig holds the Amap (Gaode) REST credentials and endpoints. It is
// built once at startup and shared read-only by the geo and weather
// clients.
type AmapConfig struct {
	APIKey         string
	GeocodeURL     string
	WeatherURL     string
	PlaceSearchURL string
	Timeout        time.Duration

	// MunicipalityPrefixes are the adcode prefixes of province-level
	// direct-administered municipalities. Provider-specific; the defaults
	// cover Beijing/Tianjin/Shanghai/Chongqing.
	MunicipalityPrefixes []string
}

type GeoServiceInterface interface {
	// ResolveCanonical geocodes query with no locality filter and returns
	// every candidate verbatim. Empty on backend failure.
	ResolveCanonical(ctx context.Context, query string) []trip_models.GeocodeResult

	// ResolveLocation resolves a free-text place name to coordinates,
	// optionally scoped to an adcode, citycode or city name. Falls back
	// to POI keyword search when no geocode survives the scope filter.
	ResolveLocation(ctx context.Context, query, scope string) []trip_models.Coordinate
}

// --------- In-memory cache keyed by (query, scope) ---------

type geoCacheKey struct {
	Query string
	Scope string
}

type geoCacheEntry struct {
	Coords    []trip_models.Coordinate
	ExpiresAt time.Time
}

type GeoCache interface {
	Get(k geoCacheKey) ([]trip_models.Coordinate, bool)
	Set(k geoCacheKey, v []trip_models.Coordinate, ttl time.Duration)
}

type inMemoryGeoCache struct {
	mu    sync.RWMutex
	store map[geoCacheKey]geoCacheEntry
}

func NewInMemoryGeoCache() GeoCache {
	return &inMemoryGeoCache{store: make(map[geoCacheKey]geoCacheEntry)}
}

func (c *inMemoryGeoCache) Get(k geoCacheKey) ([]trip_models.Coordinate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	it, ok := c.store[k]
	if !ok || time.Now().After(it.ExpiresAt) {
		return nil, false
	}
	return it.Coords, true
}

func (c *inMemoryGeoCache) Set(k geoCacheKey, v []trip_models.Coordinate, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[k] = geoCacheEntry{Coords: v, ExpiresAt: time.Now().Add(ttl)}
}

// -------------- Amap geo client ---------------

type AmapGeoService struct {
	cfg      AmapConfig
	http     *http.Client
	cache    GeoCache
	cacheTTL time.Duration
}

func NewAmapGeoService(cfg AmapConfig, cache GeoCache) GeoServiceInterface {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &AmapGeoService{
		cfg:      cfg,
		http:     &http.Client{Timeout: timeout},
		cache:    cache,
		cacheTTL: 24 * time.Hour,
	}
}

func (s *AmapGeoService) ResolveCanonical(ctx context.Context, query string) []trip_models.GeocodeResult {
	return s.geocode(ctx, query, "")
}

func (s *AmapGeoService) ResolveLocation(ctx context.Context, query, scope string) []trip_models.Coordinate {
	key := geoCacheKey{Query: query, Scope: scope}
	if s.cache != nil {
		if coords, ok := s.cache.Get(key); ok {
			return coords
		}
	}

	candidates := s.geocode(ctx, query, scope)
	if len(candidates) == 0 {
		return nil
	}

	var coords []trip_models.Coordinate
	if scope == "" {
		for _, g := range candidates {
			coords = append(coords, g.Location)
		}
	} else {
		for _, g := range candidates {
			if s.scopeMatches(scope, g) {
				coords = append(coords, g.Location)
			}
		}
		if len(coords) == 0 {
			// Informal place names (scenic spots, restaurants) often have
			// no strict geocode under the scope but are indexed as POIs.
			log.Printf("No geocode for %q under scope %q, falling back to POI search", query, scope)
			coords = s.searchPOI(ctx, query, scope)
		}
	}

	if s.cache != nil && len(coords) > 0 {
		s.cache.Set(key, coords, s.cacheTTL)
	}
	return coords
}

// scopeMatches applies the administrative-code relationship rules:
// province-level municipality codes match by adcode/1000, full 6-digit
// codes by adcode/100, 3-4 digit codes against the candidate citycode,
// and anything non-numeric by substring of the formatted address.
func (s *AmapGeoService) scopeMatches(scope string, g trip_models.GeocodeResult) bool {
	if isDigits(scope) {
		switch {
		case len(scope) == 6 && s.isMunicipalityCode(scope):
			return sameCodeQuotient(scope, g.Adcode, 1000)
		case len(scope) == 6:
			return sameCodeQuotient(scope, g.Adcode, 100)
		case len(scope) == 3 || len(scope) == 4:
			return g.Citycode == scope
		}
	}
	return strings.Contains(g.FormattedAddress, scope)
}

func (s *AmapGeoService) isMunicipalityCode(code string) bool {
	for _, prefix := range s.cfg.MunicipalityPrefixes {
		if strings.HasPrefix(code, prefix) {
			return true
		}
	}
	return false
}

func isDigits(v string) bool {
	if v == "" {
		return false
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func sameCodeQuotient(a, b string, div int) bool {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)
	if errA != nil || errB != nil {
		return false
	}
	return ai/div == bi/div
}

func (s *AmapGeoService) geocode(ctx context.Context, address, city string) []trip_models.GeocodeResult {
	q := url.Values{}
	q.Set("address", address)
	q.Set("key", s.cfg.APIKey)
	if city != "" {
		q.Set("city", city)
	}

	var payload struct {
		Status   string `json:"status"`
		Info     string `json:"info"`
		Geocodes []struct {
			Adcode           string `json:"adcode"`
			Citycode         string `json:"citycode"`
			City             string `json:"city"`
			Province         string `json:"province"`
			FormattedAddress string `json:"formatted_address"`
			Location         string `json:"location"`
		} `json:"geocodes"`
	}
	if err := s.getJSON(ctx, s.cfg.GeocodeURL, q, &payload); err != nil {
		log.Printf("Request amap geocode api failed: %v", err)
		return nil
	}
	if payload.Status == "0" {
		log.Printf("Amap geocode api error: %s", payload.Info)
		return nil
	}

	var results []trip_models.GeocodeResult
	for _, g := range payload.Geocodes {
		results = append(results, trip_models.GeocodeResult{
			Adcode:           g.Adcode,
			Citycode:         g.Citycode,
			City:             g.City,
			Province:         g.Province,
			FormattedAddress: g.FormattedAddress,
			Location:         trip_models.Coordinate(g.Location),
		})
	}
	return results
}

func (s *AmapGeoService) searchPOI(ctx context.Context, keywords, city string) []trip_models.Coordinate {
	q := url.Values{}
	q.Set("keywords", keywords)
	q.Set("key", s.cfg.APIKey)
	q.Set("city", city)
	q.Set("citylimit", "true")

	var payload struct {
		Status string `json:"status"`
		Info   string `json:"info"`
		POIs   []struct {
			Location string `json:"location"`
		} `json:"pois"`
	}
	if err := s.getJSON(ctx, s.cfg.PlaceSearchURL, q, &payload); err != nil {
		log.Printf("Request amap place api failed: %v", err)
		return nil
	}
	if payload.Status == "0" {
		log.Printf("Amap place api error: %s", payload.Info)
		return nil
	}

	var coords []trip_models.Coordinate
	for _, p := range payload.POIs {
		if p.Location != "" {
			coords = append(coords, trip_models.Coordinate(p.Location))
		}
	}
	return coords
}

func (s *AmapGeoService) getJSON(ctx context.Context, endpoint string, q url.Values, out interface{}) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return err
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}
