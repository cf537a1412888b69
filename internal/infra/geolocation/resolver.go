// Package geolocation resolves request IPs to an approximate location
// through an external lookup service, with a TTL cache in front of it.
package geolocation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"cardlink/config"
	"cardlink/internal/domain/entity"
	"cardlink/internal/domain/service"
)

const (
	defaultTimeout       = 3 * time.Second
	defaultCacheTTL      = 10 * time.Minute
	defaultSweepInterval = 5 * time.Minute
)

type cacheEntry struct {
	location  entity.GeoLocation
	expiresAt time.Time
}

// Resolver implements service.LocationResolver against an ip-api style
// JSON endpoint. Lookups never fail the caller: any error degrades to
// header hints and then to the configured fallback location.
type Resolver struct {
	endpoint string
	ttl      time.Duration
	sweep    time.Duration
	fallback entity.GeoLocation

	client *http.Client
	logger *slog.Logger
	now    func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewResolver creates a Resolver from configuration. The caller owns the
// sweeper lifecycle via StartSweeper and StopSweeper.
func NewResolver(cfg *config.Config, logger *slog.Logger) *Resolver {
	return newResolver(cfg.Geolocation, logger, time.Now)
}

func newResolver(cfg *config.GeolocationConfig, logger *slog.Logger, now func() time.Time) *Resolver {
	resolver := &Resolver{
		endpoint: "http://ip-api.com/json",
		ttl:      defaultCacheTTL,
		sweep:    defaultSweepInterval,
		client:   &http.Client{Timeout: defaultTimeout},
		logger:   logger,
		now:      now,
		cache:    make(map[string]cacheEntry),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	if cfg != nil {
		if cfg.Endpoint != "" {
			resolver.endpoint = strings.TrimRight(cfg.Endpoint, "/")
		}
		if cfg.Timeout > 0 {
			resolver.client.Timeout = cfg.Timeout
		}
		if cfg.CacheTTL > 0 {
			resolver.ttl = cfg.CacheTTL
		}
		if cfg.SweepInterval > 0 {
			resolver.sweep = cfg.SweepInterval
		}
		resolver.fallback = entity.GeoLocation{
			City:    cfg.FallbackCity,
			Country: cfg.FallbackCountry,
		}
		if cfg.FallbackLat != 0 || cfg.FallbackLon != 0 {
			lat, lon := cfg.FallbackLat, cfg.FallbackLon
			resolver.fallback.Latitude = &lat
			resolver.fallback.Longitude = &lon
		}
	}

	return resolver
}

// Resolve maps an IP to a location. It consults the cache first, then the
// external service. It never returns an error: failed or skipped lookups
// fall back to header hints and the configured fallback.
func (r *Resolver) Resolve(ctx context.Context, ip string, hints service.LocationHints) entity.GeoLocation {
	if !isPublicIP(ip) {
		return r.degraded(hints)
	}

	if location, ok := r.cached(ip); ok {
		return location
	}

	location, err := r.lookup(ctx, ip)
	if err != nil {
		r.logger.WarnContext(ctx, "geolocation lookup failed",
			slog.String("ip", ip),
			slog.Any("error", err))

		return r.degraded(hints)
	}

	r.store(ip, location)

	return location
}

// Fallback returns the configured fallback location.
func (r *Resolver) Fallback() entity.GeoLocation {
	return r.fallback
}

// StartSweeper launches the background goroutine that evicts expired
// cache entries. Stop it with StopSweeper.
func (r *Resolver) StartSweeper() {
	go func() {
		defer close(r.done)

		ticker := time.NewTicker(r.sweep)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.evictExpired()
			case <-r.stop:
				return
			}
		}
	}()
}

// StopSweeper stops the sweeper goroutine and waits for it to exit.
func (r *Resolver) StopSweeper() {
	r.stopOnce.Do(func() {
		close(r.stop)
	})
	<-r.done
}

func (r *Resolver) cached(ip string) (entity.GeoLocation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.cache[ip]
	if !ok || r.now().After(entry.expiresAt) {
		return entity.GeoLocation{}, false
	}

	return entry.location, true
}

func (r *Resolver) store(ip string, location entity.GeoLocation) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache[ip] = cacheEntry{
		location:  location,
		expiresAt: r.now().Add(r.ttl),
	}
}

func (r *Resolver) evictExpired() {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	for ip, entry := range r.cache {
		if now.After(entry.expiresAt) {
			delete(r.cache, ip)
		}
	}
}

type lookupResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	City    string   `json:"city"`
	Country string   `json:"country"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

func (r *Resolver) lookup(ctx context.Context, ip string) (entity.GeoLocation, error) {
	url := fmt.Sprintf("%s/%s?fields=status,message,city,country,lat,lon", r.endpoint, ip)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return entity.GeoLocation{}, fmt.Errorf("build lookup request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return entity.GeoLocation{}, fmt.Errorf("lookup request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entity.GeoLocation{}, fmt.Errorf("lookup returned status %d", resp.StatusCode)
	}

	var payload lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return entity.GeoLocation{}, fmt.Errorf("decode lookup response: %w", err)
	}

	if payload.Status != "success" {
		return entity.GeoLocation{}, fmt.Errorf("lookup failed: %s", payload.Message)
	}

	return entity.GeoLocation{
		Latitude:  payload.Lat,
		Longitude: payload.Lon,
		City:      payload.City,
		Country:   payload.Country,
	}, nil
}

// degraded merges whatever the request headers suggest with the fallback.
func (r *Resolver) degraded(hints service.LocationHints) entity.GeoLocation {
	return locationFromHints(hints).Merge(r.fallback)
}

// locationFromHints derives a coarse location from client headers: the
// IANA timezone gives a city, the Accept-Language region gives a country.
func locationFromHints(hints service.LocationHints) entity.GeoLocation {
	var location entity.GeoLocation

	if tz := strings.TrimSpace(hints.Timezone); tz != "" {
		if idx := strings.LastIndex(tz, "/"); idx >= 0 && idx+1 < len(tz) {
			location.City = strings.ReplaceAll(tz[idx+1:], "_", " ")
		}
	}

	if lang := strings.TrimSpace(hints.AcceptLanguage); lang != "" {
		// First tag wins, e.g. "en-US,en;q=0.9" -> "US".
		first := strings.SplitN(lang, ",", 2)[0]
		first = strings.SplitN(first, ";", 2)[0]
		if parts := strings.Split(strings.TrimSpace(first), "-"); len(parts) == 2 && len(parts[1]) == 2 {
			location.Country = strings.ToUpper(parts[1])
		}
	}

	return location
}

func isPublicIP(ip string) bool {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return false
	}

	return !parsed.IsPrivate() && !parsed.IsLoopback() && !parsed.IsUnspecified() && !parsed.IsLinkLocalUnicast()
}
