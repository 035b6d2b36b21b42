package factcheck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"credd/internal/models"
	"credd/internal/providers"
	"credd/internal/structures"
)

const (
	maxQueryRunes     = 500
	maxClaims         = 3
	defaultRating     = 0.7
	maxResponseBytes  = 1 << 20
	defaultFinderRPS  = 5
	defaultFinderWait = 5 * time.Second
)

type claimsResponse struct {
	Claims []struct {
		Text        string `json:"text"`
		ClaimReview []struct {
			URL           string `json:"url"`
			Title         string `json:"title"`
			TextualRating string `json:"textualRating"`
			Publisher     struct {
				Name string `json:"name"`
				Site string `json:"site"`
			} `json:"publisher"`
		} `json:"claimReview"`
	} `json:"claims"`
}

// GoogleFinder queries the Google Fact Check Tools claims:search endpoint. Requests are
// rate limited; any failure or empty answer falls back to another Finder.
type GoogleFinder struct {
	client   *http.Client
	baseURL  string
	apiKey   string
	limiter  *rate.Limiter
	ratings  Ratings
	fallback Finder
	logger   providers.Logger
}

func NewGoogleFinder(conf structures.FactCheckConfig, ratings Ratings, fallback Finder, logger providers.Logger) *GoogleFinder {
	rps := conf.RPS
	if rps <= 0 {
		rps = defaultFinderRPS
	}
	timeout := conf.Timeout
	if timeout <= 0 {
		timeout = defaultFinderWait
	}
	return &GoogleFinder{
		client:   &http.Client{Timeout: timeout},
		baseURL:  strings.TrimRight(conf.BaseURL, "/"),
		apiKey:   conf.APIKey,
		limiter:  rate.NewLimiter(rate.Limit(rps), max(int(rps), 1)),
		ratings:  ratings,
		fallback: fallback,
		logger:   logger,
	}
}

func (g *GoogleFinder) Find(ctx context.Context, content string) ([]models.Source, error) {
	sources, err := g.search(ctx, content)
	if err != nil {
		g.logger.Warnf(providers.TypePipeline, "fact check lookup failed, using fallback: %v", err)
	}
	if len(sources) > 0 {
		return sources, nil
	}
	if g.fallback == nil {
		return []models.Source{}, nil
	}
	return g.fallback.Find(ctx, content)
}

func (g *GoogleFinder) search(ctx context.Context, content string) ([]models.Source, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("key", g.apiKey)
	q.Set("query", truncateRunes(content, maxQueryRunes))
	q.Set("languageCode", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/claims:search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("claims:search returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	var parsed claimsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode claims:search response: %w", err)
	}

	sources := make([]models.Source, 0, maxClaims)
	for i, claim := range parsed.Claims {
		if i == maxClaims {
			break
		}
		for _, review := range claim.ClaimReview {
			name := review.Publisher.Name
			if name == "" {
				name = "Unknown"
			}
			sources = append(sources, models.Source{
				Name:              name,
				Url:               review.URL,
				CredibilityRating: g.rating(ctx, review.Publisher.Site, review.URL),
			})
		}
	}
	return sources, nil
}

// rating prefers the publisher's site and falls back to the review URL host.
func (g *GoogleFinder) rating(ctx context.Context, site, reviewURL string) float64 {
	domain := site
	if domain == "" {
		domain = reviewURL
	}
	if g.ratings == nil || domain == "" {
		return defaultRating
	}
	rec, err := g.ratings.Lookup(ctx, domain)
	if err != nil || rec == nil {
		return defaultRating
	}
	return rec.Credibility
}

func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
