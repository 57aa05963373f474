package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/condoriano/internal/models"
	"github.com/desertthunder/condoriano/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultSearchURL = "https://www.googleapis.com/customsearch/v1"
	maxImages        = 5
)

// ImageSearchOpts configures an [ImageSearch].
type ImageSearchOpts struct {
	BaseURL    string
	APIKey     string
	EngineID   string
	RateLimit  float64 // requests per second, defaults to 1
	HTTPClient *http.Client
	Logger     *log.Logger
}

// ImageSearch implements the "images" command.
type ImageSearch struct {
	baseURL    string
	apiKey     string
	engineID   string
	limiter    *rate.Limiter
	httpClient *http.Client
	logger     *log.Logger
}

type searchResponse struct {
	Items []struct {
		Link    string `json:"link"`
		Pagemap struct {
			CSEImage []struct {
				Src string `json:"src"`
			} `json:"cse_image"`
		} `json:"pagemap"`
	} `json:"items"`
}

// NewImageSearch creates an [ImageSearch] from opts.
func NewImageSearch(opts ImageSearchOpts) *ImageSearch {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultSearchURL
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 1
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = NewHTTPClient(0)
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &ImageSearch{
		baseURL:    opts.BaseURL,
		apiKey:     opts.APIKey,
		engineID:   opts.EngineID,
		limiter:    rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
		httpClient: opts.HTTPClient,
		logger:     shared.WithLogger(opts.Logger, "command", "images"),
	}
}

func (s *ImageSearch) Name() string { return "images" }

// Handle searches for the words in args and replies with a carousel of image cards.
func (s *ImageSearch) Handle(ctx context.Context, msg models.Message, args []string) []models.Chunk {
	if len(args) == 0 {
		return models.Texts("No search term entered. Example: 'images justin bieber' ")
	}

	chunks := models.Texts("Fetching images...")

	images, err := s.Search(ctx, strings.Join(args, " "))
	if err != nil {
		s.logger.Error("image search failed", "query", strings.Join(args, " "), "error", err)
		return append(chunks, models.Text(Broken))
	}

	if len(images) == 0 {
		return append(chunks, models.Text("No images found."))
	}

	cards := make([]models.Card, 0, len(images))
	for _, src := range images {
		cards = append(cards, models.Card{
			Images:  []string{src},
			Buttons: []models.CardButton{{Title: "Image Link", URL: src}},
		})
	}
	return append(chunks, models.Carousel(cards...))
}

// Search queries the API and returns up to five distinct https .jpg image URLs.
func (s *ImageSearch) Search(ctx context.Context, query string) ([]string, error) {
	if s.apiKey == "" || s.engineID == "" {
		return nil, fmt.Errorf("%w: search api_key and engine_id", shared.ErrMissingCredentials)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("key", s.apiKey)
	params.Set("cx", s.engineID)
	params.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	var images []string
	seen := map[string]bool{}
	for _, item := range result.Items {
		if len(images) == maxImages {
			break
		}
		if len(item.Pagemap.CSEImage) == 0 {
			continue
		}

		src := item.Pagemap.CSEImage[0].Src
		if !strings.Contains(src, ".jpg") {
			continue
		}
		if !strings.Contains(src, "https") {
			src = strings.Replace(src, "http", "https", 1)
		}
		if seen[src] {
			continue
		}
		seen[src] = true
		images = append(images, src)
	}

	return images, nil
}
