package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// osmTags maps category queries to OpenStreetMap tag filters.
var osmTags = map[string]string{
	"restaurant":  "amenity=restaurant",
	"supermarché": "shop=supermarket",
	"supermarket": "shop=supermarket",
	"hôtel":       "tourism=hotel",
	"hotel":       "tourism=hotel",
	"pharmacie":   "amenity=pharmacy",
	"pharmacy":    "amenity=pharmacy",
	"cinéma":      "amenity=cinema",
	"cinema":      "amenity=cinema",
	"café":        "amenity=cafe",
	"cafe":        "amenity=cafe",
	"bar":         "amenity=bar",
	"boulangerie": "shop=bakery",
	"bakery":      "shop=bakery",
	"banque":      "amenity=bank",
	"bank":        "amenity=bank",
	"médecin":     "amenity=doctors",
	"doctor":      "amenity=doctors",
	"dentiste":    "amenity=dentist",
	"dentist":     "amenity=dentist",
	"coiffeur":    "shop=hairdresser",
	"garage":      "shop=car_repair",
	"école":       "amenity=school",
	"school":      "amenity=school",
}

type cityArea struct {
	Lat    float64
	Lon    float64
	Radius int
}

// cityAreas holds search centers for the cities the product targets.
var cityAreas = map[string]cityArea{
	"paris":       {48.8566, 2.3522, 20000},
	"lyon":        {45.7640, 4.8357, 15000},
	"marseille":   {43.2965, 5.3698, 15000},
	"toulouse":    {43.6047, 1.4442, 12000},
	"nice":        {43.7102, 7.2620, 10000},
	"nantes":      {47.2184, -1.5536, 12000},
	"strasbourg":  {48.5734, 7.7521, 10000},
	"montpellier": {43.6108, 3.8767, 10000},
	"bordeaux":    {44.8378, -0.5792, 12000},
	"lille":       {50.6292, 3.0573, 10000},
}

const defaultCity = "paris"

// OverpassOptions configures the Overpass (OpenStreetMap) provider.
type OverpassOptions struct {
	BaseURL        string
	HTTPClient     *http.Client
	Logger         zerolog.Logger
	RequestTimeout time.Duration
}

// OverpassClient queries the Overpass API for places matching a category
// around a known city center.
type OverpassClient struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewOverpassClient constructs a provider with sane defaults.
func NewOverpassClient(opts OverpassOptions) *OverpassClient {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 25 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://overpass-api.de/api/interpreter"
	}
	return &OverpassClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     opts.Logger,
	}
}

type overpassElement struct {
	Type   string            `json:"type"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Tags   map[string]string `json:"tags"`
	Center *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"center"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

// Search runs one Overpass query. A completed query with zero named
// elements returns ErrNoResults.
func (c *OverpassClient) Search(ctx context.Context, query, location string, maxResults int) ([]Place, error) {
	if maxResults <= 0 {
		maxResults = 20
	}
	tag := tagFor(query)
	area := areaFor(location)

	ql := fmt.Sprintf(`[out:json][timeout:25];
(
  node[%s](around:%d,%f,%f);
  way[%s](around:%d,%f,%f);
);
out center %d;`, tag, area.Radius, area.Lat, area.Lon, tag, area.Radius, area.Lat, area.Lon, maxResults*2)

	form := url.Values{"data": {ql}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("overpass: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("overpass: read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("overpass: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var decoded overpassResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("overpass: decode response: %w", err)
	}

	results := make([]Place, 0, maxResults)
	for _, el := range decoded.Elements {
		place, ok := placeFrom(el, query)
		if !ok {
			continue
		}
		results = append(results, place)
		if len(results) >= maxResults {
			break
		}
	}
	if len(results) == 0 {
		return nil, ErrNoResults
	}
	c.logger.Debug().
		Str("query", query).
		Str("location", location).
		Int("results", len(results)).
		Msg("overpass: search completed")
	return results, nil
}

func tagFor(query string) string {
	if tag, ok := osmTags[strings.ToLower(strings.TrimSpace(query))]; ok {
		return tag
	}
	return "amenity"
}

func areaFor(location string) cityArea {
	loc := strings.ToLower(strings.TrimSpace(location))
	for city, area := range cityAreas {
		if strings.Contains(loc, city) {
			return area
		}
	}
	return cityAreas[defaultCity]
}

// placeFrom converts an Overpass element to a Place. Unnamed elements are
// skipped: they are unusable as export rows.
func placeFrom(el overpassElement, query string) (Place, bool) {
	name := el.Tags["name"]
	if name == "" {
		return Place{}, false
	}
	category := el.Tags["amenity"]
	if category == "" {
		category = el.Tags["shop"]
	}
	if category == "" {
		category = el.Tags["tourism"]
	}
	if category == "" {
		category = strings.ToLower(strings.TrimSpace(query))
	}

	var addr []string
	if v := el.Tags["addr:housenumber"]; v != "" {
		addr = append(addr, v)
	}
	if v := el.Tags["addr:street"]; v != "" {
		addr = append(addr, v)
	}
	if v := el.Tags["addr:city"]; v != "" {
		addr = append(addr, v)
	}

	return Place{
		Name:     name,
		Category: category,
		Address:  strings.Join(addr, " "),
		Phone:    el.Tags["phone"],
		Website:  el.Tags["website"],
		Hours:    el.Tags["opening_hours"],
	}, true
}

var _ Provider = (*OverpassClient)(nil)
