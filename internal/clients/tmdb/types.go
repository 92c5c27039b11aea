// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package tmdb

// Genre is a catalog genre entry from /genre/{movie|tv}/list.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SearchResult is one entry from the search and discover endpoints.
// Movies carry Title/ReleaseDate, TV shows carry Name/FirstAirDate;
// the accessor methods paper over the split.
type SearchResult struct {
	ID           int     `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	MediaType    string  `json:"media_type,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	GenreIDs     []int   `json:"genre_ids,omitempty"`
}

// DisplayTitle returns the movie title or TV show name, whichever is set.
func (r SearchResult) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

// ReleaseYear returns the four-digit year of the release or first air date,
// or 0 when unknown.
func (r SearchResult) ReleaseYear() int {
	date := r.ReleaseDate
	if date == "" {
		date = r.FirstAirDate
	}
	if len(date) < 4 {
		return 0
	}
	year := 0
	for _, c := range date[:4] {
		if c < '0' || c > '9' {
			return 0
		}
		year = year*10 + int(c-'0')
	}
	return year
}

// searchResponse is the paged envelope returned by search and discover.
type searchResponse struct {
	Page         int            `json:"page"`
	TotalResults int            `json:"total_results"`
	TotalPages   int            `json:"total_pages"`
	Results      []SearchResult `json:"results"`
}

// Details is the response from GET /movie/{id} or GET /tv/{id}.
type Details struct {
	ID           int     `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
	Genres       []Genre `json:"genres"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	Tagline      string  `json:"tagline,omitempty"`
}

// DisplayTitle returns the movie title or TV show name, whichever is set.
func (d *Details) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}

// WatchProvider is one streaming/rental provider offering a title.
type WatchProvider struct {
	ProviderID   int    `json:"provider_id"`
	ProviderName string `json:"provider_name"`
	LogoPath     string `json:"logo_path"`
}

// regionProviders groups provider offers for a single region.
type regionProviders struct {
	Link     string          `json:"link"`
	Flatrate []WatchProvider `json:"flatrate,omitempty"`
	Rent     []WatchProvider `json:"rent,omitempty"`
	Buy      []WatchProvider `json:"buy,omitempty"`
}

// watchProvidersResponse is the response from /{movie|tv}/{id}/watch/providers.
type watchProvidersResponse struct {
	ID      int                        `json:"id"`
	Results map[string]regionProviders `json:"results"`
}

// genreListResponse is the response from /genre/{movie|tv}/list.
type genreListResponse struct {
	Genres []Genre `json:"genres"`
}

// DiscoverFilter narrows a discover query. Zero values mean "any".
type DiscoverFilter struct {
	MediaType string // "movie" or "tv"
	GenreIDs  []int
	Year      int
	Page      int
}
