// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package recommend

import (
	"sort"
	"strings"

	"github.com/tomtom215/reelharbor/internal/titlematch"
)

// maxPromptGenres caps how many genres a prompt can select. Discover
// queries with many genre constraints intersect down to nothing.
const maxPromptGenres = 3

// genreKey is the internal canonical genre vocabulary; the per-media
// tables below map it onto the catalog's numeric IDs.
type genreKey string

const (
	genreAction      genreKey = "action"
	genreAdventure   genreKey = "adventure"
	genreAnimation   genreKey = "animation"
	genreComedy      genreKey = "comedy"
	genreCrime       genreKey = "crime"
	genreDocumentary genreKey = "documentary"
	genreDrama       genreKey = "drama"
	genreFamily      genreKey = "family"
	genreFantasy     genreKey = "fantasy"
	genreHistory     genreKey = "history"
	genreHorror      genreKey = "horror"
	genreMusic       genreKey = "music"
	genreMystery     genreKey = "mystery"
	genreRomance     genreKey = "romance"
	genreSciFi       genreKey = "scifi"
	genreThriller    genreKey = "thriller"
	genreWar         genreKey = "war"
	genreWestern     genreKey = "western"
)

// moodTerms maps prompt keywords and mood words onto canonical genres.
// Keys must be lower case; multi-word keys are matched against the
// normalized prompt as substrings.
var moodTerms = map[string]genreKey{
	"action":      genreAction,
	"explosive":   genreAction,
	"martial":     genreAction,
	"adventure":   genreAdventure,
	"epic":        genreAdventure,
	"quest":       genreAdventure,
	"animated":    genreAnimation,
	"animation":   genreAnimation,
	"anime":       genreAnimation,
	"cartoon":     genreAnimation,
	"comedy":      genreComedy,
	"funny":       genreComedy,
	"hilarious":   genreComedy,
	"laugh":       genreComedy,
	"feel good":   genreComedy,
	"cozy":        genreComedy,
	"crime":       genreCrime,
	"heist":       genreCrime,
	"detective":   genreCrime,
	"gangster":    genreCrime,
	"documentary": genreDocumentary,
	"true story":  genreDocumentary,
	"drama":       genreDrama,
	"emotional":   genreDrama,
	"tearjerker":  genreDrama,
	"sad":         genreDrama,
	"family":      genreFamily,
	"kids":        genreFamily,
	"children":    genreFamily,
	"fantasy":     genreFantasy,
	"magic":       genreFantasy,
	"dragons":     genreFantasy,
	"medieval":    genreFantasy,
	"history":     genreHistory,
	"historical":  genreHistory,
	"horror":      genreHorror,
	"scary":       genreHorror,
	"creepy":      genreHorror,
	"haunted":     genreHorror,
	"zombie":      genreHorror,
	"music":       genreMusic,
	"musical":     genreMusic,
	"mystery":     genreMystery,
	"whodunit":    genreMystery,
	"puzzle":      genreMystery,
	"romance":     genreRomance,
	"romantic":    genreRomance,
	"love story":  genreRomance,
	"sci fi":      genreSciFi,
	"scifi":       genreSciFi,
	"space":       genreSciFi,
	"futuristic":  genreSciFi,
	"robots":      genreSciFi,
	"dystopian":   genreSciFi,
	"thriller":    genreThriller,
	"suspense":    genreThriller,
	"tense":       genreThriller,
	"war":         genreWar,
	"military":    genreWar,
	"western":     genreWestern,
	"cowboy":      genreWestern,
}

// movieGenreIDs maps canonical genres onto the catalog's movie IDs.
var movieGenreIDs = map[genreKey]int{
	genreAction:      28,
	genreAdventure:   12,
	genreAnimation:   16,
	genreComedy:      35,
	genreCrime:       80,
	genreDocumentary: 99,
	genreDrama:       18,
	genreFamily:      10751,
	genreFantasy:     14,
	genreHistory:     36,
	genreHorror:      27,
	genreMusic:       10402,
	genreMystery:     9648,
	genreRomance:     10749,
	genreSciFi:       878,
	genreThriller:    53,
	genreWar:         10752,
	genreWestern:     37,
}

// tvGenreIDs maps canonical genres onto the catalog's TV IDs. TV has a
// coarser taxonomy, so several keys collapse onto combined genres.
var tvGenreIDs = map[genreKey]int{
	genreAction:      10759, // Action & Adventure
	genreAdventure:   10759,
	genreAnimation:   16,
	genreComedy:      35,
	genreCrime:       80,
	genreDocumentary: 99,
	genreDrama:       18,
	genreFamily:      10751,
	genreFantasy:     10765, // Sci-Fi & Fantasy
	genreHistory:     99,
	genreHorror:      9648,
	genreMusic:       35,
	genreMystery:     9648,
	genreRomance:     18,
	genreSciFi:       10765,
	genreThriller:    9648,
	genreWar:         10768, // War & Politics
	genreWestern:     37,
}

// GenresForPrompt maps keyword and mood terms in a free-text prompt
// onto catalog genre IDs, deterministically. Matching happens against
// the normalized prompt, so punctuation and case never matter. At most
// maxPromptGenres IDs are returned, in order of first appearance.
func GenresForPrompt(prompt string, mediaType MediaType) []int {
	normalized := " " + titlematch.Normalize(prompt) + " "

	table := movieGenreIDs
	if mediaType == MediaTypeTV {
		table = tvGenreIDs
	}

	// Map iteration order is random, so record the earliest prompt
	// position per genre ID and sort on that; the same prompt must
	// always yield the same ID list.
	firstPos := make(map[int]int)
	for term, key := range moodTerms {
		pos := strings.Index(normalized, " "+term+" ")
		if pos < 0 {
			continue
		}
		id, ok := table[key]
		if !ok {
			continue
		}
		if prev, seen := firstPos[id]; !seen || pos < prev {
			firstPos[id] = pos
		}
	}

	type hit struct {
		pos int
		id  int
	}
	hits := make([]hit, 0, len(firstPos))
	for id, pos := range firstPos {
		hits = append(hits, hit{pos: pos, id: id})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].pos != hits[j].pos {
			return hits[i].pos < hits[j].pos
		}
		return hits[i].id < hits[j].id
	})

	ids := make([]int, 0, len(hits))
	for _, h := range hits {
		if len(ids) == maxPromptGenres {
			break
		}
		ids = append(ids, h.id)
	}
	return ids
}
