package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

var (
	videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

	watchHosts = map[string]bool{
		"youtube.com":          true,
		"m.youtube.com":        true,
		"music.youtube.com":    true,
		"youtube-nocookie.com": true,
	}

	captionTracksPattern = regexp.MustCompile(`(?s)"captionTracks":(\[.*?\])`)
)

// VideoID extracts the 11-character video identifier from a YouTube URL.
// Supported forms: watch?v=, youtu.be/, shorts/, embed/, live/.
func VideoID(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))

	switch {
	case host == "youtu.be":
		id := strings.Trim(u.Path, "/")
		if videoIDPattern.MatchString(id) {
			return id, nil
		}
	case watchHosts[host]:
		if u.Path == "/watch" {
			if id := u.Query().Get("v"); videoIDPattern.MatchString(id) {
				return id, nil
			}
		}
		for _, prefix := range []string{"/shorts/", "/embed/", "/live/"} {
			if strings.HasPrefix(u.Path, prefix) {
				id := strings.Trim(strings.TrimPrefix(u.Path, prefix), "/")
				if videoIDPattern.MatchString(id) {
					return id, nil
				}
			}
		}
	}

	return "", fmt.Errorf("not a YouTube video URL: %s", rawURL)
}

// doer is the subset of http.Client used by the fetcher.
type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher retrieves caption tracks and windows them into chunks.
type Fetcher struct {
	client    doer
	languages []string
}

// NewFetcher creates a Fetcher with the given ordered language priority list.
func NewFetcher(languages []string) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: 30 * time.Second},
		languages: languages,
	}
}

// captionTrack mirrors the relevant fields of the player response.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" for auto-generated tracks
}

// cue is a single caption event before windowing.
type cue struct {
	text  string
	start float64
}

// Fetch downloads the transcript for a video and returns it as ordered
// 15-second chunks. The first caption track matching the language priority
// list wins; any failure is returned as an error, never a panic.
func (f *Fetcher) Fetch(ctx context.Context, videoID string) ([]Chunk, error) {
	page, err := f.get(ctx, "https://www.youtube.com/watch?v="+videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to load watch page: %w", err)
	}

	tracks, err := parseCaptionTracks(page)
	if err != nil {
		return nil, err
	}

	track, ok := pickTrack(tracks, f.languages)
	if !ok {
		return nil, fmt.Errorf("no caption track in languages %v", f.languages)
	}

	sep := "&"
	if !strings.Contains(track.BaseURL, "?") {
		sep = "?"
	}
	body, err := f.get(ctx, track.BaseURL+sep+"fmt=json3")
	if err != nil {
		return nil, fmt.Errorf("failed to download captions: %w", err)
	}

	cues, err := parseCues(body)
	if err != nil {
		return nil, err
	}

	return windowCues(cues), nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, 10<<20))
}

// parseCaptionTracks extracts the caption track list from the watch page's
// embedded player response.
func parseCaptionTracks(page []byte) ([]captionTrack, error) {
	m := captionTracksPattern.FindSubmatch(page)
	if m == nil {
		return nil, fmt.Errorf("no captions available")
	}

	var tracks []captionTrack
	if err := json.Unmarshal(m[1], &tracks); err != nil {
		return nil, fmt.Errorf("failed to parse caption tracks: %w", err)
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("no captions available")
	}
	return tracks, nil
}

// pickTrack returns the first track matching the ordered language priority
// list. Manual tracks win over auto-generated ones within a language; region
// variants (en-US) match their base code (en).
func pickTrack(tracks []captionTrack, languages []string) (captionTrack, bool) {
	for _, lang := range languages {
		var fallback *captionTrack
		for i, track := range tracks {
			code := track.LanguageCode
			if code != lang && !strings.HasPrefix(code, lang+"-") {
				continue
			}
			if track.Kind != "asr" {
				return track, true
			}
			if fallback == nil {
				fallback = &tracks[i]
			}
		}
		if fallback != nil {
			return *fallback, true
		}
	}
	return captionTrack{}, false
}

// json3 response shapes.
type json3Body struct {
	Events []json3Event `json:"events"`
}

type json3Event struct {
	StartMs int64 `json:"tStartMs"`
	Segs    []struct {
		UTF8 string `json:"utf8"`
	} `json:"segs"`
}

func parseCues(body []byte) ([]cue, error) {
	var parsed json3Body
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse captions: %w", err)
	}

	var cues []cue
	for _, ev := range parsed.Events {
		var b strings.Builder
		for _, seg := range ev.Segs {
			b.WriteString(seg.UTF8)
		}
		text := strings.TrimSpace(strings.ReplaceAll(b.String(), "\n", " "))
		if text == "" {
			continue
		}
		cues = append(cues, cue{text: text, start: float64(ev.StartMs) / 1000})
	}

	if len(cues) == 0 {
		return nil, fmt.Errorf("caption track is empty")
	}
	return cues, nil
}

// windowCues groups cues into fixed 15-second windows, preserving order.
func windowCues(cues []cue) []Chunk {
	buckets := make(map[int][]string)
	for _, c := range cues {
		idx := int(c.start) / ChunkSeconds
		buckets[idx] = append(buckets[idx], c.text)
	}

	indexes := make([]int, 0, len(buckets))
	for idx := range buckets {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	chunks := make([]Chunk, 0, len(indexes))
	for _, idx := range indexes {
		chunks = append(chunks, Chunk{
			Text:     strings.Join(buckets[idx], " "),
			Start:    float64(idx * ChunkSeconds),
			Duration: ChunkSeconds,
		})
	}
	return chunks
}

// Join concatenates chunk texts in order, separated by single spaces.
func Join(chunks []Chunk) string {
	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = c.Text
	}
	return strings.Join(parts, " ")
}
