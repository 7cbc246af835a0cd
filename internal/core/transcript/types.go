// Package transcript fetches YouTube caption tracks as fixed-duration chunks.
package transcript

// Chunk is a fixed-duration transcript segment.
type Chunk struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`    // seconds from video start
	Duration float64 `json:"duration"` // seconds
}

// ChunkSeconds is the fixed chunk window size.
const ChunkSeconds = 15
