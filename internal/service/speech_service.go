package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	speechRequestTimeout = 10 * time.Second
	// The free endpoint rejects long inputs, so narration is chunked
	speechMaxChunk = 180
)

// SpeechService generates story read-aloud audio using the free Google
// Translate text-to-speech endpoint. Generated MP3s are cached on disk;
// a failure degrades to silence on the story page.
type SpeechService struct {
	audioDir string
	client   *http.Client
}

// NewSpeechService creates a new speech service
func NewSpeechService(audioDir string) *SpeechService {
	return &SpeechService{
		audioDir: audioDir,
		client:   &http.Client{Timeout: speechRequestTimeout},
	}
}

// StoryAudioFile returns the cached filename for a story's narration,
// generating it on first request
func (s *SpeechService) StoryAudioFile(ctx context.Context, storyID int, narrative string) (string, error) {
	filename := fmt.Sprintf("story_%d.mp3", storyID)
	path := filepath.Join(s.audioDir, filename)

	if _, err := os.Stat(path); err == nil {
		return filename, nil
	}

	if err := os.MkdirAll(s.audioDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create audio dir: %w", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create audio file: %w", err)
	}
	defer out.Close()

	for _, chunk := range chunkText(narrative, speechMaxChunk) {
		if err := s.fetchSpeech(ctx, chunk, out); err != nil {
			out.Close()
			os.Remove(path)
			return "", fmt.Errorf("failed to generate audio: %w", err)
		}
	}
	return filename, nil
}

// fetchSpeech appends one synthesized chunk to the output file
func (s *SpeechService) fetchSpeech(ctx context.Context, text string, out io.Writer) error {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", "en")
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	fullURL := "https://translate.google.com/translate_tts?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	// The endpoint rejects requests without a browser user agent
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write audio: %w", err)
	}
	return nil
}

// chunkText splits text on sentence and word boundaries into pieces the
// endpoint accepts
func chunkText(text string, max int) []string {
	words := strings.Fields(text)
	var chunks []string
	var current strings.Builder

	for _, w := range words {
		if current.Len() > 0 && current.Len()+1+len(w) > max {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(w)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
