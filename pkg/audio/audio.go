// Package audio renders article summaries into speech files.
package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"
)

//go:generate moq -out mocks/speaker.go -pkg mocks -skip-ensure -fmt goimports . Speaker

// SubDir is the directory under the media root holding rendered files
const SubDir = "news_audio"

// DefaultMaxChars limits how much text is sent to the speech backend
const DefaultMaxChars = 800

var (
	// ErrNoText returned when nothing is left to speak after sanitizing
	ErrNoText = errors.New("no text to render")
	// ErrBackend returned when the speech backend failed
	ErrBackend = errors.New("speech backend failed")
)

// Speaker synthesizes text into an audio file at path
type Speaker interface {
	Synthesize(ctx context.Context, text, lang, path string) error
}

// Params defines parameters for NewRenderer
type Params struct {
	MediaDir string        // media root, files go to <MediaDir>/news_audio
	Language string        // language passed to the speaker
	MaxChars int           // sanitized text limit, DefaultMaxChars if 0
	Timeout  time.Duration // per render, 30s if 0
}

// Renderer turns summaries into audio files via a Speaker
type Renderer struct {
	speaker Speaker
	params  Params
	now     func() time.Time
}

// NewRenderer makes a renderer for the speaker
func NewRenderer(speaker Speaker, params Params) *Renderer {
	if params.MaxChars <= 0 {
		params.MaxChars = DefaultMaxChars
	}
	if params.Timeout <= 0 {
		params.Timeout = 30 * time.Second
	}
	if params.Language == "" {
		params.Language = "en"
	}
	return &Renderer{speaker: speaker, params: params, now: time.Now}
}

// Render sanitizes the text, synthesizes it and returns the file path relative to the media root.
// Every call makes a new file, existing files are never overwritten.
func (r *Renderer) Render(ctx context.Context, text string, articleID int64) (string, error) {
	clean := Sanitize(text, r.params.MaxChars)
	if clean == "" {
		lgr.Printf("[WARN] no text to render audio for article %d", articleID)
		return "", ErrNoText
	}

	dir := filepath.Join(r.params.MediaDir, SubDir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create audio dir: %w", err)
	}

	name := fmt.Sprintf("summary_%d_%s_%s.mp3", articleID, r.now().UTC().Format("20060102T150405Z"), uuid.NewString()[:8])
	tmp, err := os.CreateTemp(dir, "render_*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	_ = tmp.Close()

	ctx, cancel := context.WithTimeout(ctx, r.params.Timeout)
	defer cancel()

	if err := r.speaker.Synthesize(ctx, clean, r.params.Language, tmpName); err != nil {
		_ = os.Remove(tmpName)
		lgr.Printf("[ERROR] speech synthesis for article %d failed: %v", articleID, err)
		return "", fmt.Errorf("%w: %w", ErrBackend, err)
	}
	if err := os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("move audio file: %w", err)
	}

	rel := path.Join(SubDir, name)
	lgr.Printf("[DEBUG] rendered audio for article %d to %s", articleID, rel)
	return rel, nil
}

// Remove deletes a previously rendered file given its relative path, missing files are ignored
func (r *Renderer) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	clean := filepath.Clean(filepath.FromSlash(relPath))
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return fmt.Errorf("invalid audio path %q", relPath)
	}
	if err := os.Remove(filepath.Join(r.params.MediaDir, clean)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove audio file: %w", err)
	}
	return nil
}

var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:share\s+save|save\s+share|share this (?:article|story|page)|copy link|add to bookmarks)\b`),
	regexp.MustCompile(`(?i)\b\d+\s+(?:second|minute|hour|day|week|month)s?\s+ago\b`),
	regexp.MustCompile(`(?i)\b(?:additional reporting by|reporting by)\s[^.]*\.?`),
	regexp.MustCompile(`(?i)\b(?:image source|source)\s*:[^.]*\.?`),
	regexp.MustCompile(`(?i)[\[(]\s*(?:image|photo|picture|credit)[^\])]*[\])]`),
	regexp.MustCompile(`(?i)\b(?:image|photo|picture)\s+(?:credit|caption)\s*:[^.]*\.?`),
	regexp.MustCompile(`(?i)\bgetty images\b`),
}

// Sanitize removes page boilerplate, collapses whitespace and truncates the text
// to at most maxChars characters, on a word boundary when possible
func Sanitize(text string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	for _, re := range noisePatterns {
		text = re.ReplaceAllString(text, " ")
	}
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= maxChars {
		return text
	}

	runes := []rune(text)[:maxChars]
	cut := string(runes)
	if i := strings.LastIndex(cut, " "); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut)
}
