package extract

import (
	"context"
	"fmt"
	"path"
	"strings"

	domain "github.com/bryanwahyu/pitchlens/internal/domain/pitch"
)

// Service turns a stored document reference into raw text. Only plain-text
// formats are supported; binary formats (pdf, docx) sit behind the same
// port but are rejected here.
type Service struct {
	Vault domain.Vault
}

func New(vault domain.Vault) *Service {
	return &Service{Vault: vault}
}

var supportedExts = map[string]bool{
	".txt":  true,
	".md":   true,
	".json": true,
}

// Extract fetches the referenced object and returns its text. A missing
// reference yields ErrNotFound; a format outside the supported set yields
// ErrUnsupportedFormat.
func (s *Service) Extract(ctx context.Context, ref string) (string, error) {
	ext := strings.ToLower(path.Ext(ref))
	if !supportedExts[ext] {
		return "", fmt.Errorf("document %s: %w (supported: txt, md, json)", ref, domain.ErrUnsupportedFormat)
	}

	data, err := s.Vault.Fetch(ctx, ref)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
