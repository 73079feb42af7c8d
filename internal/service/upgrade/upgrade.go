// Package upgrade handles manual payment confirmations for the pro plan.
package upgrade

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
)

// MaxScreenshotBytes caps the optional payment screenshot.
const MaxScreenshotBytes = 5 << 20

// ErrValidation is returned when a request fails local validation.
var ErrValidation = errors.New("invalid upgrade request")

// Repository forwards confirmations to the payments API.
type Repository interface {
	SubmitUpgradeRequest(ctx context.Context, req domain.UpgradeRequest) error
}

// Service validates and forwards upgrade requests.
type Service struct {
	repo Repository
}

// NewService creates an upgrade service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Prepare trims the transaction ID and checks the screenshot. The content
// type is sniffed when the upload did not declare one.
func Prepare(req domain.UpgradeRequest) (domain.UpgradeRequest, error) {
	req.TransactionID = strings.TrimSpace(req.TransactionID)
	if req.TransactionID == "" {
		return req, fmt.Errorf("%w: transaction ID is required", ErrValidation)
	}
	if req.Screenshot == nil || len(req.Screenshot.Data) == 0 {
		req.Screenshot = nil
		return req, nil
	}
	if req.Screenshot.Size() > MaxScreenshotBytes {
		return req, fmt.Errorf("%w: screenshot exceeds 5 MB", ErrValidation)
	}
	ct := req.Screenshot.ContentType
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(req.Screenshot.Data)
	}
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if !strings.HasPrefix(ct, "image/") && ct != "application/pdf" {
		return req, fmt.Errorf("%w: screenshot must be an image or PDF", ErrValidation)
	}
	req.Screenshot.ContentType = ct
	if req.Screenshot.Filename == "" {
		req.Screenshot.Filename = "screenshot"
	}
	return req, nil
}

// Submit validates and forwards a confirmation. The session plan is left
// untouched; it changes only after the payment is approved and the user
// signs in again.
func (s *Service) Submit(ctx context.Context, req domain.UpgradeRequest) error {
	req, err := Prepare(req)
	if err != nil {
		return err
	}
	if err := s.repo.SubmitUpgradeRequest(ctx, req); err != nil {
		return fmt.Errorf("submit upgrade request: %w", err)
	}
	return nil
}
