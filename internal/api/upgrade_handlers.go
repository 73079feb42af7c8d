package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"

	"github.com/kloudinfotech/helpdesk-console/internal/auth"
	"github.com/kloudinfotech/helpdesk-console/internal/domain"
	"github.com/kloudinfotech/helpdesk-console/internal/helpdeskapi"
	"github.com/kloudinfotech/helpdesk-console/internal/pkg/httputil"
	"github.com/kloudinfotech/helpdesk-console/internal/pkg/logger"
	"github.com/kloudinfotech/helpdesk-console/internal/render"
	"github.com/kloudinfotech/helpdesk-console/internal/service/upgrade"
)

// maxUpgradeForm leaves room for the form fields around the screenshot.
const maxUpgradeForm = upgrade.MaxScreenshotBytes + 1<<20

const upgradeSubmitted = "Thanks! Your payment confirmation was sent. Your plan changes once it is approved."

// readUpgradeRequest parses the multipart confirmation form.
func readUpgradeRequest(w http.ResponseWriter, r *http.Request) (domain.UpgradeRequest, error) {
	var req domain.UpgradeRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxUpgradeForm)
	if err := r.ParseMultipartForm(maxUpgradeForm); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, fmt.Errorf("%w: screenshot exceeds 5 MB", upgrade.ErrValidation)
		}
		return req, fmt.Errorf("%w: %v", upgrade.ErrValidation, err)
	}
	req.TransactionID = r.FormValue("transactionId")

	file, hdr, err := r.FormFile("screenshot")
	if errors.Is(err, http.ErrMissingFile) {
		return req, nil
	}
	if err != nil {
		return req, fmt.Errorf("%w: %v", upgrade.ErrValidation, err)
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, upgrade.MaxScreenshotBytes+1))
	if err != nil {
		return req, fmt.Errorf("read screenshot: %w", err)
	}
	req.Screenshot = &domain.Attachment{
		Filename:    hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
		Data:        data,
	}
	return req, nil
}

// SubmitUpgradeRequest forwards a manual payment confirmation.
//
//	POST /api/upgrade/requests (multipart: transactionId, screenshot)
func (h *Handlers) SubmitUpgradeRequest(w http.ResponseWriter, r *http.Request) {
	req, err := readUpgradeRequest(w, r)
	if err == nil {
		err = h.upgrade.Submit(r.Context(), req)
	}
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.recordAudit(r, domain.AuditUpgradeRequested, strings.TrimSpace(req.TransactionID), "")
	httputil.Accepted(w, map[string]string{"status": "submitted", "message": upgradeSubmitted})
}

// ConfirmUpgradeForm is the HTML form variant of SubmitUpgradeRequest. It
// re-renders the upgrade page with the outcome.
//
//	POST /upgrade/confirm
func (h *Handlers) ConfirmUpgradeForm(w http.ResponseWriter, r *http.Request) {
	req, err := readUpgradeRequest(w, r)
	if err == nil {
		err = h.upgrade.Submit(r.Context(), req)
	}
	if httputil.Abandoned(r, err) {
		return
	}

	notice := upgradeSubmitted
	status := http.StatusOK
	switch {
	case err == nil:
		h.recordAudit(r, domain.AuditUpgradeRequested, strings.TrimSpace(req.TransactionID), "")
	case errors.Is(err, upgrade.ErrValidation):
		notice = err.Error()
		status = http.StatusBadRequest
	case errors.Is(err, helpdeskapi.ErrUnauthorized):
		notice = "Your session has expired. Please sign in again."
		status = http.StatusUnauthorized
	case errors.Is(err, helpdeskapi.ErrNetwork):
		logger.Error("upgrade: payment service unreachable", "error", err)
		notice = "We could not reach the payment service. Please try again."
		status = http.StatusBadGateway
	default:
		if apiErr, ok := helpdeskapi.Rejected(err); ok {
			logger.Info("upgrade: confirmation rejected", "status", apiErr.Status)
			notice = apiErr.Message
			if notice == "" {
				notice = "The payment service did not accept this confirmation."
			}
			status = http.StatusBadRequest
			break
		}
		logger.Error("upgrade: confirmation failed", "error", err)
		notice = "Something went wrong. Please try again."
		status = http.StatusInternalServerError
	}
	h.writeUpgradePage(w, r, status, notice)
}

// UpgradePage renders the plan comparison.
//
//	GET /upgrade
func (h *Handlers) UpgradePage(w http.ResponseWriter, r *http.Request) {
	h.writeUpgradePage(w, r, http.StatusOK, "")
}

func (h *Handlers) writeUpgradePage(w http.ResponseWriter, r *http.Request, status int, notice string) {
	plan := domain.PlanBasic
	if s := auth.FromContext(r.Context()); s != nil {
		plan = s.User.Plan
	}
	page, err := h.pages.Upgrade(render.UpgradePage{
		Plan:      plan,
		CSRFToken: csrf.Token(r),
		Notice:    notice,
	})
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	writeHTML(w, status, page)
}
