package api

import (
	"errors"
	"net/http"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
	"github.com/kloudinfotech/helpdesk-console/internal/helpdeskapi"
	"github.com/kloudinfotech/helpdesk-console/internal/pkg/httputil"
	"github.com/kloudinfotech/helpdesk-console/internal/pkg/logger"
	"github.com/kloudinfotech/helpdesk-console/internal/service/access"
	"github.com/kloudinfotech/helpdesk-console/internal/service/automation"
	"github.com/kloudinfotech/helpdesk-console/internal/service/domainrules"
	"github.com/kloudinfotech/helpdesk-console/internal/service/roles"
	"github.com/kloudinfotech/helpdesk-console/internal/service/sso"
	"github.com/kloudinfotech/helpdesk-console/internal/service/upgrade"
	"github.com/kloudinfotech/helpdesk-console/internal/session"
)

// respondError maps a service error onto the console's error envelope.
// 4xx messages are the validation text and safe to show; upstream and
// internal failures get a generic message and are logged. Requests the
// client already abandoned get no response and no log line.
func (h *Handlers) respondError(w http.ResponseWriter, r *http.Request, err error) {
	if httputil.Abandoned(r, err) {
		return
	}

	var denied *access.DeniedError
	if errors.As(err, &denied) {
		h.respondUpgrade(w, denied.Feature)
		return
	}

	switch {
	case errors.Is(err, domainrules.ErrValidation),
		errors.Is(err, domainrules.ErrUnknownList),
		errors.Is(err, automation.ErrValidation),
		errors.Is(err, sso.ErrValidation),
		errors.Is(err, sso.ErrNotConfigured),
		errors.Is(err, roles.ErrValidation),
		errors.Is(err, upgrade.ErrValidation),
		errors.Is(err, session.ErrInvalidTicketID):
		httputil.ErrorCode(w, http.StatusBadRequest, "validation", err.Error(), nil)

	case errors.Is(err, sso.ErrInvalidCredentials):
		httputil.ErrorCode(w, http.StatusBadRequest, "invalid_credentials", err.Error(), nil)

	case errors.Is(err, domainrules.ErrDuplicate):
		httputil.ErrorCode(w, http.StatusConflict, "duplicate", err.Error(), nil)

	case errors.Is(err, automation.ErrRunInProgress):
		httputil.ErrorCode(w, http.StatusConflict, "run_in_progress", err.Error(), nil)

	case errors.Is(err, roles.ErrSystemRole):
		httputil.ErrorCode(w, http.StatusConflict, "system_role", err.Error(), nil)

	case errors.Is(err, automation.ErrNotFound),
		errors.Is(err, access.ErrUnknownPath),
		errors.Is(err, sso.ErrUnknownProvider),
		errors.Is(err, helpdeskapi.ErrNotFound):
		httputil.NotFound(w, err.Error())

	case errors.Is(err, helpdeskapi.ErrUnauthorized):
		httputil.ErrorCode(w, http.StatusUnauthorized, "session_expired", "your helpdesk session has expired, please sign in again", nil)

	case errors.Is(err, helpdeskapi.ErrNetwork):
		httputil.BadGateway(w, err)

	default:
		if apiErr, ok := helpdeskapi.Rejected(err); ok {
			logger.Info("helpdesk api rejected request", "path", r.URL.Path, "status", apiErr.Status)
			msg := apiErr.Message
			if msg == "" {
				msg = "the helpdesk rejected the request"
			}
			httputil.ErrorCode(w, http.StatusBadRequest, "rejected", msg, nil)
			return
		}
		httputil.InternalError(w, err)
	}
}

// respondUpgrade answers 402 with the upgrade prompt for feature.
func (h *Handlers) respondUpgrade(w http.ResponseWriter, feature domain.FeatureKey) {
	httputil.JSON(w, http.StatusPaymentRequired, h.navigator.Prompt(feature))
}
