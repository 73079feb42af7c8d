package helpdeskapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// SubmitUpgradeRequest posts a payment confirmation as multipart form data.
func (c *Client) SubmitUpgradeRequest(ctx context.Context, req domain.UpgradeRequest) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("transactionId", req.TransactionID); err != nil {
		return fmt.Errorf("encode upgrade request: %w", err)
	}
	if req.Screenshot != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="screenshot"; filename="%s"`,
			quoteEscaper.Replace(req.Screenshot.Filename)))
		h.Set("Content-Type", req.Screenshot.ContentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			return fmt.Errorf("encode upgrade request: %w", err)
		}
		if _, err := io.Copy(part, bytes.NewReader(req.Screenshot.Data)); err != nil {
			return fmt.Errorf("encode upgrade request: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("encode upgrade request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint("/api/payments/upgrade-request"), bytes.NewReader(buf.Bytes()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	return c.send(httpReq, nil)
}
