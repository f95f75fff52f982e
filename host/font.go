package host

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/quill-ui/quill-host/fontutil"
)

// maxFontSize caps a downloaded font file at 64 MiB.
const maxFontSize = 64 << 20

// RegisterFont downloads the font at url and registers it with the engine's
// process-wide font registry.
//
// Any transport failure, including a non-2xx response, fails the call with
// nothing registered. Malformed font data fails with whatever error the
// engine signals, unwrapped.
func (h *Host) RegisterFont(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("fetch font %s: %w", url, err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch font %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("fetch font %s: unexpected status %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFontSize+1))
	if err != nil {
		return fmt.Errorf("fetch font %s: %w", url, err)
	}
	if len(data) > maxFontSize {
		return fmt.Errorf("fetch font %s: larger than %d bytes", url, maxFontSize)
	}

	return h.RegisterFontData(data)
}

// RegisterFontData registers in-memory font bytes with the engine's font
// registry.
func (h *Host) RegisterFontData(data []byte) error {
	if info, err := fontutil.Probe(data); err == nil {
		h.log.Debug("registering font",
			zap.String("family", info.Family),
			zap.String("format", info.Format.String()),
			zap.Int("bytes", len(data)))
	}
	return h.eng.RegisterFontFromMemory(data)
}
