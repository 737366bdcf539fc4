package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jack-barr3tt/stk-engine/src/common/types"
)

// PostAugment runs one augmentation pass over a posted inspection history page.
func (s *APIServer) PostAugment(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return badRequest(c, "body must be an HTML document")
	}

	snapshot := types.PageSnapshot{
		ID:         c.Get("X-Snapshot-Id"),
		URL:        c.Get(fiber.HeaderReferer),
		HTML:       string(body),
		CapturedAt: time.Now(),
	}

	out, err := s.Augmenter.Process(c.Context(), snapshot)
	if err != nil {
		s.Logger.Errorw("failed to augment page", "error", err, "snapshot", snapshot.ID)
		return internalError(c, "Augmentation error", "Failed to augment page", err)
	}

	if out.ChartID != "" {
		c.Set("X-Chart-Id", out.ChartID)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(out.HTML)
}
