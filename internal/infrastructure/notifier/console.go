package notifier

import (
	"context"
	"fmt"
	"io"
	"sync"

	"deal_radar/internal/domain"
	"deal_radar/internal/domain/entity"
	"deal_radar/pkg/errcodes"
)

// Console prints messages instead of delivering them, for dry runs.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Send(_ context.Context, message entity.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := fmt.Fprintf(c.w, "[%s] %s\n\n", message.Kind, message.Text); err != nil {
		return domain.WrapError(err, errcodes.NotificationFailed, "write message")
	}

	return nil
}
