package cache

import (
	"context"
	"time"

	"github.com/tu-usuario/resto-admin/internal/application/reports"
)

var _ reports.ReportCache = (*Noop)(nil)

// Noop implementación nula del cache de reportes: todo Get es miss y Set no
// hace nada. Se usa cuando REDIS_ADDR no está configurado.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (*Noop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (*Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }
