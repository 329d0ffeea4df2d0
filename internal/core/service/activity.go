package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/zanith/zanith-api/internal/core/ports"
)

func publishActivity(ctx context.Context, p ports.ActivityPublisher, log zerolog.Logger, ev ports.ActivityEvent) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, ev); err != nil {
		log.Warn().Err(err).Str("kind", ev.Kind).Str("song", ev.AudioID).Msg("activity publish failed")
	}
}
