package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// campaignCloser is the slice of the campaign service the worker needs.
type campaignCloser interface {
	CloseExpired(ctx context.Context) (int64, error)
}

// CampaignCloser runs the nightly sweep that closes campaigns past their end
// date. The sweep also runs once at startup so a restart never leaves expired
// campaigns open until midnight.
type CampaignCloser struct {
	campaigns campaignCloser
	cron      *cron.Cron
}

// NewCampaignCloser creates a new CampaignCloser.
func NewCampaignCloser(campaigns campaignCloser) *CampaignCloser {
	return &CampaignCloser{
		campaigns: campaigns,
		cron:      cron.New(),
	}
}

// Start schedules the nightly run and fires an immediate catch-up sweep.
func (w *CampaignCloser) Start() error {
	if _, err := w.cron.AddFunc("0 0 * * *", w.run); err != nil {
		return err
	}
	w.cron.Start()
	go w.run()

	log.Info().Msg("Campaign closer worker started")
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (w *CampaignCloser) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	log.Info().Msg("Campaign closer worker stopped")
}

func (w *CampaignCloser) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := w.campaigns.CloseExpired(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to close expired campaigns")
		return
	}
	if n > 0 {
		log.Info().Int64("closed", n).Msg("Closed expired campaigns")
	}
}
