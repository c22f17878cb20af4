// Package warclock runs the periodic sweeps that keep the war state
// moving between requests: season phase sync, overdue siege resolution,
// stress decay, territory neglect damage and diplomacy expiry.
package warclock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	allianceservices "colonywars/internal/alliance/services"
	colonyservices "colonywars/internal/colony/services"
	seasonservices "colonywars/internal/season/services"
	siegeservices "colonywars/internal/siege/services"
	territoryservices "colonywars/internal/territory/services"
	"colonywars/pkg/config"

	"github.com/robfig/cron/v3"
)

// Clock schedules the war sweeps on a shared cron runner.
type Clock struct {
	cron        *cron.Cron
	seasons     *seasonservices.Service
	sieges      *siegeservices.Service
	colonies    *colonyservices.Service
	territories *territoryservices.Service
	alliances   *allianceservices.Service
	config      *config.WarConfig
}

// New creates a war clock wired to the services it sweeps.
func New(seasons *seasonservices.Service, sieges *siegeservices.Service, colonies *colonyservices.Service, territories *territoryservices.Service, alliances *allianceservices.Service, cfg *config.WarConfig) *Clock {
	return &Clock{
		cron:        cron.New(cron.WithSeconds()),
		seasons:     seasons,
		sieges:      sieges,
		colonies:    colonies,
		territories: territories,
		alliances:   alliances,
		config:      cfg,
	}
}

// sweepTimeout bounds how long any single sweep may hold its context.
const sweepTimeout = 5 * time.Minute

// Start registers the sweep schedules and starts the cron runner.
func (c *Clock) Start() error {
	schedules := []struct {
		name string
		spec string
		run  func(context.Context) error
	}{
		// Phase sync, siege resolution and pre-registration draining are
		// cheap and time-sensitive.
		{"season-phase-sync", "0 * * * * *", c.syncSeasonPhase},
		{"preregistration-activation", "20 * * * * *", c.activatePreRegistrations},
		{"siege-auto-resolve", "30 */5 * * * *", c.resolveOverdueSieges},
		// Housekeeping sweeps run hourly; stress decay follows its
		// configured interval.
		{"territory-neglect", "0 15 * * * *", c.sweepNeglect},
		{"diplomacy-expiry", "0 30 * * * *", c.sweepDiplomacy},
		{"stress-decay", fmt.Sprintf("@every %s", c.config.StressDecayInterval), c.decayStress},
	}

	for _, s := range schedules {
		name, run := s.name, s.run
		_, err := c.cron.AddFunc(s.spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
			defer cancel()
			if err := run(ctx); err != nil {
				slog.ErrorContext(ctx, "War clock sweep failed", "sweep", name, "error", err)
			}
		})
		if err != nil {
			return err
		}
	}

	c.cron.Start()
	slog.Info("War clock started", "sweeps", len(schedules))
	return nil
}

// Stop halts the cron runner and waits for running sweeps to finish.
func (c *Clock) Stop() {
	ctx := c.cron.Stop()
	<-ctx.Done()
	slog.Info("War clock stopped")
}

func (c *Clock) syncSeasonPhase(ctx context.Context) error {
	return c.seasons.SyncPhase(ctx)
}

func (c *Clock) activatePreRegistrations(ctx context.Context) error {
	_, err := c.seasons.SweepPreRegistrations(ctx)
	return err
}

func (c *Clock) resolveOverdueSieges(ctx context.Context) error {
	resolved, err := c.sieges.ResolveOverdue(ctx)
	if err != nil {
		return err
	}
	if resolved > 0 {
		slog.InfoContext(ctx, "Overdue sieges resolved", "count", resolved)
	}
	return nil
}

func (c *Clock) sweepNeglect(ctx context.Context) error {
	_, err := c.territories.SweepNeglect(ctx)
	return err
}

func (c *Clock) sweepDiplomacy(ctx context.Context) error {
	return c.alliances.SweepDiplomacy(ctx)
}

func (c *Clock) decayStress(ctx context.Context) error {
	_, err := c.colonies.DecayStress(ctx)
	return err
}
