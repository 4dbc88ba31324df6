package control

import (
	"context"
	"sync"
	"time"

	"github.com/netaudioctl/netaudio-go/pkg/config"
	"github.com/netaudioctl/netaudio-go/pkg/discovery"
	"github.com/netaudioctl/netaudio-go/pkg/log"
	"github.com/netaudioctl/netaudio-go/pkg/multicast"
	"github.com/netaudioctl/netaudio-go/pkg/registry"
)

// sweepInterval sets how often RunDiscoveryDaemon checks for devices whose
// heartbeat-derived TTL has elapsed (spec.md §4.G's last bullet). A sweep
// well inside registry.DefaultTTL keeps a dropped device's removal timely
// without busy-looping.
const sweepInterval = 1 * time.Second

// RunDiscoveryDaemon is the long-running entry point original_source
// exposes as its "server mdns" console command (spec.md §6): it starts the
// mDNS browser (pkg/discovery), the three multicast listeners
// (pkg/multicast), and a ticker that sweeps stale devices out of reg, all
// sharing reg and all stopped by cancelling ctx. It blocks until every
// component has exited.
func RunDiscoveryDaemon(ctx context.Context, reg *registry.Registry, cfg config.Config, logger log.Logger) error {
	if logger == nil {
		logger = log.NoopLogger{}
	}

	browserConfig := discovery.DefaultBrowserConfig()
	browserConfig.Interface = cfg.Interface
	browser := discovery.NewMDNSBrowser(browserConfig, logger)

	monitorConfig := multicast.DefaultConfig()
	monitorConfig.Interface = cfg.Interface
	monitor := multicast.NewMonitor(monitorConfig, reg, logger)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		if err := browser.Run(ctx, reg); err != nil {
			logger.Log(log.Event{
				Direction: log.DirectionIn,
				Layer:     log.LayerService,
				Category:  log.CategoryError,
				Error:     &log.ErrorEventData{Message: err.Error(), Context: "mdns browser"},
			})
		}
	}()
	go func() {
		defer wg.Done()
		if err := monitor.Run(ctx); err != nil {
			logger.Log(log.Event{
				Direction: log.DirectionIn,
				Layer:     log.LayerService,
				Category:  log.CategoryError,
				Error:     &log.ErrorEventData{Message: err.Error(), Context: "multicast monitor"},
			})
		}
	}()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil
		case <-ticker.C:
			for _, name := range reg.Sweep() {
				logger.Log(log.Event{
					ServerName: name,
					Direction:  log.DirectionIn,
					Layer:      log.LayerService,
					Category:   log.CategoryState,
					StateChange: &log.StateChangeEvent{
						Entity:   log.StateEntityDevice,
						NewState: "removed-stale",
					},
				})
			}
		}
	}
}
