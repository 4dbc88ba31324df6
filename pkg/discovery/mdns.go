package discovery

import (
	"context"
	"net"
	"sync"

	"github.com/enbility/zeroconf/v3"

	"github.com/netaudioctl/netaudio-go/pkg/log"
	"github.com/netaudioctl/netaudio-go/pkg/registry"
)

// MDNSBrowser implements Browser using zeroconf, adapting the teacher's
// per-service-type Browse-and-reconcile pattern to the four netaudio
// service types and a single shared registry instead of per-caller
// channels (spec.md §4.F: Added/Updated/Removed against one registry, not
// four independent result streams).
type MDNSBrowser struct {
	config BrowserConfig
	logger log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewMDNSBrowser creates an mDNS browser.
func NewMDNSBrowser(config BrowserConfig, logger log.Logger) *MDNSBrowser {
	if logger == nil {
		logger = log.NoopLogger{}
	}
	return &MDNSBrowser{config: config, logger: logger}
}

// Run browses all four netaudio service types concurrently, reconciling
// every Added/Removed event into reg, until ctx is cancelled or Stop is
// called. It blocks until all four browse loops exit.
func (b *MDNSBrowser) Run(ctx context.Context, reg *registry.Registry) error {
	ctx, cancel := context.WithCancel(ctx)
	b.mu.Lock()
	b.cancel = cancel
	b.mu.Unlock()

	var wg sync.WaitGroup
	for _, st := range netaudioServiceTypes {
		wg.Add(1)
		go func(st netaudioServiceType) {
			defer wg.Done()
			b.browseOne(ctx, st, reg)
		}(st)
	}
	wg.Wait()
	return nil
}

// Stop cancels any in-progress Run.
func (b *MDNSBrowser) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		b.cancel()
	}
}

func (b *MDNSBrowser) browserOptions() []zeroconf.ClientOption {
	var opts []zeroconf.ClientOption
	if b.config.Interface != "" {
		if iface, err := net.InterfaceByName(b.config.Interface); err == nil {
			opts = append(opts, zeroconf.SelectIfaces([]net.Interface{*iface}))
		}
	}
	if b.config.ConnectionFactory != nil {
		opts = append(opts, zeroconf.WithClientConnFactory(b.config.ConnectionFactory))
	}
	if b.config.InterfaceProvider != nil {
		opts = append(opts, zeroconf.WithClientInterfaceProvider(b.config.InterfaceProvider))
	}
	return opts
}

// browseOne runs one zeroconf.Browse call for a single netaudio service
// type and reconciles its Added/Removed entries into reg.
func (b *MDNSBrowser) browseOne(ctx context.Context, st netaudioServiceType, reg *registry.Registry) {
	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)
	opts := b.browserOptions()

	go func() {
		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				b.handleAdded(st, entry, reg)
			case entry, ok := <-removed:
				if !ok {
					continue
				}
				b.handleRemoved(st, entry, reg)
			case <-ctx.Done():
				return
			}
		}
	}()

	_ = zeroconf.Browse(ctx, st.DNSType, Domain, entries, removed, opts...)
}

// handleAdded extracts the plain fields spec.md §4.F's Added rule needs
// from a zeroconf entry and delegates to reconcileAdded.
func (b *MDNSBrowser) handleAdded(st netaudioServiceType, entry *zeroconf.ServiceEntry, reg *registry.Registry) {
	serverName := entry.HostName
	if serverName == "" {
		serverName = entry.Instance
	}

	var ipv4 net.IP
	if len(entry.AddrIPv4) > 0 {
		ipv4 = entry.AddrIPv4[0]
	}

	props := StringsToProperties(entry.Text)
	reconcileAdded(reg, serverName, ipv4, entry.Instance, entry.Port, st.Kind, props)

	b.logger.Log(log.Event{
		ServerName: serverName,
		Direction:  log.DirectionIn,
		Layer:      log.LayerService,
		Category:   log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityDevice,
			NewState: "service-added",
			Reason:   st.DNSType,
		},
	})
}

// handleRemoved extracts the plain fields spec.md §4.F's Removed rule
// needs from a zeroconf entry and delegates to reconcileRemoved.
func (b *MDNSBrowser) handleRemoved(st netaudioServiceType, entry *zeroconf.ServiceEntry, reg *registry.Registry) {
	serverName := entry.HostName
	if serverName == "" {
		serverName = entry.Instance
	}

	reconcileRemoved(reg, serverName, entry.Instance)

	b.logger.Log(log.Event{
		ServerName: serverName,
		Direction:  log.DirectionIn,
		Layer:      log.LayerService,
		Category:   log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityDevice,
			NewState: "service-removed",
			Reason:   st.DNSType,
		},
	})
}

var _ Browser = (*MDNSBrowser)(nil)
