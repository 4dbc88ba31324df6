package registry

import (
	"sync"
	"time"

	"github.com/netaudioctl/netaudio-go/pkg/model"
)

// DefaultTTL is the freshness window a device is considered live for
// without a refreshing event (discovery update, heartbeat, any multicast
// traffic), per spec.md §4.G.
const DefaultTTL = 5 * time.Second

// Registry is the single-owner, mutex-guarded map from mDNS server name
// to *model.Device, grounded on the teacher's subscription.Manager
// map+index idiom.
type Registry struct {
	mu      sync.RWMutex
	devices map[string]*model.Device
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{devices: make(map[string]*model.Device)}
}

// GetOrCreate returns the existing device for serverName, creating and
// storing one if none exists yet.
func (r *Registry) GetOrCreate(serverName string) *model.Device {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d, ok := r.devices[serverName]; ok {
		return d
	}
	d := model.NewDevice(serverName)
	r.devices[serverName] = d
	return d
}

// Get returns the device for serverName, if known.
func (r *Registry) Get(serverName string) (*model.Device, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.devices[serverName]
	return d, ok
}

// GetByIPv4 returns the first device whose observed IPv4 matches addr,
// used by pkg/multicast to resolve a datagram's source address to a
// device without a secondary index (device counts are small: tens, not
// thousands, per spec.md §5 scale assumptions).
func (r *Registry) GetByIPv4(addr string) (*model.Device, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.devices {
		if ip := d.IPv4(); ip != nil && ip.String() == addr {
			return d, true
		}
	}
	return nil, false
}

// Remove deletes a device from the registry, closing its socket pool.
// It reports whether a device was present.
func (r *Registry) Remove(serverName string) bool {
	r.mu.Lock()
	d, ok := r.devices[serverName]
	if ok {
		delete(r.devices, serverName)
	}
	r.mu.Unlock()

	if ok {
		d.ClosePool()
	}
	return ok
}

// List returns a snapshot slice of every known device.
func (r *Registry) List() []*model.Device {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*model.Device, 0, len(r.devices))
	for _, d := range r.devices {
		result = append(result, d)
	}
	return result
}

// Len returns the number of known devices.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.devices)
}

// Sweep removes every device whose freshness TTL has elapsed (using
// DefaultTTL unless the device extended its own, e.g. via a heartbeat),
// closing each removed device's socket pool, and returns the removed
// server names.
func (r *Registry) Sweep() []string {
	r.mu.Lock()
	var stale []*model.Device
	var names []string
	for name, d := range r.devices {
		if d.Stale(DefaultTTL) {
			stale = append(stale, d)
			names = append(names, name)
			delete(r.devices, name)
		}
	}
	r.mu.Unlock()

	for _, d := range stale {
		d.ClosePool()
	}
	return names
}
