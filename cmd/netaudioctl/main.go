// Command netaudioctl is a reference controller for the netaudio protocol:
// it discovers devices over mDNS, tracks their multicast status traffic,
// and exposes the device/channel/config/subscription operations spec.md §6
// lists as CLI-shape verbs.
//
// Usage:
//
//	netaudioctl [flags] <command> [args...]
//
// Flags:
//
//	-config string    Configuration file path (YAML, see pkg/config)
//	-interface string Restrict discovery/multicast to one network interface
//	-refresh          Bypass the state cache and force live discovery
//	-log-level string Log verbosity: debug, info, warn, error (default "info")
//
// Commands:
//
//	daemon                                 run discovery+multicast continuously
//	device list                            list known devices
//	device identify <server>               flash a device's identify LED
//	channel list <server> <rx|tx>          list a device's channels
//	channel set-name <server> <rx|tx> <n> <name>   rename a channel
//	channel reset-name <server> <rx|tx> <n>        reset a channel's name
//	config set-name <server> <name>        set a device's friendly name
//	config reset-name <server>             reset a device's friendly name
//	config set-encoding <server> <n>       set the device's encoding
//	config set-sample-rate <server> <hz>   set the device's sample rate
//	config set-latency <server> <ms>       set the device's rx latency
//	config set-gain <server> <input|output> <ch> <level>  set a channel's gain level
//	config enable-aes67 <server> <on|off>  toggle AES67 interop mode
//	subscription list <server>             list a device's subscriptions
//	subscription add <server> <rx> <txch> <txdev>   add an rx subscription
//	subscription remove <server> <rx>      clear an rx subscription
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/netaudioctl/netaudio-go/pkg/cache"
	"github.com/netaudioctl/netaudio-go/pkg/config"
	"github.com/netaudioctl/netaudio-go/pkg/control"
	"github.com/netaudioctl/netaudio-go/pkg/log"
	"github.com/netaudioctl/netaudio-go/pkg/registry"
)

func main() {
	configPath := flag.String("config", "", "configuration file path")
	iface := flag.String("interface", "", "restrict discovery/multicast to this network interface")
	refresh := flag.Bool("refresh", false, "bypass the state cache and force live discovery")
	logLevel := flag.String("log-level", "info", "log verbosity: debug, info, warn, error")
	flag.Parse()

	logger := log.NewSlogAdapter(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(*logLevel),
	})))

	cfg, err := config.Load(*configPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "netaudioctl: loading config: %v\n", err)
		os.Exit(1)
	}
	if *iface != "" {
		cfg.Interface = *iface
	}
	if *refresh {
		cfg.Refresh = true
	}

	store := newStore(*cfg)
	if closer, ok := store.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	reg := registry.New()
	client := control.New(reg, store, cfg, logger)

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: netaudioctl [flags] <command> [args...]")
		os.Exit(2)
	}

	if args[0] == "daemon" {
		runDaemon(reg, *cfg, logger)
		return
	}

	if err := dispatch(client, args); err != nil {
		fmt.Fprintf(os.Stderr, "netaudioctl: %v\n", err)
		os.Exit(1)
	}
}

// newStore builds the configured cache.Store: Redis when an address is
// given (spec.md §6's optional external hash-map store, for cross-process
// sharing), the local JSON file otherwise.
func newStore(cfg config.Config) cache.Store {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return cache.NewRedisStore(client, cfg.CacheTTL())
	}
	return cache.NewFileStore(cfg.CachePath(), cfg.CacheTTL())
}

// runDaemon runs the discovery/multicast/sweep loop until interrupted,
// the supplemented "server mdns" entry point (SPEC_FULL.md §11).
func runDaemon(reg *registry.Registry, cfg config.Config, logger log.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := control.RunDiscoveryDaemon(ctx, reg, cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "netaudioctl: daemon exited: %v\n", err)
		os.Exit(1)
	}
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// dispatch runs one CLI-shape command against an already-populated
// registry. In practice a caller normally runs `daemon` in the background
// and invokes these commands from a second process sharing state through
// the configured cache.Store, matching original_source's own split
// between its console commands and its long-running mDNS server.
func dispatch(c *control.Client, args []string) error {
	switch args[0] {
	case "device":
		return dispatchDevice(c, args[1:])
	case "channel":
		return dispatchChannel(c, args[1:])
	case "config":
		return dispatchConfig(c, args[1:])
	case "subscription":
		return dispatchSubscription(c, args[1:])
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func dispatchDevice(c *control.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("device: missing subcommand")
	}
	switch args[0] {
	case "list":
		for _, d := range c.ListDevices() {
			info := d.Info()
			fmt.Printf("%s\t%s\t%s\n", info.ServerName, info.IPv4, info.Name)
		}
		return nil
	case "identify":
		if len(args) != 2 {
			return fmt.Errorf("device identify: expected <server>")
		}
		return c.Identify(args[1])
	default:
		return fmt.Errorf("device: unknown subcommand %q", args[0])
	}
}

func dispatchChannel(c *control.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("channel: missing subcommand")
	}
	switch args[0] {
	case "list":
		if len(args) != 3 {
			return fmt.Errorf("channel list: expected <server> <rx|tx>")
		}
		channels, err := c.ListChannels(args[1], control.ChannelDirection(args[2]))
		if err != nil {
			return err
		}
		for _, ch := range channels {
			fmt.Printf("%d\t%s\n", ch.Number(), ch.Name())
		}
		return nil
	case "set-name":
		return requireArg(args[1:], 4, func(a []string) error {
			n, err := strconv.ParseUint(a[2], 10, 8)
			if err != nil {
				return err
			}
			return c.SetChannelName(a[0], control.ChannelDirection(a[1]), uint8(n), a[3])
		})
	case "reset-name":
		return requireArg(args[1:], 3, func(a []string) error {
			n, err := strconv.ParseUint(a[2], 10, 8)
			if err != nil {
				return err
			}
			return c.ResetChannelName(a[0], control.ChannelDirection(a[1]), uint8(n))
		})
	default:
		return fmt.Errorf("channel: unknown subcommand %q", args[0])
	}
}

func dispatchConfig(c *control.Client, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("config: missing subcommand and server")
	}
	sub, server, rest := args[0], args[1], args[2:]
	switch sub {
	case "set-name":
		return requireArg(rest, 1, func(a []string) error { return c.SetDeviceName(server, a[0]) })
	case "reset-name":
		return c.ResetDeviceName(server)
	case "set-encoding":
		return requireArg(rest, 1, func(a []string) error {
			n, err := strconv.ParseUint(a[0], 10, 8)
			if err != nil {
				return err
			}
			return c.SetEncoding(server, uint8(n))
		})
	case "set-sample-rate":
		return requireArg(rest, 1, func(a []string) error {
			n, err := strconv.ParseUint(a[0], 10, 32)
			if err != nil {
				return err
			}
			return c.SetSampleRate(server, uint32(n))
		})
	case "set-latency":
		return requireArg(rest, 1, func(a []string) error {
			n, err := strconv.Atoi(a[0])
			if err != nil {
				return err
			}
			return c.SetLatency(server, n)
		})
	case "enable-aes67":
		return requireArg(rest, 1, func(a []string) error { return c.EnableAES67(server, a[0] == "on") })
	case "set-gain":
		return requireArg(rest, 3, func(a []string) error {
			var direction control.GainDirection
			switch a[0] {
			case "input":
				direction = control.GainInput
			case "output":
				direction = control.GainOutput
			default:
				return fmt.Errorf("config set-gain: direction must be input or output, got %q", a[0])
			}
			ch, err := strconv.ParseUint(a[1], 10, 8)
			if err != nil {
				return err
			}
			level, err := strconv.ParseUint(a[2], 10, 8)
			if err != nil {
				return err
			}
			return c.SetGainLevel(server, uint8(ch), uint8(level), direction)
		})
	default:
		return fmt.Errorf("config: unknown subcommand %q", sub)
	}
}

func dispatchSubscription(c *control.Client, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("subscription: missing subcommand and server")
	}
	sub, server, rest := args[0], args[1], args[2:]
	switch sub {
	case "list":
		subs, err := c.ListSubscriptions(server)
		if err != nil {
			return err
		}
		for _, s := range subs {
			fmt.Printf("%s <- %s@%s\t%s\n", s.RXChannelName, s.TXChannelName, s.TXDeviceName, s.Status)
		}
		return nil
	case "add":
		return requireArg(rest, 3, func(a []string) error {
			rx, err := strconv.ParseUint(a[0], 10, 8)
			if err != nil {
				return err
			}
			return c.AddSubscription(server, uint8(rx), a[1], a[2])
		})
	case "remove":
		return requireArg(rest, 1, func(a []string) error {
			rx, err := strconv.ParseUint(a[0], 10, 8)
			if err != nil {
				return err
			}
			return c.RemoveSubscription(server, uint8(rx))
		})
	default:
		return fmt.Errorf("subscription: unknown subcommand %q", sub)
	}
}

func requireArg(args []string, n int, fn func([]string) error) error {
	if len(args) != n {
		return fmt.Errorf("expected %d argument(s), got %d", n, len(args))
	}
	return fn(args)
}
