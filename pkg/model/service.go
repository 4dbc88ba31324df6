package model

import "net"

// ServiceType identifies one of the four netaudio mDNS service roles
// (spec.md §3, §6).
type ServiceType uint8

const (
	ServiceAudioRoutingControl ServiceType = iota
	ServiceDeviceBroadcastControl
	ServiceControlMonitoring
	ServiceChannel
)

func (s ServiceType) String() string {
	switch s {
	case ServiceAudioRoutingControl:
		return "audio-routing-control"
	case ServiceDeviceBroadcastControl:
		return "device-broadcast-control"
	case ServiceControlMonitoring:
		return "control-monitoring"
	case ServiceChannel:
		return "channel-service"
	default:
		return "unknown"
	}
}

// ServiceEndpoint is a (type, ipv4, port) tuple advertised by a device
// over mDNS, with its raw TXT property map retained for later lookups.
type ServiceEndpoint struct {
	InstanceName string
	Type         ServiceType
	IPv4         net.IP
	Port         int
	Properties   map[string]string
}
