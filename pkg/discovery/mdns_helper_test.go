package discovery_test

import (
	"net"
	"testing"

	"github.com/enbility/zeroconf/v3/mocks"
	"github.com/stretchr/testify/mock"

	"github.com/netaudioctl/netaudio-go/pkg/discovery"
)

// testBrowserConfig returns a BrowserConfig with mock connections, so
// tests never bind to a real network interface.
func testBrowserConfig(t *testing.T) discovery.BrowserConfig {
	factory := mocks.NewMockConnectionFactory(t)
	provider := mocks.NewMockInterfaceProvider(t)

	provider.EXPECT().MulticastInterfaces().Return([]net.Interface{
		{Index: 1, Name: "lo0", Flags: net.FlagUp | net.FlagMulticast},
	}).Maybe()

	ipv4Conn := mocks.NewMockPacketConn(t)
	ipv6Conn := mocks.NewMockPacketConn(t)
	setupMockPacketConn(ipv4Conn)
	setupMockPacketConn(ipv6Conn)

	factory.EXPECT().CreateIPv4Conn(mock.Anything).Return(ipv4Conn, nil).Maybe()
	factory.EXPECT().CreateIPv6Conn(mock.Anything).Return(ipv6Conn, nil).Maybe()

	return discovery.BrowserConfig{
		ConnectionFactory: factory,
		InterfaceProvider: provider,
	}
}

// setupMockPacketConn configures a mock packet connection with basic
// expectations: join/leave succeed, writes succeed, reads return nothing
// (ctx cancellation is what stops the browse in tests).
func setupMockPacketConn(conn *mocks.MockPacketConn) {
	conn.EXPECT().JoinGroup(mock.Anything, mock.Anything).Return(nil).Maybe()
	conn.EXPECT().LeaveGroup(mock.Anything, mock.Anything).Return(nil).Maybe()
	conn.EXPECT().WriteTo(mock.Anything, mock.Anything, mock.Anything).Return(0, nil).Maybe()
	conn.EXPECT().ReadFrom(mock.Anything).RunAndReturn(func(b []byte) (int, int, net.Addr, error) {
		return 0, 0, nil, nil
	}).Maybe()
	conn.EXPECT().Close().Return(nil).Maybe()
	conn.EXPECT().SetMulticastTTL(mock.Anything).Return(nil).Maybe()
	conn.EXPECT().SetMulticastHopLimit(mock.Anything).Return(nil).Maybe()
	conn.EXPECT().SetMulticastInterface(mock.Anything).Return(nil).Maybe()
}
