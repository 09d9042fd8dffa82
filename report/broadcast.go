package report

import (
	"context"
	"fmt"
	"net"

	"github.com/sirupsen/logrus"
)

// DefaultBroadcastAddr is the limited broadcast address used by the CLI.
const DefaultBroadcastAddr = "255.255.255.255:65432"

// Broadcast sends each report as one UDP datagram "<id>\t<left>\t<right>".
type Broadcast struct {
	conn net.PacketConn
	addr net.Addr
	fail *failure
}

// NewBroadcast opens an unconnected UDP socket with broadcasting enabled
// that sends to addr.
func NewBroadcast(addr string, opts ...Option) (*Broadcast, error) {
	o := applyOptions(opts)

	raddr, err := net.ResolveUDPAddr("udp4", addr)
	if err != nil {
		return nil, fmt.Errorf("resolve broadcast address %q: %w", addr, err)
	}

	lc := net.ListenConfig{Control: enableBroadcast}

	conn, err := lc.ListenPacket(context.Background(), "udp4", ":0")
	if err != nil {
		return nil, fmt.Errorf("open broadcast socket: %w", err)
	}

	return &Broadcast{
		conn: conn,
		addr: raddr,
		fail: &failure{sink: "broadcast", logger: o.logger},
	}, nil
}

// Report sends one datagram. Send errors are logged once.
func (b *Broadcast) Report(id string, left, right float64) {
	msg := id + "\t" + formatValues(left, right)

	if _, err := b.conn.WriteTo([]byte(msg), b.addr); err != nil {
		b.fail.record(err, logrus.Fields{"addr": b.addr.String()})
	}
}

// Addr returns the destination address.
func (b *Broadcast) Addr() net.Addr { return b.addr }

// Failures returns the number of datagrams that could not be sent.
func (b *Broadcast) Failures() int { return b.fail.Failures() }

// Close closes the socket.
func (b *Broadcast) Close() error {
	return b.conn.Close()
}
