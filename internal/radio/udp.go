package radio

import (
	"context"
	"errors"
	"net"
	"os"
	"sync"
	"time"
)

// readPoll bounds how long a blocked read waits before rechecking ctx.
const readPoll = 250 * time.Millisecond

// UDP tunnels radio frames over a UDP socket, one datagram per frame. It
// stands in for the RF95 link on bench setups with no radio attached.
// The main node may start without a peer address and learns it from the
// first frame it receives, mirroring how a leaf announces itself on air.
type UDP struct {
	listenAddr string
	peerAddr   string

	conn *net.UDPConn

	mu   sync.Mutex
	peer *net.UDPAddr
}

func NewUDP(listenAddr, peerAddr string) *UDP {
	return &UDP{listenAddr: listenAddr, peerAddr: peerAddr}
}

func (u *UDP) Start() error {
	addr, err := net.ResolveUDPAddr("udp", u.listenAddr)
	if err != nil {
		return err
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return err
	}
	u.conn = conn
	if u.peerAddr != "" {
		peer, err := net.ResolveUDPAddr("udp", u.peerAddr)
		if err != nil {
			conn.Close()
			return err
		}
		u.mu.Lock()
		u.peer = peer
		u.mu.Unlock()
	}
	return nil
}

func (u *UDP) Stop() error {
	if u.conn == nil {
		return nil
	}
	return u.conn.Close()
}

func (u *UDP) Send(data []byte) error {
	if len(data) > MaxFrameLen {
		return ErrFrameTooLong
	}
	if u.conn == nil {
		return ErrClosed
	}
	u.mu.Lock()
	peer := u.peer
	u.mu.Unlock()
	if peer == nil {
		return ErrNoPeer
	}
	_, err := u.conn.WriteToUDP(data, peer)
	return err
}

func (u *UDP) Receive(ctx context.Context) (Packet, error) {
	if u.conn == nil {
		return Packet{}, ErrClosed
	}
	buf := make([]byte, MaxFrameLen)
	for {
		if err := ctx.Err(); err != nil {
			return Packet{}, err
		}
		if err := u.conn.SetReadDeadline(time.Now().Add(readPoll)); err != nil {
			return Packet{}, err
		}
		n, from, err := u.conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}
			if errors.Is(err, net.ErrClosed) {
				return Packet{}, ErrClosed
			}
			return Packet{}, err
		}
		u.mu.Lock()
		if u.peer == nil {
			u.peer = from
		}
		u.mu.Unlock()
		data := make([]byte, n)
		copy(data, buf[:n])
		return Packet{Data: data}, nil
	}
}
