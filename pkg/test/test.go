// Package test holds helpers shared by tests that start real listeners.
package test

import (
	"fmt"
	"net"
	"sync"
)

var (
	used = map[int]struct{}{}
	lock sync.Mutex
)

// RandomPort returns a free local port that has not been handed out before
// in this process.
func RandomPort() int {
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		panic(fmt.Sprintf("test: listen: %v", err))
	}
	port := l.Addr().(*net.TCPAddr).Port
	_ = l.Close()

	lock.Lock()
	if _, ok := used[port]; ok {
		lock.Unlock()
		return RandomPort()
	}
	used[port] = struct{}{}
	lock.Unlock()

	return port
}

// RandomAddr returns a localhost address with a free port.
func RandomAddr() string {
	return fmt.Sprintf("localhost:%d", RandomPort())
}
