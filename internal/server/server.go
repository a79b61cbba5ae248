package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const DefaultPort = 8080

// ParsePort returns the port given on the command line, or DefaultPort with
// a warning written to w when arg is not a usable port.
func ParsePort(arg string, w io.Writer) int {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return DefaultPort
	}
	p, err := strconv.Atoi(arg)
	if err != nil || p <= 0 || p > 65535 {
		fmt.Fprintf(w, "Invalid port number. Using default port %d.\n", DefaultPort)
		return DefaultPort
	}
	return p
}

// ResolveLocalAddress returns the address of the interface used for outbound
// traffic, or 127.0.0.1. No packet is sent.
func ResolveLocalAddress() string {
	return localAddressVia("8.8.8.8:80")
}

func localAddressVia(target string) string {
	conn, err := net.Dial("udp", target)
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()
	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || addr.IP == nil {
		return "127.0.0.1"
	}
	return addr.IP.String()
}

type Server struct {
	Dir  string
	Port int
	Out  io.Writer

	localAddr func() string
}

func New(dir string, port int, out io.Writer) *Server {
	return &Server{
		Dir:       dir,
		Port:      port,
		Out:       out,
		localAddr: ResolveLocalAddress,
	}
}

func (s *Server) Handler() http.Handler {
	return http.FileServer(http.Dir(s.Dir))
}

// ListenAndServe binds :Port and serves until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.Port))
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", s.Port, err)
	}
	return s.Serve(ctx, ln)
}

// Serve prints the access banner and serves on ln until ctx is canceled,
// then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	port := s.Port
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		port = addr.Port
	}
	s.printBanner(port)

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("[serve] Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	fmt.Fprintln(s.Out, "\nServer stopped.")
	return nil
}

func (s *Server) printBanner(port int) {
	w := s.Out
	rule := strings.Repeat("=", 40)
	fmt.Fprintln(w, "POE Harvest Calculator Server")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Server started successfully!")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Local access:")
	fmt.Fprintf(w, "  http://localhost:%d\n", port)
	fmt.Fprintf(w, "  http://127.0.0.1:%d\n", port)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Network access:")
	fmt.Fprintf(w, "  http://%s:%d\n", s.localAddr(), port)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Press Ctrl+C to stop the server")
	fmt.Fprintln(w, rule)
}
