package server

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"os"
	"sync"
)

// configureTLS sets up TLS configuration based on the mode
func (s *Server) configureTLS(httpServer *http.Server) error {
	addr := httpServer.Addr

	switch s.TLSConfig.Mode {
	case "server":
		fmt.Printf("Starting server with HTTPS (server-only TLS) on https://%s\n", addr)
		return s.applyTLSConfig(httpServer, false)
	case "mutual":
		fmt.Printf("Starting server with mTLS (mutual TLS) on https://%s\n", addr)
		return s.applyTLSConfig(httpServer, true)
	case "disabled":
		fmt.Printf("Starting server on http://%s\n", addr)
		return nil
	default:
		return fmt.Errorf("invalid TLS mode: %s (must be 'disabled', 'server', or 'mutual')", s.TLSConfig.Mode)
	}
}

// applyTLSConfig builds the tls.Config and starts the reload watcher
func (s *Server) applyTLSConfig(httpServer *http.Server, mutual bool) error {
	reloader, err := newCertReloader(s.TLSConfig.CertFile, s.TLSConfig.KeyFile)
	if err != nil {
		return fmt.Errorf("failed to set up TLS: %w", err)
	}

	tlsConfig := &tls.Config{
		MinVersion:     s.minTLSVersion(),
		GetCertificate: reloader.GetCertificate,
	}

	if mutual {
		caCertPool, err := s.loadCACertificatePool()
		if err != nil {
			return err
		}
		tlsConfig.ClientCAs = caCertPool
		tlsConfig.ClientAuth = tls.RequireAndVerifyClientCert
	}

	httpServer.TLSConfig = tlsConfig

	if s.TLSConfig.AutoReload.Enabled {
		watcher, err := NewCertWatcher(
			s.TLSConfig.CertFile,
			s.TLSConfig.KeyFile,
			s.TLSConfig.AutoReload.DebounceDelay,
			func() {
				if err := reloader.Reload(); err != nil {
					s.Logger.LogError(err, "Failed to reload TLS certificates")
					return
				}
				s.Logger.Info("TLS certificates reloaded successfully")
			},
			s.Logger,
		)
		if err != nil {
			return fmt.Errorf("failed to create certificate watcher: %w", err)
		}
		if err := watcher.Start(); err != nil {
			return fmt.Errorf("failed to start certificate watcher: %w", err)
		}
		s.CertWatcher = watcher
	}

	return nil
}

// minTLSVersion maps the configured minimum version string
func (s *Server) minTLSVersion() uint16 {
	switch s.TLSConfig.MinVersion {
	case "1.3":
		return tls.VersionTLS13
	default:
		return tls.VersionTLS12
	}
}

// loadCACertificatePool loads the CA certificate pool for client verification
func (s *Server) loadCACertificatePool() (*x509.CertPool, error) {
	if s.TLSConfig.CAFile == "" {
		return nil, fmt.Errorf("CA certificate is required for mutual TLS mode")
	}

	caCert, err := os.ReadFile(s.TLSConfig.CAFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA file: %w", err)
	}

	caCertPool := x509.NewCertPool()
	if ok := caCertPool.AppendCertsFromPEM(caCert); !ok {
		return nil, fmt.Errorf("failed to append CA cert")
	}

	return caCertPool, nil
}

// certReloader holds the server certificate and swaps it atomically on reload
type certReloader struct {
	mu       sync.RWMutex
	cert     *tls.Certificate
	certFile string
	keyFile  string
}

func newCertReloader(certFile, keyFile string) (*certReloader, error) {
	if certFile == "" || keyFile == "" {
		return nil, fmt.Errorf("TLS certificate and key files are required")
	}

	r := &certReloader{certFile: certFile, keyFile: keyFile}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload re-reads the certificate pair from disk
func (r *certReloader) Reload() error {
	cert, err := tls.LoadX509KeyPair(r.certFile, r.keyFile)
	if err != nil {
		return fmt.Errorf("failed to load server cert/key: %w", err)
	}

	r.mu.Lock()
	r.cert = &cert
	r.mu.Unlock()
	return nil
}

// GetCertificate serves the current certificate to new TLS handshakes
func (r *certReloader) GetCertificate(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cert, nil
}
