// Package memory almacenes en memoria del proceso.
package memory

import (
	"sync"
	"time"
)

type otpEntry struct {
	secret   string
	expires  time.Time
	failures int
}

// OTPStore secretos TOTP por email con vencimiento. Se pierden al reiniciar.
type OTPStore struct {
	mu      sync.Mutex
	entries map[string]otpEntry
	now     func() time.Time
}

// NewOTPStore construye el almacén.
func NewOTPStore() *OTPStore {
	return &OTPStore{entries: map[string]otpEntry{}, now: time.Now}
}

// Put guarda o reemplaza el secreto del email.
func (s *OTPStore) Put(email, secret string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purge()
	s.entries[email] = otpEntry{secret: secret, expires: s.now().Add(ttl)}
}

// Get devuelve el secreto vigente.
func (s *OTPStore) Get(email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[email]
	if !ok || !s.now().Before(e.expires) {
		delete(s.entries, email)
		return "", false
	}
	return e.secret, true
}

// Fail suma un intento fallido al secreto vigente y devuelve el total; 0 si no hay secreto.
func (s *OTPStore) Fail(email string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[email]
	if !ok || !s.now().Before(e.expires) {
		delete(s.entries, email)
		return 0
	}
	e.failures++
	s.entries[email] = e
	return e.failures
}

// Delete consume el secreto.
func (s *OTPStore) Delete(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
}

// purge descarta los vencidos; se llama con el mutex tomado.
func (s *OTPStore) purge() {
	now := s.now()
	for k, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, k)
		}
	}
}
