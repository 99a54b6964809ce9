package ui

import (
	"fmt"
	"sync"
	"time"
)

type ModalState string

const (
	ModalClosed ModalState = "closed"
	ModalSignup ModalState = "signup"
	ModalLogin  ModalState = "login"
)

// AuthForm holds what the shopper typed into the auth forms, so a failed
// submit can be retried without retyping everything.
type AuthForm struct {
	Name  string
	Email string
}

// AuthModal is the signup/login dialog. It starts closed, always opens on the
// signup tab, and resets its forms when hidden.
//
// Close hides the modal after the configured delay. The pending hide is not
// cancelled by a later Open, so an Open that follows a Close within the delay
// ends up closed.
type AuthModal struct {
	sched Scheduler
	delay time.Duration

	mu      sync.Mutex
	state   ModalState
	closing bool
	form    AuthForm
}

func NewAuthModal(sched Scheduler, closeDelay time.Duration) *AuthModal {
	return &AuthModal{sched: sched, delay: closeDelay, state: ModalClosed}
}

func (m *AuthModal) Open() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = ModalSignup
	m.closing = false
}

// SelectTab switches between the signup and login forms of an open modal.
// It does nothing while the modal is closed.
func (m *AuthModal) SelectTab(tab ModalState) error {
	if tab != ModalSignup && tab != ModalLogin {
		return fmt.Errorf("unknown tab %q", tab)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != ModalClosed {
		m.state = tab
	}
	return nil
}

func (m *AuthModal) Close() {
	m.mu.Lock()
	m.closing = true
	m.mu.Unlock()

	m.sched.AfterFunc(m.delay, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.state = ModalClosed
		m.closing = false
		m.form = AuthForm{}
	})
}

// Closing reports whether a hide is pending: the modal is still visible but
// no longer accepts input.
func (m *AuthModal) Closing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closing
}

func (m *AuthModal) State() ModalState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *AuthModal) IsOpen() bool {
	return m.State() != ModalClosed
}

// Remember stores the current form input.
func (m *AuthModal) Remember(f AuthForm) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.form = f
}

func (m *AuthModal) Form() AuthForm {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.form
}
