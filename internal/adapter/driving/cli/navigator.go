package cli

import (
	"context"
	"errors"
	"sync"

	"github.com/ericfisherdev/semefopanel/internal/adapter/driven/semefo"
	"github.com/ericfisherdev/semefopanel/internal/domain/port/driven"
)

// errSessionExpired ends a command whose backend calls hit an expired
// session. The user has already been told to log in again.
var errSessionExpired = errors.New("la sesión expiró")

// Compile-time interface satisfaction check.
var _ driven.Navigator = (*commandNavigator)(nil)

// commandNavigator implements driven.Navigator for one command run: the
// current path is the command path, and navigating to the login view tells
// the user to log in again.
type commandNavigator struct {
	mu      sync.Mutex
	current string
	target  string
	printer *Printer
}

func (n *commandNavigator) CurrentPath(context.Context) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *commandNavigator) NavigateTo(_ context.Context, path string) {
	n.mu.Lock()
	first := n.target == ""
	n.target = path
	n.mu.Unlock()

	if first && path == semefo.LoginPath {
		n.printer.Warn("La sesión expiró. Ejecute `semefoctl login` para continuar.")
	}
}

// Target returns the path the client navigated to, or "".
func (n *commandNavigator) Target() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.target
}

// checkSession returns errSessionExpired when a backend call of this run
// navigated to the login view, even if the caller recovered from the error.
func (n *commandNavigator) checkSession() error {
	if n.Target() == semefo.LoginPath {
		return errSessionExpired
	}
	return nil
}
