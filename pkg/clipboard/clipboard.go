// Package clipboard writes copy actions to the system clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
	log "github.com/sirupsen/logrus"
)

var ErrUnsupported = errors.New("no clipboard utility available on this system")

type System struct{}

func New() System {
	return System{}
}

func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		log.WithError(err).Debug("clipboard write failed")
		return err
	}
	return nil
}

// Memory keeps the last copied text. It stands in for the system clipboard
// in tests and on hosts without one.
type Memory struct {
	Text   string
	Writes int
	Err    error
}

func (m *Memory) WriteAll(text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Text = text
	m.Writes++
	return nil
}
