package utils

import "github.com/sirupsen/logrus"

type NamedCloser struct {
	Name  string
	Close func() error
}

type NamedClosers []NamedCloser

// Close runs every closer in reverse registration order and returns the
// first error. Each result is logged to l.
func (closers NamedClosers) Close(l *logrus.Entry) error {
	var first error
	for i := len(closers) - 1; i >= 0; i-- {
		c := &closers[i]
		if err := c.Close(); err != nil {
			l.WithError(err).WithField("name", c.Name).Error("Fail to close")
			if first == nil {
				first = err
			}
			continue
		}
		l.WithField("name", c.Name).Debug("Closed")
	}
	return first
}
