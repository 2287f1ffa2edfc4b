package main

import (
	"errors"
	"sync"

	"golang.design/x/clipboard"
)

var errClipboardUnavailable = errors.New("clipboard unavailable")

// snapshotClipboard initializes the system clipboard on first use.
type snapshotClipboard struct {
	once sync.Once
	err  error
}

func newSnapshotClipboard() *snapshotClipboard {
	return &snapshotClipboard{}
}

func (c *snapshotClipboard) Write(text string) error {
	c.once.Do(func() {
		if err := clipboard.Init(); err != nil {
			c.err = errors.Join(errClipboardUnavailable, err)
		}
	})
	if c.err != nil {
		return c.err
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
