package main

import "github.com/aretw0/meihua"

type engineHandle struct {
	*meihua.Engine
	close func() error
}

// Close releases the journal behind the engine.
func (h *engineHandle) Close() error {
	return h.close()
}
