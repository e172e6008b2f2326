// Copyright ©2025 The go-pdf Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ticks

// override snapshots the working fields of l. The returned func puts them
// back and is meant to be deferred, so that it also runs when a Formatter or
// Measurer panics.
func (l *Locator) override() (restore func()) {
	nbins, minTicks, catalog := l.nbins, l.minTicks, l.catalog
	return func() {
		l.nbins, l.minTicks, l.catalog = nbins, minTicks, catalog
	}
}

// withCatalog runs fn with c as the step catalog of l.
func (l *Locator) withCatalog(c *Catalog, fn func() []float64) []float64 {
	saved := l.catalog
	l.catalog = c
	defer func() {
		l.catalog = saved
	}()
	return fn()
}
