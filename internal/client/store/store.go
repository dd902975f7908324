// Package store holds the normalized client-side caches of tickets,
// comments and users. Every operation follows the same lifecycle: begin
// marks the cache loading and clears the previous error, a fulfilled result
// replaces the affected projection, a rejection records the message and
// leaves prior data intact. Concurrent operations on one cache are not
// coalesced; the cache reflects whichever response lands last.
package store

// status tracks the request lifecycle shared by all caches. Callers must
// hold the owning store's lock.
type status struct {
	loading bool
	err     string
}

func (s *status) begin() {
	s.loading = true
	s.err = ""
}

func (s *status) fulfill() {
	s.loading = false
	s.err = ""
}

func (s *status) reject(err error) {
	s.loading = false
	s.err = err.Error()
}
