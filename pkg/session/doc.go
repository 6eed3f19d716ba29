/*
Package session keeps track of running streaming explorations.

Every exploration is registered under a fresh ID when it starts and removed when
it completes. The registry only holds cancel handles: search state stays owned by
the explorer goroutine, so cancelling a session from another request follows the
same cooperative path as a client disconnect.
*/
package session
