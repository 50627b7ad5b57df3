// Package mapserver is the TCP serving collaborator: an accept loop that
// hands each connection a goroutine speaking the wire envelope described in
// spec §6 (one byte MessageType, four bytes little-endian payload length,
// payload). It holds the last map a RequestMap exchange produced per client
// behind a mutex, the only shared state in the module, and logs
// every connection lifecycle event through logrus.
package mapserver
