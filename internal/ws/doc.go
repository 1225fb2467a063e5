// Package ws pushes commentary updates to browsers over WebSocket. A single
// hub tracks connected clients and fans broadcast messages out to them;
// delivery is best effort and never blocks the background pipeline.
package ws
