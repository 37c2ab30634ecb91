// Package session lleva el estado de conexión de los servicios remotos
// (ERP y relé de impresión) para mostrarlo en la barra de estado del
// front-end.
package session

import "sync/atomic"

// State estado de una conexión remota.
type State int32

const (
	Disconnected State = iota
	Connecting
	Connected
)

// String nombre estable para la API.
func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Tracker estado de conexión apto para consulta concurrente.
type Tracker struct {
	state atomic.Int32
}

// NewTracker arranca en Disconnected.
func NewTracker() *Tracker { return &Tracker{} }

// Set fija el estado.
func (t *Tracker) Set(s State) { t.state.Store(int32(s)) }

// Get estado actual.
func (t *Tracker) Get() State { return State(t.state.Load()) }
