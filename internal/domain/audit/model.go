package audit

import "time"

// Capacity es el máximo de entradas vivas por instalación.
const Capacity = 50

type EventType string

const (
	EventStockUpdate      EventType = "Stock Update"
	EventRequestReceived  EventType = "Request Received"
	EventRequestAccepted  EventType = "Request Accepted"
	EventRequestRejected  EventType = "Request Rejected"
	EventRequestFulfilled EventType = "Blood Received"
	EventDonation         EventType = "Donation"
)

// Entry es un evento del historial de una instalación. Nunca se actualiza.
type Entry struct {
	FacilityID string
	Seq        int64 // orden de inserción dentro de la instalación

	EventType   EventType
	Description string
	Date        time.Time

	ReferenceID string // request, donación o entrada de stock; opcional
}
