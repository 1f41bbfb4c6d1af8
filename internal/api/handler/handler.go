package handler

import "turnout/backend/internal/service"

// Handler aggregates all handlers.
type Handler struct {
	Auth       *AuthHandler
	Member     *MemberHandler
	Truck      *TruckHandler
	Callout    *CalloutHandler
	Attendance *AttendanceHandler
	Stream     *StreamHandler
}

// NewHandler creates the handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Member:     NewMemberHandler(svc.Member),
		Truck:      NewTruckHandler(svc.Truck),
		Callout:    NewCalloutHandler(svc.Callout),
		Attendance: NewAttendanceHandler(svc.Attendance),
		Stream:     NewStreamHandler(svc.Stream),
	}
}
