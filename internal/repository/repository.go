package repository

import "gorm.io/gorm"

// Repository aggregates all entity repositories.
type Repository struct {
	Brigade    BrigadeRepository
	Member     MemberRepository
	Truck      TruckRepository
	Callout    CalloutRepository
	Attendance AttendanceRepository
}

// NewRepository creates the repository aggregate.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Brigade:    NewBrigadeRepo(db),
		Member:     NewMemberRepo(db),
		Truck:      NewTruckRepo(db),
		Callout:    NewCalloutRepo(db),
		Attendance: NewAttendanceRepo(db),
	}
}
