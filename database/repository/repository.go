package repository

import (
	bookingRepo "gymflow/database/repository/booking"
	classRepo "gymflow/database/repository/class"
	memberRepo "gymflow/database/repository/member"
	sessionRepo "gymflow/database/repository/session"
)

// Re-export the repository interfaces and constructors.
type MemberRepository = memberRepo.MemberRepository

var NewMongoMemberRepo = memberRepo.NewMongoMemberRepo

type ClassRepository = classRepo.ClassRepository

var NewMongoClassRepo = classRepo.NewMongoClassRepo

type SessionRepository = sessionRepo.SessionRepository

var NewMongoSessionRepo = sessionRepo.NewMongoSessionRepo

type BookingRepository = bookingRepo.BookingRepository

var NewMongoBookingRepo = bookingRepo.NewMongoBookingRepo
