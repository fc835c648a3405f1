package models

// RegistrationStatus — этап жизненного цикла заявки.
// Переходы между статусами не ограничены: оркестратор может возвращать
// заявку в PENDING или переводить её сразу в REGISTERED.
type RegistrationStatus string

const (
	StatusPending    RegistrationStatus = "PENDING"
	StatusSubmitted  RegistrationStatus = "SUBMITTED"
	StatusRegistered RegistrationStatus = "REGISTERED"
)

func (s RegistrationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusSubmitted, StatusRegistered:
		return true
	}
	return false
}

// RegistrationKind — вид заявки, обрабатываемый пакетным оркестратором.
type RegistrationKind string

const (
	KindChoreography RegistrationKind = "choreography"
	KindCoach        RegistrationKind = "coach"
	KindJudge        RegistrationKind = "judge"
)

func (k RegistrationKind) IsValid() bool {
	switch k {
	case KindChoreography, KindCoach, KindJudge:
		return true
	}
	return false
}
