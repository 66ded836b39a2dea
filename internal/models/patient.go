package models

import (
	"strings"
	"time"

	"github.com/iudanet/patientdesk/pkg/api"
)

// Status статус пациента
type Status string

// Известные статусы
const (
	StatusInquiry    Status = api.StatusInquiry
	StatusOnboarding Status = api.StatusOnboarding
	StatusActive     Status = api.StatusActive
	StatusChurned    Status = api.StatusChurned
)

// Statuses перечисляет статусы в порядке жизненного цикла
var Statuses = []Status{StatusInquiry, StatusOnboarding, StatusActive, StatusChurned}

// Valid сообщает, что s один из известных статусов
func (s Status) Valid() bool {
	switch s {
	case StatusInquiry, StatusOnboarding, StatusActive, StatusChurned:
		return true
	}
	return false
}

// FullName возвращает "First M. Last", отчество сокращается до инициала
func FullName(p api.Patient) string {
	var b strings.Builder
	b.WriteString(p.FirstName)
	if middle := []rune(strings.TrimSpace(p.MiddleName)); len(middle) > 0 {
		b.WriteString(" ")
		b.WriteRune(middle[0])
		b.WriteString(".")
	}
	b.WriteString(" ")
	b.WriteString(p.LastName)
	return b.String()
}

// Age возвращает полных лет от даты рождения YYYY-MM-DD до now.
// ok равно false, если дату не удалось разобрать.
func Age(dateOfBirth string, now time.Time) (age int, ok bool) {
	dob, err := time.Parse("2006-01-02", dateOfBirth)
	if err != nil {
		return 0, false
	}

	age = now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age, true
}

// LatestISI returns the most recent ISI score. Сервер отдаёт оценки от новых к старым.
func LatestISI(p api.Patient) (api.ISIScore, bool) {
	if len(p.ISIScores) == 0 {
		return api.ISIScore{}, false
	}
	return p.ISIScores[0], true
}

// PrimaryAddress возвращает первый адрес пациента
func PrimaryAddress(p api.Patient) (api.Address, bool) {
	if len(p.Addresses) == 0 {
		return api.Address{}, false
	}
	return p.Addresses[0], true
}
