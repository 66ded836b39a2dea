package models

// SyncState описывает состояние поля относительно сервера
type SyncState uint8

const (
	// Clean: значение черновика совпадает с последним принятым с сервера
	Clean SyncState = iota
	// Dirty: поле изменено локально и ещё не отправлено
	// (или изменено снова после отправки)
	Dirty
	// InFlight: поле отправлено, движок ждёт эха от сервера
	InFlight
)

func (s SyncState) String() string {
	switch s {
	case Clean:
		return "clean"
	case Dirty:
		return "dirty"
	case InFlight:
		return "in_flight"
	default:
		return "unknown"
	}
}

// Touched сообщает, что локальные правки поля ещё не подтверждены сервером
func (s SyncState) Touched() bool {
	return s == Dirty || s == InFlight
}

// FieldDefinition описывает пользовательское поле
type FieldDefinition struct {
	ID       FieldID `json:"id"`
	Name     string  `json:"name"`
	Required bool    `json:"required"`
}
