package reconcile

import "github.com/iudanet/patientdesk/internal/models"

// Merge накладывает серверный FieldSet на локальный черновик.
//
// Затронутые поля (по предикату touched) не меняются: локальное значение
// действует, пока сервер не вернёт его же. Остальные серверные поля
// перезаписывают черновик. Поля, исчезнувшие с сервера после prevRemote,
// удаляются, если не затронуты. confirmed содержит затронутые поля, серверное
// значение которых теперь совпадает с черновиком.
func Merge(draft, prevRemote, remote models.FieldSet, touched func(models.FieldID) bool) (merged models.FieldSet, confirmed []models.FieldID) {
	merged = draft.Clone()

	for _, f := range remote {
		if touched(f.ID) {
			if v, ok := merged.Get(f.ID); ok && v.Equal(f.Value) {
				confirmed = append(confirmed, f.ID)
			}
			continue
		}
		merged = merged.With(f.ID, f.Value)
	}

	for _, f := range prevRemote {
		if remote.Has(f.ID) || touched(f.ID) {
			continue
		}
		merged = merged.Without(f.ID)
	}

	return merged, confirmed
}

// Delta возвращает поля черновика, отличные от серверных: изменённые и новые.
// Новое поле с пустым значением в дельту не попадает, очищенное существующее попадает.
func Delta(draft, remote models.FieldSet) models.FieldSet {
	delta := make(models.FieldSet, 0)
	for _, f := range draft {
		rv, ok := remote.Get(f.ID)
		if ok {
			if !rv.Equal(f.Value) {
				delta = append(delta, f)
			}
			continue
		}
		if !f.Value.IsBlank() {
			delta = append(delta, f)
		}
	}
	return delta
}

// Overlay возвращает base с применённой дельтой, новые поля добавляются в конец
func Overlay(base, delta models.FieldSet) models.FieldSet {
	out := base.Clone()
	for _, f := range delta {
		out = out.With(f.ID, f.Value)
	}
	return out
}
