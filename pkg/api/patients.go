package api

// Значения статуса, принимаемые API пациентов
const (
	StatusInquiry    = "inquiry"
	StatusOnboarding = "onboarding"
	StatusActive     = "active"
	StatusChurned    = "churned"
)

// Address представляет адрес пациента
type Address struct {
	ID           *int64 `json:"id"` // nil для ещё не сохранённого адреса
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
}

// ISIScore представляет результат опросника Insomnia Severity Index (0..28)
type ISIScore struct {
	ID    *int64 `json:"id"`
	Score *int   `json:"score"` // nil пока значение не введено
	Date  string `json:"date"`  // YYYY-MM-DD
}

// Patient представляет пациента в том виде, в каком его отдаёт сервер
type Patient struct {
	CreatedAt         string             `json:"created_at,omitempty"`
	UpdatedAt         string             `json:"updated_at,omitempty"`
	FirstName         string             `json:"first_name"`
	MiddleName        string             `json:"middle_name,omitempty"`
	LastName          string             `json:"last_name"`
	DateOfBirth       string             `json:"date_of_birth"` // YYYY-MM-DD
	Status            string             `json:"status"`
	LastVisit         *string            `json:"last_visit"`
	Addresses         []Address          `json:"addresses"`
	ISIScores         []ISIScore         `json:"isi_scores"`
	CustomFieldValues []CustomFieldValue `json:"custom_field_values"`
	ID                int64              `json:"id"`
	ReadyToDischarge  bool               `json:"ready_to_discharge"`
}

// PatientData тело запроса создания и обновления
type PatientData struct {
	FirstName         string             `json:"first_name"`
	MiddleName        string             `json:"middle_name"`
	LastName          string             `json:"last_name"`
	DateOfBirth       string             `json:"date_of_birth"`
	Status            string             `json:"status"`
	LastVisit         *string            `json:"last_visit"`
	Addresses         []Address          `json:"addresses"`
	ISIScores         []ISIScore         `json:"isi_scores"`
	CustomFieldValues []CustomFieldValue `json:"custom_field_values"`
	ReadyToDischarge  bool               `json:"ready_to_discharge"`
}

// PatientPage представляет страницу списка пациентов (пагинация сервера)
type PatientPage struct {
	Next     *string   `json:"next"`
	Previous *string   `json:"previous"`
	Results  []Patient `json:"results"`
	Count    int       `json:"count"`
}

// ListPatientsParams задаёт фильтры, сортировку и номер страницы
type ListPatientsParams struct {
	Status   string
	City     string
	State    string
	Search   string
	Ordering string // ключ сортировки API, "-" в начале для обратного порядка
	Page     int
}

// ToData строит тело запроса записи из загруженного пациента
func (p Patient) ToData() PatientData {
	return PatientData{
		FirstName:         p.FirstName,
		MiddleName:        p.MiddleName,
		LastName:          p.LastName,
		DateOfBirth:       p.DateOfBirth,
		Status:            p.Status,
		LastVisit:         p.LastVisit,
		Addresses:         p.Addresses,
		ISIScores:         p.ISIScores,
		CustomFieldValues: p.CustomFieldValues,
		ReadyToDischarge:  p.ReadyToDischarge,
	}
}
