package shelter

import "time"

// Size define los tamaños soportados.
// @Enum Small, Medium, Large
type Size string

const (
	SizeSmall  Size = "Small"
	SizeMedium Size = "Medium"
	SizeLarge  Size = "Large"
)

// Gender define el sexo del perro.
// @Enum Male, Female
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Status define el estado de un perro dentro del ciclo de vida del refugio.
// Los strings coinciden con el formato persistido ("On Trial" lleva espacio).
// @Enum Available, On Trial, Adopted, Returned
type Status string

const (
	StatusAvailable Status = "Available"
	StatusOnTrial   Status = "On Trial"
	StatusAdopted   Status = "Adopted"
	StatusReturned  Status = "Returned"
)

// Dog representa un perro del catálogo del refugio.
//
// Invariantes (mantenidas por el Store y los workflows):
//   - TrialStartDate/TrialEndDate están presentes sii Status = On Trial.
//   - AdoptedBy está presente sii Status = Adopted.
type Dog struct {
	ID string `json:"id"`

	Name   string `json:"name"`
	Breed  string `json:"breed"`
	Age    int    `json:"age"` // años, entero positivo
	Size   Size   `json:"size"`
	Gender Gender `json:"gender"`

	Description string `json:"description"`
	Personality string `json:"personality"`
	ImageURL    string `json:"imageUrl"`

	Status         Status     `json:"status"`
	TrialStartDate *time.Time `json:"trialStartDate,omitempty"`
	TrialEndDate   *time.Time `json:"trialEndDate,omitempty"`
	AdoptedBy      string     `json:"adoptedBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AdoptionStatus define el estado de un registro de adopción.
// @Enum Active, Completed, Cancelled
type AdoptionStatus string

const (
	AdoptionActive    AdoptionStatus = "Active"
	AdoptionCompleted AdoptionStatus = "Completed"
	AdoptionCancelled AdoptionStatus = "Cancelled"
)

// Decision es la decisión final de un período de prueba.
// @Enum Adopt, Return
type Decision string

const (
	DecisionAdopt  Decision = "Adopt"
	DecisionReturn Decision = "Return"
)

// AdoptionRecord representa un compromiso de prueba/adopción entre un cliente y un perro.
// DogID es una referencia blanda: el registro sobrevive aunque el perro se borre.
type AdoptionRecord struct {
	ID    string `json:"id"`
	DogID string `json:"dogId"`

	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`

	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"` // StartDate + ventana fija de prueba

	Status       AdoptionStatus `json:"status"`
	Decision     Decision       `json:"decision,omitempty"`
	DecisionDate *time.Time     `json:"decisionDate,omitempty"`
	Notes        string         `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Customer son los datos de contacto que el cliente entrega al iniciar una prueba.
type Customer struct {
	Name  string
	Email string
	Phone string
}

// FilterSpec es un conjunto disperso de predicados sobre el catálogo.
// Campo en cero = sin restricción. Todos los campos activos se combinan con AND.
type FilterSpec struct {
	Breed  string // substring, case-insensitive
	Size   Size
	MaxAge int // age <= MaxAge
	Status Status
	Gender Gender
}

// SortField define los campos ordenables del catálogo.
type SortField string

const (
	SortByName  SortField = "name"
	SortByBreed SortField = "breed"
	SortByAge   SortField = "age"
)

// SortDirection define la dirección del orden.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortSpec selecciona campo y dirección para ordenar el resultado de una query.
type SortSpec struct {
	Field     SortField
	Direction SortDirection
}
