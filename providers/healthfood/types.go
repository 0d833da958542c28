// Package healthfood enthält die Logik für die Interaktion mit der
// Produkt-Registry für Gesundheitsprodukte (data.go.kr, HtfsInfoService).
package healthfood

// ResultCodeOK ist der Header-Code einer erfolgreichen Antwort.
const ResultCodeOK = "00"

// Record repräsentiert einen rohen Produkt-Datensatz der Registry.
type Record struct {
	ReportNumber     string `json:"STTEMNT_NO"`
	ProductName      string `json:"PRDUCT"`
	Manufacturer     string `json:"ENTRPS"`
	RegistrationDate string `json:"REGIST_DT"`
	Appearance       string `json:"SUNGSANG"`
	Usage            string `json:"SRV_USE"`
	ServingSize      string `json:"NTK_INTK"`
	ServingMethod    string `json:"NTK_MTHD"`
	ShelfLife        string `json:"DISTB_PD"`
	StorageMethod    string `json:"PRSRV_PD"`
	Precautions      string `json:"INTAKE_HINT1"`
	MainFunction     string `json:"MAIN_FNCTN"`
	Standards        string `json:"BASE_STANDARD"`
}

// Page ist eine ausgepackte Antwortseite.
type Page struct {
	ResultCode string
	ResultMsg  string
	Items      []Record
	TotalCount int
}

type pageResponse struct {
	Header struct {
		ResultCode string `json:"resultCode"`
		ResultMsg  string `json:"resultMsg"`
	} `json:"header"`
	Body struct {
		Items      []itemWrapper `json:"items"`
		PageNo     int           `json:"pageNo"`
		NumOfRows  int           `json:"numOfRows"`
		TotalCount int           `json:"totalCount"`
	} `json:"body"`
}

type itemWrapper struct {
	Item Record `json:"item"`
}
