// Package foodsafety enthält die Logik für die Interaktion mit der
// Open-Data-API der Rohstoff-Registry (foodsafetykorea, Service I2710).
package foodsafety

// Record repräsentiert einen rohen Rohstoff-Datensatz, wie ihn die API liefert.
// Alle Felder kommen als Strings; die Normalisierung passiert im Sync-Service.
type Record struct {
	ProductName     string `json:"PRDCT_NM"`
	Functionality   string `json:"PRIMARY_FNCLTY"`
	Precautions     string `json:"IFTKN_ATNT_MATR_CN"`
	IntakeUnit      string `json:"INTK_UNIT"`
	Remark          string `json:"SKLL_IX_IRDNT_RAWMTRL"`
	DailyIntakeLow  string `json:"DAY_INTK_LOWLIMIT"`
	DailyIntakeHigh string `json:"DAY_INTK_HIGHLIMIT"`
	CreatedDate     string `json:"CRET_DTM"`
	LastUpdatedDate string `json:"LAST_UPDT_DTM"`
}

// serviceEnvelope ist der Inhalt unter dem Service-ID-Schlüssel der Antwort.
type serviceEnvelope struct {
	TotalCount string   `json:"total_count"`
	Row        []Record `json:"row"`
	Result     struct {
		Code    string `json:"CODE"`
		Message string `json:"MSG"`
	} `json:"RESULT"`
}
