package careapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an upstream identifier. The API sends ids as strings or numbers.
type ID string

// UnmarshalJSON accepts a JSON string or number.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("careapi: id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the id as sent upstream.
func (id ID) String() string { return string(id) }

// Person holds the name fields of a client.
type Person struct {
	LastName  string `json:"name"`
	FirstName string `json:"vorname"`
}

// Record is one entry of the client list. Raw keeps the complete record.
type Record struct {
	ID     ID              `json:"id"`
	Person Person          `json:"person"`
	Raw    json.RawMessage `json:"-"`
}

type clientPage struct {
	Content []json.RawMessage `json:"content"`
}

// DocumentType tags a category of care record.
type DocumentType string

const (
	DocBerichteblatt       DocumentType = "BERICHTEBLATT"
	DocVitalwerte          DocumentType = "VITALWERTE"
	DocFluessigkeitsbilanz DocumentType = "FLUESSIGKEITSBILANZIERUNG"
	DocErnaehrungOral      DocumentType = "ERNAEHRUNG_ORAL"
	DocMedikationsplan     DocumentType = "MEDIKATIONSPLAN"
	DocMassnahmenplan      DocumentType = "MASSNAHMENPLAN"
	DocBiografiebogen      DocumentType = "BIOGRAFIEBOGEN"
	DocSISAmbulant         DocumentType = "SIS_AMBULANT"
	DocSturzprotokoll      DocumentType = "STURZPROTOKOLL"
)

// detailPaths maps a document type to its detail endpoint. %s is the document id.
var detailPaths = map[DocumentType]string{
	DocBerichteblatt:       "/berichteblatteintrag/%s",
	DocVitalwerte:          "/vitalwerte/%s",
	DocFluessigkeitsbilanz: "/fluessigkeitsbilanzierung/%s/alle-eintraege",
	DocErnaehrungOral:      "/ernaehrung-oral/%s/alle-eintraege",
	DocMedikationsplan:     "/medikationsplaneintrag/%s",
	DocMassnahmenplan:      "/massnahmenplan/%s/alle-eintraege",
	DocBiografiebogen:      "/biografiebogen/%s",
	DocSISAmbulant:         "/sis-ambulant/%s",
	DocSturzprotokoll:      "/sturzprotokoll/%s",
}

// DocumentStatus is the workflow state of a document.
type DocumentStatus string

const (
	StatusFreigegeben   DocumentStatus = "FREIGEGEBEN"
	StatusEvaluiert     DocumentStatus = "EVALUIERT"
	StatusAnlage        DocumentStatus = "ANLAGE"
	StatusAbgeschlossen DocumentStatus = "ABGESCHLOSSEN"
	StatusNeuanlage     DocumentStatus = "NEUANLAGE"
)

// Accepted reports whether a document in this state may be read.
func (s DocumentStatus) Accepted() bool {
	switch s {
	case StatusFreigegeben, StatusEvaluiert, StatusAnlage, StatusAbgeschlossen, StatusNeuanlage:
		return true
	}
	return false
}

// DocumentRef points at one document of a client.
type DocumentRef struct {
	ID     ID             `json:"id"`
	Status DocumentStatus `json:"status"`
}

// DocumentGroup lists a client's documents of one type.
type DocumentGroup struct {
	Type      DocumentType  `json:"dokumenttyp"`
	Documents []DocumentRef `json:"dokumente"`
}

type documentList struct {
	Groups []DocumentGroup `json:"pflegedokuList"`
}
