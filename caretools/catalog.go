package caretools

import "github.com/m-rashid-2024/careagent/careapi"

// SIS ambulant keys of the current standpoint and the six topic fields.
const (
	sisCurrentNeeds = "momentanerStandpunkt"
	sisCognition    = "themenfeld1"
	sisMobility     = "themenfeld2"
	sisIllness      = "themenfeld3"
	sisSelfCare     = "themenfeld4"
	sisSocial       = "themenfeld5"
	sisHousekeeping = "themenfeld6"
)

// Catalog returns the retrievers offered to the model, in declaration order.
func Catalog() []Retriever {
	return []Retriever{
		{
			Name:        "get_client_data",
			Description: "Gibt die Stammdaten eines Klienten zurück, zum Beispiel den Wohnort.",
			Format:      formatRaw,
		},
		{
			Name:        "get_berichteblatt",
			Description: "Gibt einen Bericht zu einer Person zurück.",
			Document:    careapi.DocBerichteblatt,
			Empty:       "No report entries found",
			Format:      formatReports,
		},
		{
			Name:        "get_vitalwerte",
			Description: "Gibt die Vitalwerte zu einer Person zurück.",
			Document:    careapi.DocVitalwerte,
			Empty:       "No vital values found",
			Format:      formatVitals,
		},
		{
			Name:        "get_fluessigkeitbilanz",
			Description: "Gibt die Flüssigkeitsbilanz zu einer Person zurück.",
			Document:    careapi.DocFluessigkeitsbilanz,
			Empty:       "No fluid intake data found",
			Format:      formatFluidBalance,
		},
		{
			Name:        "get_ernaehrung",
			Description: "Gibt einen Ernährungsbericht zu einer Person zurück.",
			Document:    careapi.DocErnaehrungOral,
			Empty:       "No oral nutrition found",
			Format:      formatNutrition,
		},
		{
			Name:        "get_medikationsplan",
			Description: "Gibt einen Medikationsplan zu einer Person zurück.",
			Document:    careapi.DocMedikationsplan,
			Empty:       "No medication plan found",
			Format:      formatMedication,
		},
		{
			Name:        "get_massnahmenplan",
			Description: "Gibt einen Maßnahmenplan zu einer Person zurück.",
			Document:    careapi.DocMassnahmenplan,
			Empty:       "No measure plan found",
			Format:      formatMeasures,
		},
		{
			Name:        "get_sis_ambulant",
			Description: "Gibt ambulante Informationen (SIS) zu einer Person zurück.",
			Document:    careapi.DocSISAmbulant,
			Format:      formatRaw,
		},
		{
			Name:        "get_current_needs",
			Description: "Gets the current needs of a client from the sis ambulant tool.",
			Document:    careapi.DocSISAmbulant,
			Empty:       "No current needs found",
			Format:      lifeDomain(sisCurrentNeeds),
		},
		{
			Name:        "get_cognitive_and_communicative_skills",
			Description: "Gets the cognitive and communicative skills of a client from the sis ambulant tool.",
			Document:    careapi.DocSISAmbulant,
			Empty:       "No cognitive and communicative skills found",
			Format:      lifeDomain(sisCognition),
		},
		{
			Name:        "get_mobility_and_agility_skills",
			Description: "Gets the mobility and agility skills of a client from the sis ambulant tool.",
			Document:    careapi.DocSISAmbulant,
			Empty:       "No mobility and agility skills found",
			Format:      lifeDomain(sisMobility),
		},
		{
			Name:        "get_illness_related_demands_and_stresses",
			Description: "Gets the illness-related demands and stresses of a client from the sis ambulant tool.",
			Document:    careapi.DocSISAmbulant,
			Empty:       "No illness-related demands and stresses found",
			Format:      lifeDomain(sisIllness),
		},
		{
			Name:        "get_self_sufficiency",
			Description: "Gets the self-sufficiency of a client from the sis ambulant tool.",
			Document:    careapi.DocSISAmbulant,
			Empty:       "No self-sufficiency found",
			Format:      lifeDomain(sisSelfCare),
		},
		{
			Name:        "get_social_relationships",
			Description: "Gets the social relationships of a client from the sis ambulant tool.",
			Document:    careapi.DocSISAmbulant,
			Empty:       "No social_relationships found",
			Format:      lifeDomain(sisSocial),
		},
		{
			Name:        "get_household_management",
			Description: "Gets the household management of a client from the sis ambulant tool.",
			Document:    careapi.DocSISAmbulant,
			Empty:       "No household_management found",
			Format:      lifeDomain(sisHousekeeping),
		},
		{
			Name:        "get_biografie",
			Description: "Gibt die Biografie zu einer Person zurück.",
			Document:    careapi.DocBiografiebogen,
			Empty:       "No biografie found",
			Format:      formatBiography,
		},
		{
			Name:        "get_accident_report",
			Description: "Gibt das Sturzprotokoll zu einer Person zurück.",
			Document:    careapi.DocSturzprotokoll,
			Empty:       "No accident report found",
			Format:      formatAccidentReport,
		},
	}
}
