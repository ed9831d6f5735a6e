package pdf

import (
	"fmt"

	"bwip/internal/types"
)

// Template carries the static wording of one poster layout in one language.
// The five codes are fixed by regulation; the strings below are the printed
// headings and regulatory statements, not layout.
type Template struct {
	Code     types.TemplateCode
	Language types.Language

	Title    string
	Subtitle string

	// Notice is the regulatory statement specific to this template.
	Notice string

	StatusHeading       string
	MeasurementsHeading string
	FacilitiesHeading   string
	AlertHeading        string
	MoreInfoHeading     string
	Footer              string
}

type templateKey struct {
	code types.TemplateCode
	lang types.Language
}

// Registry resolves poster templates by code and language.
type Registry struct {
	templates map[templateKey]Template
}

// NewRegistry builds the registry with English and Irish variants for all
// five template codes.
func NewRegistry() *Registry {
	r := &Registry{templates: make(map[templateKey]Template)}
	for _, tpl := range builtinTemplates {
		r.Register(tpl)
	}
	return r
}

// Register adds or replaces a template variant.
func (r *Registry) Register(tpl Template) {
	r.templates[templateKey{code: tpl.Code, lang: tpl.Language}] = tpl
}

// Lookup resolves a template for a code and language. Bilingual posters and
// languages with no registered variant fall back to English. A code with no
// English variant either is a configuration error.
func (r *Registry) Lookup(code types.TemplateCode, lang types.Language) (Template, error) {
	if lang != types.LanguageBilingual {
		if tpl, ok := r.templates[templateKey{code: code, lang: lang}]; ok {
			return tpl, nil
		}
	}
	if tpl, ok := r.templates[templateKey{code: code, lang: types.LanguageEnglish}]; ok {
		return tpl, nil
	}
	return Template{}, types.NewAppError(types.ErrCodeConfigTemplateNotFound,
		fmt.Sprintf("no template registered for code %s language %s", code, lang), nil)
}

var builtinTemplates = []Template{
	{
		Code:                types.Template1A,
		Language:            types.LanguageEnglish,
		Title:               "Bathing Water Quality",
		Subtitle:            "Identified Bathing Water",
		Notice:              "This bathing water is identified under the Bathing Water Quality Regulations and is monitored by the EPA throughout the bathing season.",
		StatusHeading:       "Current Water Quality",
		MeasurementsHeading: "Recent Sample Results",
		FacilitiesHeading:   "Facilities",
		AlertHeading:        "Notice",
		MoreInfoHeading:     "More Information",
		Footer:              "Issued by the Local Authority. Data from beaches.ie and the Environmental Protection Agency.",
	},
	{
		Code:                types.Template1A,
		Language:            types.LanguageIrish,
		Title:               "Caighdeán an Uisce Snámha",
		Subtitle:            "Uisce Snámha Sainaitheanta",
		Notice:              "Tá an t-uisce snámha seo sainaitheanta faoi na Rialacháin um Cháilíocht Uisce Snámha agus déanann an GCC monatóireacht air le linn an tséasúir snámha.",
		StatusHeading:       "Caighdeán Reatha an Uisce",
		MeasurementsHeading: "Torthaí Samplaí le Déanaí",
		FacilitiesHeading:   "Áiseanna",
		AlertHeading:        "Fógra",
		MoreInfoHeading:     "Tuilleadh Eolais",
		Footer:              "Eisithe ag an Údarás Áitiúil. Sonraí ó beaches.ie agus ón nGníomhaireacht um Chaomhnú Comhshaoil.",
	},
	{
		Code:                types.Template1B,
		Language:            types.LanguageEnglish,
		Title:               "Bathing Restriction In Place",
		Subtitle:            "Identified Bathing Water",
		Notice:              "A temporary restriction on bathing is currently in place at this location. Please observe all posted notices until the restriction is lifted.",
		StatusHeading:       "Current Water Quality",
		MeasurementsHeading: "Recent Sample Results",
		FacilitiesHeading:   "Facilities",
		AlertHeading:        "Restriction Notice",
		MoreInfoHeading:     "More Information",
		Footer:              "Issued by the Local Authority. Data from beaches.ie and the Environmental Protection Agency.",
	},
	{
		Code:                types.Template1B,
		Language:            types.LanguageIrish,
		Title:               "Srian Snámha i bhFeidhm",
		Subtitle:            "Uisce Snámha Sainaitheanta",
		Notice:              "Tá srian sealadach ar shnámh i bhfeidhm ag an láthair seo faoi láthair. Tabhair aird ar gach fógra atá ar taispeáint go dtí go mbaintear an srian.",
		StatusHeading:       "Caighdeán Reatha an Uisce",
		MeasurementsHeading: "Torthaí Samplaí le Déanaí",
		FacilitiesHeading:   "Áiseanna",
		AlertHeading:        "Fógra Sriain",
		MoreInfoHeading:     "Tuilleadh Eolais",
		Footer:              "Eisithe ag an Údarás Áitiúil. Sonraí ó beaches.ie agus ón nGníomhaireacht um Chaomhnú Comhshaoil.",
	},
	{
		Code:                types.Template1C,
		Language:            types.LanguageEnglish,
		Title:               "Bathing Prohibited This Season",
		Subtitle:            "Identified Bathing Water",
		Notice:              "Bathing is restricted at this location for the full duration of the bathing season on public health grounds.",
		StatusHeading:       "Current Water Quality",
		MeasurementsHeading: "Recent Sample Results",
		FacilitiesHeading:   "Facilities",
		AlertHeading:        "Season-Long Restriction",
		MoreInfoHeading:     "More Information",
		Footer:              "Issued by the Local Authority. Data from beaches.ie and the Environmental Protection Agency.",
	},
	{
		Code:                types.Template1C,
		Language:            types.LanguageIrish,
		Title:               "Cosc ar Shnámh an Séasúr Seo",
		Subtitle:            "Uisce Snámha Sainaitheanta",
		Notice:              "Tá srian ar shnámh ag an láthair seo ar feadh an tséasúir snámha ar fad ar chúiseanna sláinte poiblí.",
		StatusHeading:       "Caighdeán Reatha an Uisce",
		MeasurementsHeading: "Torthaí Samplaí le Déanaí",
		FacilitiesHeading:   "Áiseanna",
		AlertHeading:        "Srian Séasúir",
		MoreInfoHeading:     "Tuilleadh Eolais",
		Footer:              "Eisithe ag an Údarás Áitiúil. Sonraí ó beaches.ie agus ón nGníomhaireacht um Chaomhnú Comhshaoil.",
	},
	{
		Code:                types.Template2A,
		Language:            types.LanguageEnglish,
		Title:               "Bathing Advisory",
		Subtitle:            "Non-Identified Bathing Water",
		Notice:              "This location is not an identified bathing water and is not routinely monitored by the EPA. A restriction is currently in place; please observe all posted notices.",
		StatusHeading:       "Water Quality Information",
		MeasurementsHeading: "Available Sample Results",
		FacilitiesHeading:   "Facilities",
		AlertHeading:        "Restriction Notice",
		MoreInfoHeading:     "More Information",
		Footer:              "Issued by the Local Authority. Data from beaches.ie and the Environmental Protection Agency.",
	},
	{
		Code:                types.Template2A,
		Language:            types.LanguageIrish,
		Title:               "Comhairle Snámha",
		Subtitle:            "Uisce Snámha Neamhshainaitheanta",
		Notice:              "Ní uisce snámha sainaitheanta í an láthair seo agus ní dhéanann an GCC monatóireacht rialta uirthi. Tá srian i bhfeidhm faoi láthair; tabhair aird ar gach fógra atá ar taispeáint.",
		StatusHeading:       "Eolas ar Cháilíocht an Uisce",
		MeasurementsHeading: "Torthaí Samplaí atá ar Fáil",
		FacilitiesHeading:   "Áiseanna",
		AlertHeading:        "Fógra Sriain",
		MoreInfoHeading:     "Tuilleadh Eolais",
		Footer:              "Eisithe ag an Údarás Áitiúil. Sonraí ó beaches.ie agus ón nGníomhaireacht um Chaomhnú Comhshaoil.",
	},
	{
		Code:                types.Template2B,
		Language:            types.LanguageEnglish,
		Title:               "Bathing Water Information",
		Subtitle:            "Non-Identified Bathing Water",
		Notice:              "This location is not an identified bathing water under the Bathing Water Quality Regulations and is not routinely monitored by the EPA.",
		StatusHeading:       "Water Quality Information",
		MeasurementsHeading: "Available Sample Results",
		FacilitiesHeading:   "Facilities",
		AlertHeading:        "Notice",
		MoreInfoHeading:     "More Information",
		Footer:              "Issued by the Local Authority. Data from beaches.ie and the Environmental Protection Agency.",
	},
	{
		Code:                types.Template2B,
		Language:            types.LanguageIrish,
		Title:               "Eolas ar Uisce Snámha",
		Subtitle:            "Uisce Snámha Neamhshainaitheanta",
		Notice:              "Ní uisce snámha sainaitheanta í an láthair seo faoi na Rialacháin um Cháilíocht Uisce Snámha agus ní dhéanann an GCC monatóireacht rialta uirthi.",
		StatusHeading:       "Eolas ar Cháilíocht an Uisce",
		MeasurementsHeading: "Torthaí Samplaí atá ar Fáil",
		FacilitiesHeading:   "Áiseanna",
		AlertHeading:        "Fógra",
		MoreInfoHeading:     "Tuilleadh Eolais",
		Footer:              "Eisithe ag an Údarás Áitiúil. Sonraí ó beaches.ie agus ón nGníomhaireacht um Chaomhnú Comhshaoil.",
	},
}
