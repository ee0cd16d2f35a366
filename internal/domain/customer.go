package domain

// CustomerFormData is the single form record describing a prospective customer
type CustomerFormData struct {
	Industry    string `json:"industry"`
	Website     string `json:"website"`
	CompanyName string `json:"companyName"`
	CompanyID   string `json:"companyId"`
	RawData     string `json:"rawData"`
}

// FormField names one of the five form fields
type FormField string

const (
	FieldIndustry    FormField = "industry"
	FieldWebsite     FormField = "website"
	FieldCompanyName FormField = "companyName"
	FieldCompanyID   FormField = "companyId"
	FieldRawData     FormField = "rawData"
)

// With returns a copy of the form with one field replaced
func (f CustomerFormData) With(field FormField, value string) CustomerFormData {
	switch field {
	case FieldIndustry:
		f.Industry = value
	case FieldWebsite:
		f.Website = value
	case FieldCompanyName:
		f.CompanyName = value
	case FieldCompanyID:
		f.CompanyID = value
	case FieldRawData:
		f.RawData = value
	}
	return f
}

// Merge overlays the non-empty fields of partial onto f
func (f CustomerFormData) Merge(partial CustomerFormData) CustomerFormData {
	if partial.Industry != "" {
		f.Industry = partial.Industry
	}
	if partial.Website != "" {
		f.Website = partial.Website
	}
	if partial.CompanyName != "" {
		f.CompanyName = partial.CompanyName
	}
	if partial.CompanyID != "" {
		f.CompanyID = partial.CompanyID
	}
	if partial.RawData != "" {
		f.RawData = partial.RawData
	}
	return f
}

// CompanyProfile is a static catalog entry used for autocomplete and autofill
type CompanyProfile struct {
	Name          string   `json:"name" yaml:"name"`
	KeywordTokens []string `json:"keywordTokens" yaml:"keywordTokens"`
	CompanyID     string   `json:"companyId" yaml:"companyId"`
	Website       string   `json:"website" yaml:"website"`
	Industry      string   `json:"industry" yaml:"industry"`
	Description   string   `json:"description" yaml:"description"`
}

// FormData returns the five form fields a selection of this profile produces
func (p CompanyProfile) FormData() CustomerFormData {
	return CustomerFormData{
		CompanyName: p.Name,
		CompanyID:   p.CompanyID,
		Website:     p.Website,
		Industry:    p.Industry,
		RawData:     p.Description,
	}
}
