// Package catalog holds the static reference data bundled with the application:
// the company profiles used for autocomplete, the industry list and the
// solution catalog used for recommendations.
package catalog

import (
	"embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/salesai/backend/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embedded embed.FS

// Catalog is immutable once loaded
type Catalog struct {
	Companies  []domain.CompanyProfile
	Industries []string
	Solutions  []domain.SystexSolution
}

// solutionRecord is the on-disk form of a solution; pain points are one delimited string
type solutionRecord struct {
	ID             string `yaml:"id"`
	Title          string `yaml:"title"`
	Summary        string `yaml:"summary"`
	PainPoints     string `yaml:"painPoints"`
	ValuePitch     string `yaml:"valuePitch"`
	OwnerUnit      string `yaml:"ownerUnit"`
	SourceType     string `yaml:"sourceType"`
	SourceFileName string `yaml:"sourceFileName"`
	SourceLink     string `yaml:"sourceLink"`
}

var painPointSeparators = regexp.MustCompile(`[\n;,，；]+`)

// SplitPainPoints splits a delimited pain point string on newlines, ; , ， and ；
// and drops empty entries.
func SplitPainPoints(input string) []string {
	var out []string
	for _, part := range painPointSeparators.Split(input, -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Default returns the embedded catalog. It panics if the embedded data is malformed.
func Default() *Catalog {
	c, err := Load("", "")
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded data is invalid: %v", err))
	}
	return c
}

// Load reads the catalogs, replacing the embedded companies or solutions with
// the given files when the paths are non-empty.
func Load(companiesFile, solutionsFile string) (*Catalog, error) {
	companiesData, err := readSource(companiesFile, "data/companies.yaml")
	if err != nil {
		return nil, err
	}
	solutionsData, err := readSource(solutionsFile, "data/solutions.yaml")
	if err != nil {
		return nil, err
	}
	industriesData, err := embedded.ReadFile("data/industries.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read industries: %w", err)
	}

	c := &Catalog{}
	if err := yaml.Unmarshal(companiesData, &c.Companies); err != nil {
		return nil, fmt.Errorf("failed to decode companies: %w", err)
	}
	if err := yaml.Unmarshal(industriesData, &c.Industries); err != nil {
		return nil, fmt.Errorf("failed to decode industries: %w", err)
	}

	var records []solutionRecord
	if err := yaml.Unmarshal(solutionsData, &records); err != nil {
		return nil, fmt.Errorf("failed to decode solutions: %w", err)
	}
	for _, r := range records {
		c.Solutions = append(c.Solutions, domain.SystexSolution{
			ID:             r.ID,
			Title:          r.Title,
			Summary:        r.Summary,
			PainPoints:     SplitPainPoints(r.PainPoints),
			ValuePitch:     r.ValuePitch,
			OwnerUnit:      r.OwnerUnit,
			SourceType:     r.SourceType,
			SourceFileName: r.SourceFileName,
			SourceLink:     r.SourceLink,
		})
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func readSource(path, embeddedName string) ([]byte, error) {
	if path == "" {
		data, err := embedded.ReadFile(embeddedName)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", embeddedName, err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	return data, nil
}

func (c *Catalog) validate() error {
	for i, p := range c.Companies {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("company #%d has no name", i)
		}
	}
	seen := make(map[string]bool)
	for i, s := range c.Solutions {
		if s.ID == "" {
			return fmt.Errorf("solution #%d has no id", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate solution id %q", s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}

// SolutionByID looks up a catalog solution
func (c *Catalog) SolutionByID(id string) (domain.SystexSolution, bool) {
	for _, s := range c.Solutions {
		if s.ID == id {
			return s, true
		}
	}
	return domain.SystexSolution{}, false
}

// CompanyByName finds the profile whose name or any keyword token equals name,
// ignoring case and surrounding whitespace.
func (c *Catalog) CompanyByName(name string) (domain.CompanyProfile, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return domain.CompanyProfile{}, false
	}
	for _, p := range c.Companies {
		if strings.ToLower(p.Name) == needle {
			return p, true
		}
		for _, k := range p.KeywordTokens {
			if strings.ToLower(k) == needle {
				return p, true
			}
		}
	}
	return domain.CompanyProfile{}, false
}

// IsIndustry reports whether label is one of the known industries
func (c *Catalog) IsIndustry(label string) bool {
	for _, i := range c.Industries {
		if i == label {
			return true
		}
	}
	return false
}
