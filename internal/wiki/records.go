package wiki

import (
	"strconv"
	"strings"
	"time"
)

// Kind of reference record.
type Kind string

const (
	KindPlanet       Kind = "planet"
	KindAlien        Kind = "alien"
	KindCharacter    Kind = "character"
	KindOrganization Kind = "organization"
	KindSpaceship    Kind = "spaceship"
	KindMovie        Kind = "movie"
)

// Kinds in display order.
var Kinds = []Kind{KindPlanet, KindAlien, KindCharacter, KindOrganization, KindSpaceship, KindMovie}

// Plural name of the kind, as used by the console directives.
func (k Kind) Plural() string { return string(k) + "s" }

// ParseKind accepts both the singular and the plural name of a kind.
func ParseKind(value string) (Kind, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, kind := range Kinds {
		if value == string(kind) || value == kind.Plural() {
			return kind, true
		}
	}
	return "", false
}

// Record is a single reference entry.
type Record interface {
	// Meta returns the fields shared by every kind.
	Meta() Metadata
	// Kind of the record.
	Kind() Kind
	// Classifier is the short label shown in listings.
	Classifier() string
	// SearchFields returns every descriptive text field, list elements included.
	SearchFields() []string
}

// Metadata shared by every record.
type Metadata struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Franchise string    `json:"franchise"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Meta implements Record.
func (m Metadata) Meta() Metadata { return m }

// PlanetType enumerates the kinds of worlds.
type PlanetType string

const (
	PlanetTypePlanet       PlanetType = "planet"
	PlanetTypeMoon         PlanetType = "moon"
	PlanetTypeAsteroid     PlanetType = "asteroid"
	PlanetTypeSpaceStation PlanetType = "space_station"
	PlanetTypeArtificial   PlanetType = "artificial"
)

// Planet record.
type Planet struct {
	Metadata
	Type             PlanetType `json:"type"`
	Classification   string     `json:"classification,omitempty"`
	Location         string     `json:"location,omitempty"`
	Atmosphere       string     `json:"atmosphere,omitempty"`
	Gravity          string     `json:"gravity,omitempty"`
	Climate          string     `json:"climate,omitempty"`
	Population       string     `json:"population,omitempty"`
	Government       string     `json:"government,omitempty"`
	TechnologyLevel  string     `json:"technology_level,omitempty"`
	NotableFeatures  []string   `json:"notable_features"`
	NotableLocations []string   `json:"notable_locations"`
	History          string     `json:"history,omitempty"`
	FirstAppearance  string     `json:"first_appearance,omitempty"`
	Description      string     `json:"description"`
	Inhabitants      []string   `json:"inhabitants"`
}

func (p *Planet) Kind() Kind { return KindPlanet }

func (p *Planet) Classifier() string {
	return strings.ReplaceAll(string(p.Type), "_", " ")
}

func (p *Planet) SearchFields() []string {
	fields := []string{
		p.Name, string(p.Type), p.Classification, p.Location, p.Atmosphere, p.Gravity, p.Climate,
		p.Population, p.Government, p.TechnologyLevel, p.History, p.FirstAppearance, p.Description,
	}
	fields = append(fields, p.NotableFeatures...)
	fields = append(fields, p.NotableLocations...)
	return append(fields, p.Inhabitants...)
}

// Alien record.
type Alien struct {
	Metadata
	Species            string   `json:"species"`
	HomePlanet         string   `json:"home_planet,omitempty"`
	Classification     string   `json:"classification,omitempty"`
	Physiology         string   `json:"physiology,omitempty"`
	Lifespan           string   `json:"lifespan,omitempty"`
	IntelligenceLevel  string   `json:"intelligence_level,omitempty"`
	TechnologyLevel    string   `json:"technology_level,omitempty"`
	Culture            string   `json:"culture,omitempty"`
	Government         string   `json:"government,omitempty"`
	Language           string   `json:"language,omitempty"`
	NotableAbilities   []string `json:"notable_abilities"`
	Weaknesses         []string `json:"weaknesses,omitempty"`
	History            string   `json:"history,omitempty"`
	FirstAppearance    string   `json:"first_appearance,omitempty"`
	Description        string   `json:"description"`
	NotableIndividuals []string `json:"notable_individuals"`
}

func (a *Alien) Kind() Kind         { return KindAlien }
func (a *Alien) Classifier() string { return a.Species }

func (a *Alien) SearchFields() []string {
	fields := []string{
		a.Name, a.Species, a.HomePlanet, a.Classification, a.Physiology, a.Lifespan, a.IntelligenceLevel,
		a.TechnologyLevel, a.Culture, a.Government, a.Language, a.History, a.FirstAppearance, a.Description,
	}
	fields = append(fields, a.NotableAbilities...)
	fields = append(fields, a.Weaknesses...)
	return append(fields, a.NotableIndividuals...)
}

// Character record.
type Character struct {
	Metadata
	Species         string `json:"species,omitempty"`
	Occupation      string `json:"occupation,omitempty"`
	Affiliation     string `json:"affiliation,omitempty"`
	Status          string `json:"status,omitempty"`
	History         string `json:"history,omitempty"`
	FirstAppearance string `json:"first_appearance,omitempty"`
	Description     string `json:"description"`
}

func (c *Character) Kind() Kind         { return KindCharacter }
func (c *Character) Classifier() string { return c.Occupation }

func (c *Character) SearchFields() []string {
	return []string{
		c.Name, c.Species, c.Occupation, c.Affiliation, c.Status, c.History, c.FirstAppearance, c.Description,
	}
}

// Organization record.
type Organization struct {
	Metadata
	Type            string `json:"type"`
	Headquarters    string `json:"headquarters,omitempty"`
	Leader          string `json:"leader,omitempty"`
	History         string `json:"history,omitempty"`
	FirstAppearance string `json:"first_appearance,omitempty"`
	Description     string `json:"description"`
}

func (o *Organization) Kind() Kind         { return KindOrganization }
func (o *Organization) Classifier() string { return o.Type }

func (o *Organization) SearchFields() []string {
	return []string{o.Name, o.Type, o.Headquarters, o.Leader, o.History, o.FirstAppearance, o.Description}
}

// Spaceship record.
type Spaceship struct {
	Metadata
	Class           string `json:"class,omitempty"`
	Registry        string `json:"registry,omitempty"`
	Owner           string `json:"owner,omitempty"`
	Operator        string `json:"operator,omitempty"`
	Status          string `json:"status,omitempty"`
	History         string `json:"history,omitempty"`
	FirstAppearance string `json:"first_appearance,omitempty"`
	Description     string `json:"description"`
}

func (s *Spaceship) Kind() Kind         { return KindSpaceship }
func (s *Spaceship) Classifier() string { return s.Class }

func (s *Spaceship) SearchFields() []string {
	return []string{
		s.Name, s.Class, s.Registry, s.Owner, s.Operator, s.Status, s.History, s.FirstAppearance, s.Description,
	}
}

// Movie record.
type Movie struct {
	Metadata
	Director    string   `json:"director,omitempty"`
	ReleaseYear int      `json:"release_year,omitempty"`
	PlotSummary string   `json:"plot_summary,omitempty"`
	Characters  []string `json:"characters,omitempty"`
	Setting     string   `json:"setting,omitempty"`
	Description string   `json:"description"`
}

func (m *Movie) Kind() Kind { return KindMovie }

func (m *Movie) Classifier() string {
	if m.ReleaseYear == 0 {
		return ""
	}
	return strconv.Itoa(m.ReleaseYear)
}

func (m *Movie) SearchFields() []string {
	fields := []string{m.Name, m.Director, m.Classifier(), m.PlotSummary, m.Setting, m.Description}
	return append(fields, m.Characters...)
}
