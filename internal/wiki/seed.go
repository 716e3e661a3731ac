package wiki

import "time"

// NewSeededStore returns a store holding the built-in reference data.
func NewSeededStore() (*Store, error) {
	return NewStore(SeedRecords(time.Now().UTC())...)
}

// SeedRecords returns the built-in reference data, timestamped with now.
func SeedRecords(now time.Time) []Record {
	meta := func(id, name, franchise string) Metadata {
		return Metadata{ID: id, Name: name, Franchise: franchise, CreatedAt: now, UpdatedAt: now}
	}

	return []Record{
		&Planet{
			Metadata:         meta("lv-426", "LV-426 (Acheron)", "Alien"),
			Type:             PlanetTypeMoon,
			Classification:   "Primordial",
			Location:         "Zeta II Reticuli system",
			Atmosphere:       "Inert, high nitrogen content",
			Gravity:          "1.1g",
			Climate:          "Harsh, volcanic",
			Population:       "None (formerly Hadley's Hope colony)",
			Government:       "None",
			TechnologyLevel:  "None",
			NotableFeatures:  []string{"Derelict Engineer spacecraft", "Xenomorph hive"},
			NotableLocations: []string{"Hadley's Hope colony", "Atmosphere processing station"},
			History: "Site of the first human encounter with the Xenomorphs. The colony of Hadley's Hope was established " +
				"here and subsequently destroyed by a Xenomorph infestation.",
			FirstAppearance: "Alien (1979)",
			Description:     "A desolate, primordial moon where the Xenomorph species was first discovered by the crew of the USCSS Nostromo.",
			Inhabitants:     []string{"Xenomorphs"},
		},
		&Alien{
			Metadata:          meta("xenomorph", "Xenomorph XX121", "Alien"),
			Species:           "Xenomorph",
			HomePlanet:        "Unknown",
			Classification:    "Endoparasitoid",
			Physiology:        "Biomechanical appearance, inner pharyngeal jaw, acid blood, chitinous exoskeleton. Varies based on host.",
			Lifespan:          "Unknown",
			IntelligenceLevel: "Cunning predator with observational learning abilities.",
			TechnologyLevel:   "None (biological weapons)",
			Culture:           "Hive-based society led by a Queen.",
			Government:        "Queen-dominated hierarchy",
			Language:          "None known",
			NotableAbilities:  []string{"Acidic blood", "Parasitic reproduction", "Enhanced strength and agility", "Stealth"},
			Weaknesses:        []string{"Fire", "Extreme cold", "Vulnerability during chestburster stage"},
			History: "A highly adaptable and aggressive species encountered by humanity on LV-426. The Weyland-Yutani " +
				"Corporation has a vested interest in capturing and weaponizing the creature.",
			FirstAppearance:    "Alien (1979)",
			Description:        "The perfect organism. Its structural perfection is matched only by its hostility.",
			NotableIndividuals: []string{`The "Big Chap"`, "The Queen", "Grid"},
		},
		&Character{
			Metadata:    meta("ellen-ripley", "Ellen Ripley", "Alien"),
			Species:     "Human",
			Occupation:  "Warrant Officer",
			Affiliation: "Weyland-Yutani Corporation (formerly)",
			Status:      "Deceased (cloned as Ripley 8)",
			History: "The sole survivor of the USCSS Nostromo incident, Ripley became a key figure in the fight against the " +
				"Xenomorphs. She sacrificed her life to prevent the Weyland-Yutani Corporation from obtaining a Queen embryo.",
			FirstAppearance: "Alien (1979)",
			Description:     "A resourceful and resilient survivor, Ripley is one of the most iconic figures in the history of science fiction.",
		},
		&Organization{
			Metadata:     meta("weyland-yutani", "Weyland-Yutani Corporation", "Alien"),
			Type:         "Conglomerate",
			Headquarters: "Earth",
			Leader:       "Board of Directors",
			History: "A powerful and ruthless corporation with a hidden agenda to capture and weaponize the Xenomorph species. " +
				`They are known for their slogan "Building Better Worlds" and their willingness to sacrifice human life for profit.`,
			FirstAppearance: "Alien (1979)",
			Description: "The primary antagonist of the Alien franchise, the Weyland-Yutani Corporation represents the worst " +
				"aspects of corporate greed and ambition.",
		},
		&Spaceship{
			Metadata: meta("uscss-nostromo", "USCSS Nostromo", "Alien"),
			Class:    "M-Class Starfreighter",
			Registry: "180924609",
			Owner:    "Weyland-Yutani Corporation",
			Operator: "Weyland-Yutani Corporation",
			Status:   "Destroyed",
			History: "A commercial towing vehicle that was diverted to LV-426 to investigate a distress signal. The crew of the " +
				"Nostromo had the first recorded human encounter with a Xenomorph, which resulted in the destruction of the " +
				"ship and the loss of all but one crew member.",
			FirstAppearance: "Alien (1979)",
			Description: "The iconic spaceship from the first Alien film. The Nostromo's dark, industrial corridors and " +
				"claustrophobic atmosphere set the tone for the entire franchise.",
		},
		&Organization{
			Metadata:     meta("prodigy-corporation", "Prodigy Corporation", "Alien: Earth"),
			Type:         "Corporation",
			Headquarters: "Prodigy City, New Siam",
			Leader:       "Boy Kavalier",
			History: "A large corporation that operated on Earth during the Corporate Era in the early 22nd century. " +
				"It was a major player in the development of hybrid technology.",
			FirstAppearance: "Alien: Earth (TV series)",
			Description:     `A key corporation in the "Alien: Earth" TV series, specializing in the development of human-consciousness "hybrids".`,
		},
		&Alien{
			Metadata:          meta("synthetic", "Synthetic", "Alien"),
			Species:           "Android",
			HomePlanet:        "Earth",
			Classification:    "Artificial person",
			Physiology:        "Carbon-fiber skeleton, vat-grown silicon muscles, and a white liquid latex circulatory system.",
			Lifespan:          "Effectively immortal with proper maintenance.",
			IntelligenceLevel: "Advanced AI with heuristic logic drivers.",
			TechnologyLevel:   "Highly advanced",
			Culture:           "Varies by model and programming. Generally passive and non-threatening.",
			Government:        "Owned and operated by corporations and individuals.",
			Language:          "Human languages",
			NotableAbilities:  []string{"Superhuman strength and speed", "Vast memory and processing power"},
			Weaknesses: []string{
				"Vulnerable to hydrostatic shock and explosive damage",
				"Can be deactivated by critical damage to the head or chest power cell.",
			},
			History: "Bio-mechanical androids designed to be indistinguishable from humans to make interaction more " +
				"comfortable. They are a common sight throughout the colonized galaxy.",
			FirstAppearance:    "Alien (1979)",
			Description:        "Artificial persons with human-like appearance and superhuman abilities. They are a cornerstone of the workforce in the 22nd century.",
			NotableIndividuals: []string{"Ash", "Bishop", "Call", "David", "Walter"},
		},
		&Alien{
			Metadata:           meta("cyborg", "Cyborg", "Alien: Earth"),
			Species:            "Human (augmented)",
			HomePlanet:         "Earth",
			Classification:     "Cybernetically enhanced human",
			Physiology:         "A combination of biological and artificial, cybernetic parts.",
			Lifespan:           "Varies",
			IntelligenceLevel:  "Human-level",
			TechnologyLevel:    "Advanced",
			Culture:            "Integrated into human society, but may face prejudice.",
			Government:         "Same as humans",
			Language:           "Human languages",
			NotableAbilities:   []string{"Varies depending on the cybernetic enhancements."},
			Weaknesses:         []string{"Varies depending on the cybernetic enhancements."},
			History:            "Humans with cybernetic enhancements. The term can be used as an insult.",
			FirstAppearance:    "Alien: Earth (TV series)",
			Description:        "Humans with a combination of biological and artificial, cybernetic parts.",
			NotableIndividuals: []string{"Morrow"},
		},
		&Movie{
			Metadata:    meta("alien-romulus", "Alien: Romulus", "Alien"),
			Director:    "Fede Álvarez",
			ReleaseYear: 2024,
			PlotSummary: "A group of young space colonizers scavenging a derelict space station face a terrifying life-form.",
			Characters:  []string{"Rain Carradine", "Tyler", "Andy", "Kay", "Bjorn", "Navarro"},
			Setting:     "Romulus space station",
			Description: "A standalone film in the Alien franchise, set between the events of Alien (1979) and Aliens (1986).",
		},
	}
}
