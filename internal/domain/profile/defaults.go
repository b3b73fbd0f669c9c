package profile

// NewDefault returns the empty profile used when nothing usable is stored.
func NewDefault() Data {
	return Data{
		PersonalInfo: PersonalInfo{
			Photos:      []string{"", "", ""},
			ContactInfo: ContactInfo{},
		},
		Skills:     SkillSet{Professional: []string{}},
		Experience: []Experience{},
		Education:  []Education{},
		ThemeColor: DefaultThemeColor,
	}
}

const demoAvatarURL = "https://randomuser.me/api/portraits/men/44.jpg"

// NewDemo returns the sample profile written for brand-new accounts.
func NewDemo() Data {
	return Data{
		PersonalInfo: PersonalInfo{
			Name:     "Juan",
			LastName: "Perez",
			Role:     "Senior Product Manager | UX & Digital Strategy",
			Photo:    demoAvatarURL,
			Photos:   []string{demoAvatarURL, "", ""},
			ContactInfo: ContactInfo{
				Email: "juan_perez@hotmail.com",
				Phone: "+57 300 555 7788",
			},
		},
		Skills: SkillSet{Professional: []string{
			"Product Management",
			"UX Research",
			"Scrum / Agile",
			"Data Analytics",
			"Roadmapping",
			"Stakeholder Management",
		}},
		Experience: []Experience{
			{
				ID:          1,
				Period:      "2019 - Presente",
				Title:       "Product Manager",
				Description: "Liderazgo de la visión y estrategia de productos SaaS de alto impacto. Coordinación de equipos multidisciplinarios bajo metodologías ágiles.",
				Bullets: []string{
					"Incremento del 40% en retención de usuarios a través de mejoras en UX.",
					"Liderazgo en el lanzamiento de 3 productos clave del ecosistema digital.",
					"Optimización de costos operativos en un 15% mediante automatización.",
				},
			},
			{
				ID:          2,
				Period:      "2016 - 2019",
				Title:       "UX Lead",
				Description: "Gestión del diseño de experiencia de usuario para plataformas fintech. Implementación de sistemas de diseño escalables.",
				Bullets: []string{
					"Reducción del churn rate en un 25% tras rediseño completo del checkout.",
					"Implementación de cultura de user research y pruebas de usabilidad continuas.",
					"Dirección de un equipo de 5 diseñadores UI/UX.",
				},
			},
			{
				ID:          3,
				Period:      "2014 - 2016",
				Title:       "Business Analyst",
				Description: "Análisis de procesos de negocio y requisitos técnicos para la transformación digital de clientes corporativos.",
				Bullets: []string{
					"Levantamiento de requerimientos para más de 12 proyectos exitosos.",
					"Intervención en la optimización de flujos de trabajo reduciendo tiempos en un 30%.",
					"Aseguramiento del alineamiento entre negocio y tecnología.",
				},
			},
		},
		Education: []Education{
			{ID: 1, Period: "2010 - 2015", Degree: "Ingeniería Industrial", Institution: "Universidad Nacional"},
			{ID: 2, Period: "2017 - 2018", Degree: "MBA Digital Business", Institution: "Business School International"},
		},
		Objective:  "Profesional con 8+ años liderando productos digitales, transformación tecnológica y equipos ágiles. Experto en UX, analytics y growth.",
		ThemeColor: DefaultThemeColor,
	}
}
