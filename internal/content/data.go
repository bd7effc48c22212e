package content

// Projects is the portfolio's project history.
var Projects = []Project{
	{
		ID: "music-player", Type: "basic", StartDate: "01/07/2023", EndDate: "01/07/2023",
		Title:       "Music Player",
		Description: "A basic music streaming page built with plain HTML, CSS and JavaScript.",
		TechStack:   []string{"HTML5", "CSS3", "JavaScript"},
		Role:        "Solo Developer",
		WhatLearned: "DOM manipulation basics, the Audio API and event handling in JavaScript.",
		Link:        "https://locnguyensgu.github.io/Music/",
		Category:    "Personal",
	},
	{
		ID: "ecommerce-website", Type: "basic", StartDate: "01/09/2023", EndDate: "31/12/2023",
		Title:       "E-commerce Website",
		Description: "A storefront in vanilla JavaScript using Local Storage as its database.",
		TechStack:   []string{"HTML5", "CSS3", "JavaScript", "Local Storage"},
		Role:        "Frontend Developer",
		WhatLearned: "State management without a framework, responsive design and e-commerce UX patterns.",
		Link:        "https://github.com/LocNguyenSGU/DoAnWebN11",
		Score:       "9.5",
		Category:    "School Project",
	},
	{
		ID: "sgu-test", Type: "advanced", StartDate: "01/02/2024", EndDate: "31/05/2024",
		Title:       "SGU Test System",
		Description: "An online multiple-choice exam system built with Java Servlet and JSP.",
		TechStack:   []string{"Java Servlet", "JSP", "MySQL", "JDBC", "Bootstrap"},
		Role:        "Full-stack Developer",
		WhatLearned: "Servlet architecture, session management, database design and exam security.",
		Link:        "https://github.com/LocNguyenSGU/SGU-Test",
		Score:       "10",
		Category:    "School Project",
		Impressive:  true,
	},
	{
		ID: "tour-booking", Type: "advanced", StartDate: "01/02/2024", EndDate: "31/05/2024",
		Title:       "Tour Booking Website",
		Description: "A travel booking site in PHP following the MVC pattern.",
		TechStack:   []string{"PHP", "MySQL", "MVC Pattern", "Bootstrap", "jQuery"},
		Role:        "Backend Developer",
		WhatLearned: "MVC in PHP, online payments, booking workflows and query tuning.",
		Link:        "https://github.com/lamkbvn/WEB2",
		Score:       "10",
		Category:    "School Project",
		Impressive:  true,
	},
	{
		ID: "sport-field-backend", Type: "advanced", StartDate: "01/09/2024", EndDate: "30/11/2024",
		Title:       "Sport Field Booking System - Backend",
		Description: "A Spring Boot API for booking sports fields.",
		TechStack:   []string{"Spring Boot", "Spring Security", "MySQL", "JWT", "RESTful API"},
		Role:        "Backend Developer",
		WhatLearned: "The Spring Boot ecosystem, JWT authentication and RESTful API design.",
		Link:        "https://github.com/LocNguyenSGU/SportFieldBookingSystem",
		Score:       "9",
		Category:    "School Project",
	},
	{
		ID: "flight-management-backend", Type: "advanced", StartDate: "01/09/2024", EndDate: "30/11/2024",
		Title:       "Flight Management System - Backend",
		Description: "A Spring Boot API for managing flights, bookings and crews.",
		TechStack:   []string{"Spring Boot", "Spring Data JPA", "MySQL", "Spring Security", "Redis"},
		Role:        "Backend Lead Developer",
		WhatLearned: "Complex business rules, caching with Redis and transaction management.",
		Link:        "https://github.com/kietsocola/FlightManagementSystem",
		Score:       "9",
		Category:    "School Project",
		Impressive:  true,
	},
	{
		ID: "calligo-frontend", Type: "advanced", StartDate: "01/12/2024", EndDate: "29/05/2025",
		Title:       "Calligo Frontend",
		Description: "A chat and calling web app with real-time messaging and video calls.",
		TechStack:   []string{"React.js", "Ant Design", "WebSocket", "WebRTC", "Axios"},
		Role:        "Frontend Developer",
		WhatLearned: "WebSocket messaging, WebRTC calls and performance tuning for real-time apps.",
		Link:        "https://github.com/LocNguyenSGU/Calligo-FE",
		Category:    "Team Project",
		Impressive:  true,
	},
	{
		ID: "calligo-backend", Type: "advanced", StartDate: "01/12/2024", EndDate: "28/05/2025",
		Title:       "Calligo Backend",
		Description: "A Spring Boot microservices backend for real-time chat and voice/video calls.",
		TechStack:   []string{"Spring Boot", "WebSocket", "Microservices", "Redis", "MySQL", "RabbitMQ"},
		Role:        "Backend Architect",
		WhatLearned: "Microservice boundaries, RabbitMQ messaging and scaling WebSocket fan-out.",
		Link:        "https://github.com/LocNguyenSGU/Calligo",
		Category:    "Team Project",
		Impressive:  true,
	},
	{
		ID: "social-media", Type: "advanced", StartDate: "23/02/2025", EndDate: "14/04/2025",
		Title:       "Social Media",
		Description: "An Instagram-like backend with JWT, Redis, WebSocket, RabbitMQ and AI features.",
		TechStack:   []string{"Spring Boot", "Spring Security", "Redis", "WebSocket", "RabbitMQ", "MySQL", "OpenAI API", "Gemini AI"},
		Role:        "Backend Lead Developer",
		WhatLearned: "AI integration in a backend, notification fan-out and caching strategies.",
		Link:        "https://github.com/LocNguyenSGU/SocialMedia",
		Score:       "9",
		Category:    "School Project",
		Impressive:  true,
	},
	{
		ID: "backend-spotify", Type: "advanced", StartDate: "01/03/2025", EndDate: "14/04/2025",
		Title:       "Backend Spotify",
		Description: "A Django API for a Spotify clone with recommendation model training.",
		TechStack:   []string{"Django", "Django REST Framework", "WebSocket", "MySQL", "OpenAI API", "Machine Learning"},
		Role:        "Backend Developer & ML Engineer",
		WhatLearned: "Django REST Framework, model training and deployment, and recommendation algorithms.",
		Link:        "https://github.com/lamkbvn/BACKEND_SPOTIFY",
		Score:       "9.5",
		Category:    "School Project",
		Impressive:  true,
	},
	{
		ID: "stem-thesis", Type: "advanced", StartDate: "01/07/2025", EndDate: Now,
		Title:       "Thesis: AI-assisted reinforcement learning platform for STEM education",
		Description: "A microservice system integrated behind Moodle to support STEM teaching.",
		TechStack:   []string{"Spring Boot", "Microservices", "Moodle", "AI/ML", "Docker", "Kubernetes", "PostgreSQL"},
		Role:        "System Architect & Lead Developer",
		WhatLearned: "LMS integration, AI-driven education systems and orchestration with Kubernetes.",
		Score:       "10",
		Category:    "Thesis Project",
		Impressive:  true,
	},
}

// Career is the work history, newest first.
var Career = []CareerEntry{
	{
		Title:          "Intern — Full stack Developer",
		Company:        "DG External",
		StartDate:      "Sep 2025",
		EndDate:        Present,
		Description:    "A fast-growing product company specializing in dropshipping solutions.",
		Responsibility: "Building and maintaining the company's storefront products.",
		TechStack:      []string{"Ruby", "Shopify", "PostgreSQL"},
		CompanyURL:     "#",
		Type:           "internship",
	},
}

// TechLogos maps a technology to its icon.
var TechLogos = map[string]string{
	"Ruby":        "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/ruby/ruby-original.svg",
	"Shopify":     "https://cdn.jsdelivr.net/npm/simple-icons@v9/icons/shopify.svg",
	"PostgreSQL":  "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/postgresql/postgresql-original.svg",
	"Spring Boot": "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/spring/spring-original.svg",
	"React":       "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/react/react-original.svg",
	"TypeScript":  "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/typescript/typescript-original.svg",
	"Python":      "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/python/python-original.svg",
	"Django":      "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/django/django-plain.svg",
	"MySQL":       "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/mysql/mysql-original.svg",
	"Redis":       "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/redis/redis-original.svg",
	"Docker":      "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/docker/docker-original.svg",
	"Git":         "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/git/git-original.svg",
}
