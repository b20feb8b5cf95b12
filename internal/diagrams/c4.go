package diagrams

// The C4 model diagrams of the Rinna system. Each builder returns the
// source graph for one diagram level; serialization and rendering live
// in generator.go.

func contextDiagram() *graph {
	return &graph{
		title: "Rinna System Context",
		nodes: []node{
			{id: "users", label: "Development Teams"},
		},
		clusters: []cluster{
			{
				id: "rinna", label: "Rinna Workflow Management",
				nodes: []node{
					{id: "core", label: "Rinna Core"},
					{id: "api", label: "API Server"},
					{id: "cli", label: "CLI Tool"},
					{id: "db", label: "Database"},
				},
			},
			{
				id: "external", label: "External Systems",
				nodes: []node{
					{id: "vcs", label: "Git Server"},
					{id: "ci", label: "CI/CD System"},
					{id: "docs", label: "Document Repository"},
				},
			},
		},
		edges: []edge{
			{"users", "cli"},
			{"cli", "api"},
			{"api", "core"},
			{"core", "db"},
			{"users", "api"},
			{"core", "vcs"},
			{"core", "docs"},
			{"api", "ci"},
		},
	}
}

func containerDiagram() *graph {
	return &graph{
		title: "Rinna Container Diagram",
		nodes: []node{
			{id: "dev", label: "Developer"},
			{id: "pm", label: "Project Manager"},
		},
		clusters: []cluster{
			{
				id: "system", label: "Rinna System",
				clusters: []cluster{
					{
						id: "frontend", label: "Frontend",
						nodes: []node{
							{id: "cli", label: "CLI Tool"},
							{id: "web", label: "Web Interface"},
						},
					},
					{
						id: "backend", label: "Backend Services",
						nodes: []node{
							{id: "api", label: "API Server"},
							{id: "core", label: "Core Domain"},
							{id: "docsvc", label: "Document Service"},
						},
					},
					{
						id: "data", label: "Data Storage",
						nodes: []node{
							{id: "db", label: "Local Database"},
							{id: "docstore", label: "Document Store"},
						},
					},
				},
			},
			{
				id: "external", label: "External Systems",
				nodes: []node{
					{id: "git", label: "GitHub"},
					{id: "cicd", label: "CI/CD Pipeline"},
				},
			},
		},
		edges: []edge{
			{"dev", "cli"},
			{"cli", "api"},
			{"api", "core"},
			{"core", "db"},
			{"pm", "web"},
			{"web", "api"},
			{"api", "docsvc"},
			{"docsvc", "docstore"},
			{"core", "git"},
		},
	}
}

func componentDiagram() *graph {
	return &graph{
		title: "Rinna Component Diagram",
		clusters: []cluster{
			{
				id: "core", label: "Core Domain",
				nodes: []node{
					{id: "model", label: "Domain Model"},
					{id: "services", label: "Domain Services"},
					{id: "repos", label: "Repositories"},
				},
			},
			{
				id: "service", label: "Service Layer",
				nodes: []node{
					{id: "workflow", label: "Workflow Service"},
					{id: "items", label: "Item Service"},
					{id: "releases", label: "Release Service"},
					{id: "queues", label: "Queue Service"},
					{id: "docs", label: "Document Service"},
				},
			},
			{
				id: "persistence", label: "Persistence",
				nodes: []node{
					{id: "db", label: "SQLite Database"},
					{id: "mem", label: "In-Memory Store"},
				},
			},
			{
				id: "api", label: "API",
				nodes: []node{
					{id: "rest", label: "REST API"},
					{id: "webhook", label: "Webhook Handler"},
					{id: "health", label: "Health Check"},
				},
			},
		},
		edges: []edge{
			{"model", "services"},
			{"services", "repos"},
			{"workflow", "model"},
			{"items", "model"},
			{"releases", "model"},
			{"queues", "model"},
			{"repos", "db"},
			{"repos", "mem"},
			{"rest", "workflow"},
			{"rest", "items"},
			{"rest", "releases"},
			{"rest", "queues"},
			{"rest", "docs"},
			{"webhook", "items"},
		},
	}
}

func codeDiagram() *graph {
	return &graph{
		title:   "Rinna Code Diagram",
		rankdir: "TB",
		clusters: []cluster{
			{
				id: "model", label: "Domain Model",
				nodes: []node{
					{id: "project", label: "Project"},
					{id: "workitem", label: "WorkItem"},
					{id: "release", label: "Release"},
					{id: "workqueue", label: "WorkQueue"},
					{id: "state", label: "WorkflowState"},
				},
			},
			{
				id: "services", label: "Domain Services",
				nodes: []node{
					{id: "projectsvc", label: "ProjectService"},
					{id: "itemsvc", label: "ItemService"},
					{id: "releasesvc", label: "ReleaseService"},
					{id: "queuesvc", label: "QueueService"},
					{id: "workflowsvc", label: "WorkflowService"},
				},
			},
			{
				id: "repos", label: "Repositories",
				nodes: []node{
					{id: "projectrepo", label: "ProjectRepository"},
					{id: "itemrepo", label: "ItemRepository"},
					{id: "releaserepo", label: "ReleaseRepository"},
					{id: "queuerepo", label: "QueueRepository"},
				},
			},
		},
		edges: []edge{
			{"projectsvc", "project"},
			{"project", "projectrepo"},
			{"itemsvc", "workitem"},
			{"workitem", "itemrepo"},
			{"releasesvc", "release"},
			{"release", "releaserepo"},
			{"queuesvc", "workqueue"},
			{"workqueue", "queuerepo"},
			{"workflowsvc", "state"},
			{"workflowsvc", "workitem"},
		},
	}
}

func cleanArchitectureDiagram() *graph {
	return &graph{
		title:   "Rinna Clean Architecture",
		rankdir: "TB",
		splines: "ortho",
		clusters: []cluster{
			{
				id: "domain", label: "Core Domain",
				nodes: []node{
					{id: "entities", label: "Entities"},
				},
			},
			{
				id: "usecases", label: "Use Cases",
				nodes: []node{
					{id: "usecases", label: "Use Cases"},
				},
			},
			{
				id: "adapters", label: "Interface Adapters",
				clusters: []cluster{
					{
						id: "input", label: "Input Adapters",
						nodes: []node{
							{id: "controllers", label: "Controllers"},
							{id: "presenters", label: "Presenters"},
						},
					},
					{
						id: "output", label: "Output Adapters",
						nodes: []node{
							{id: "gateways", label: "Gateways"},
							{id: "repositories", label: "Repositories"},
						},
					},
				},
			},
			{
				id: "frameworks", label: "Frameworks & Drivers",
				clusters: []cluster{
					{
						id: "ui", label: "UI",
						nodes: []node{
							{id: "web", label: "Web UI"},
							{id: "cli", label: "CLI"},
						},
					},
					{
						id: "ifaces", label: "External Interfaces",
						nodes: []node{
							{id: "db", label: "Database"},
							{id: "extapi", label: "External APIs"},
						},
					},
				},
			},
		},
		// The dependency rule: arrows point inward.
		edges: []edge{
			{"web", "controllers"},
			{"cli", "controllers"},
			{"controllers", "usecases"},
			{"presenters", "usecases"},
			{"usecases", "entities"},
			{"repositories", "db"},
			{"gateways", "extapi"},
			{"usecases", "repositories"},
			{"usecases", "gateways"},
			{"presenters", "web"},
		},
	}
}
