package parsing

// skillsDB maps skill categories to the keywords recognized for each.
// Keywords are matched as case-insensitive substrings of the resume
// text.
var skillsDB = map[string][]string{
	"programming_languages": {
		"python", "java", "javascript", "c++", "c#", "php", "ruby", "go",
		"rust", "swift", "kotlin", "scala", "r", "matlab", "perl", "shell",
		"bash", "powershell", "typescript", "dart", "objective-c", "assembly",
		"cobol", "fortran", "haskell", "lua", "groovy",
	},
	"web_development": {
		"html", "css", "react", "angular", "vue", "node.js", "express",
		"django", "flask", "spring", "laravel", "codeigniter", "symfony",
		"rails", "asp.net", "jquery", "bootstrap", "sass", "less", "webpack",
		"gulp", "grunt", "npm", "yarn", "next.js", "nuxt.js", "svelte",
		"ember.js", "backbone.js", "meteor", "gatsby", "strapi",
	},
	"data_science": {
		"machine learning", "deep learning", "artificial intelligence",
		"data analysis", "statistics", "pandas", "numpy", "scipy",
		"scikit-learn", "tensorflow", "pytorch", "keras", "matplotlib",
		"seaborn", "plotly", "jupyter", "anaconda", "data mining", "big data",
		"hadoop", "spark", "kafka", "airflow", "mlflow", "kubeflow", "dask",
	},
	"databases": {
		"sql", "mysql", "postgresql", "mongodb", "redis", "elasticsearch",
		"oracle", "sql server", "sqlite", "cassandra", "dynamodb", "neo4j",
		"couchdb", "influxdb", "mariadb", "firestore", "realm", "hbase",
		"clickhouse", "snowflake", "bigquery",
	},
	"cloud_technologies": {
		"aws", "azure", "gcp", "google cloud", "docker", "kubernetes",
		"terraform", "jenkins", "gitlab ci", "github actions", "circleci",
		"travis ci", "ansible", "puppet", "chef", "vagrant", "helm", "istio",
		"prometheus", "grafana", "elk stack",
	},
	"mobile_development": {
		"ios", "android", "react native", "flutter", "swift", "kotlin",
		"xamarin", "ionic", "cordova", "phonegap", "unity", "unreal engine",
		"cocos2d", "titanium",
	},
	"design": {
		"ui/ux", "photoshop", "illustrator", "figma", "sketch", "adobe xd",
		"indesign", "after effects", "premiere pro", "blender", "maya",
		"3ds max", "cinema 4d", "zbrush", "substance painter", "canva",
		"invision", "principle", "framer",
	},
	"project_management": {
		"agile", "scrum", "kanban", "jira", "confluence", "trello", "asana",
		"monday.com", "project management", "pmp", "prince2", "lean",
		"six sigma", "waterfall", "risk management", "stakeholder management",
		"budget management",
	},
	"soft_skills": {
		"leadership", "communication", "teamwork", "problem solving",
		"analytical thinking", "critical thinking", "creativity",
		"adaptability", "time management", "negotiation", "presentation",
		"public speaking", "mentoring", "coaching", "conflict resolution",
	},
	"cybersecurity": {
		"cybersecurity", "information security", "penetration testing",
		"ethical hacking", "vulnerability assessment", "incident response",
		"forensics", "compliance", "risk assessment", "security audit",
		"firewall", "ids", "ips", "siem", "soc",
	},
	"devops": {
		"devops", "ci/cd", "continuous integration", "continuous deployment",
		"automation", "infrastructure as code", "monitoring", "logging",
		"containerization", "orchestration", "microservices", "serverless",
		"lambda", "api gateway", "load balancing",
	},
}

// skillCategoryOrder fixes category iteration order so repeated parses
// of the same text always yield the same skill ordering.
var skillCategoryOrder = []string{
	"programming_languages", "web_development", "data_science", "databases",
	"cloud_technologies", "mobile_development", "design",
	"project_management", "soft_skills", "cybersecurity", "devops",
}

// Proficiency context indicators: tokens found near a skill mention
// that hint at the candidate's level with it.
var (
	expertIndicators       = []string{"expert", "advanced", "senior", "lead", "architect", "specialist", "years"}
	intermediateIndicators = []string{"experienced", "proficient", "skilled", "familiar", "working knowledge"}
	beginnerIndicators     = []string{"basic", "beginner", "learning", "exposure", "introduction"}
)
