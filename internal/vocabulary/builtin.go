package vocabulary

// Experience level labels used by the indicator groups.
const (
	LevelSenior = "Senior"
	LevelMid    = "Mid Level"
	LevelEntry  = "Entry Level"
)

var basicTech = []string{
	"javascript", "python", "java", "react", "angular", "vue", "node.js", "express",
	"mongodb", "postgresql", "mysql", "aws", "azure", "docker", "kubernetes",
	"git", "agile", "scrum", "api", "rest", "graphql", "typescript", "html", "css",
	"machine learning", "ai", "data science", "analytics", "sql", "nosql",
	"frontend", "backend", "fullstack", "devops", "ci/cd", "testing", "qa",
}

var softSkills = []string{
	"project management", "leadership", "communication", "teamwork", "problem solving",
}

var extendedTech = []string{
	// languages
	"javascript", "typescript", "python", "java", "c++", "c#", "go", "rust", "swift", "kotlin",
	"php", "ruby", "scala", "r", "matlab", "perl", "bash", "powershell",
	// frontend
	"react", "angular", "vue", "svelte", "next.js", "nuxt.js", "gatsby", "ember",
	"html", "css", "sass", "less", "stylus", "tailwind", "bootstrap", "material-ui",
	// backend
	"node.js", "express", "fastify", "koa", "django", "flask", "spring", "asp.net",
	"laravel", "symfony", "rails", "gin", "echo", "fiber",
	// databases
	"mongodb", "postgresql", "mysql", "sqlite", "redis", "elasticsearch", "dynamodb",
	"firebase", "supabase", "planetscale", "cockroachdb",
	// cloud and devops
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "ansible", "jenkins",
	"github actions", "gitlab ci", "circleci", "travis ci", "argo cd",
	// machine learning
	"machine learning", "deep learning", "neural networks", "tensorflow", "pytorch",
	"scikit-learn", "keras", "opencv", "nltk", "spacy", "hugging face",
	// data science
	"data science", "data analysis", "statistics", "pandas", "numpy", "matplotlib",
	"seaborn", "plotly", "tableau", "power bi", "jupyter", "colab",
	// methodologies
	"agile", "scrum", "kanban", "waterfall", "devops", "ci/cd", "tdd", "bdd",
	"lean", "six sigma", "design thinking",
}

var industry = []string{
	"finance", "healthcare", "education", "retail", "manufacturing", "technology",
	"consulting", "non-profit", "government", "startup", "enterprise", "saas",
	"e-commerce", "media", "entertainment", "real estate", "legal", "marketing",
}

var seniority = []string{
	"years of experience", "senior", "lead", "manager", "director", "vp", "cto",
	"architect", "principal", "expert", "specialist", "consultant",
}

var education = []string{"phd", "master", "bachelor", "degree", "certification"}

// BasicKeywords is the vocabulary the basic extractor scans job descriptions with.
func BasicKeywords() Vocabulary {
	terms := make([]string, 0, len(basicTech)+len(softSkills))
	terms = append(terms, basicTech...)
	terms = append(terms, softSkills...)
	return New(terms...)
}

// BasicSkills is the vocabulary the basic extractor scans resumes with.
func BasicSkills() Vocabulary {
	return New(basicTech...)
}

// ExtendedTech is the larger vocabulary used by the enrichment strategy.
func ExtendedTech() Vocabulary {
	return New(extendedTech...)
}

func Industry() Vocabulary {
	return New(industry...)
}

// Seniority lists job titles and phrases that hint at seniority.
func Seniority() Vocabulary {
	return New(seniority...)
}

func Education() Vocabulary {
	return New(education...)
}

// BasicLevels is the two-step classification of the basic extractor:
// senior indicators are checked before mid-level ones.
func BasicLevels() Levels {
	return Levels{
		{Level: LevelSenior, Indicators: New("senior", "lead", "principal")},
		{Level: LevelMid, Indicators: New("mid-level", "intermediate")},
	}
}

// ExtendedLevels is the three-group classification of the enrichment strategy.
func ExtendedLevels() Levels {
	return Levels{
		{Level: LevelSenior, Indicators: New("senior", "lead", "principal", "architect", "director", "vp", "cto", "10+ years", "15+ years")},
		{Level: LevelMid, Indicators: New("mid-level", "intermediate", "3+ years", "5+ years", "experienced", "specialist")},
		{Level: LevelEntry, Indicators: New("junior", "entry", "graduate", "intern", "0-2 years", "recent graduate")},
	}
}
