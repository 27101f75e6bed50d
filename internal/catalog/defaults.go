package catalog

// defaultEntries is the catalog shipped with `bibliosort init`. Users are
// expected to edit the generated catalog file to match their own library.
var defaultEntries = []Entry{
	{
		Label:       "Personal Development",
		Code:        "DevPerso",
		Description: "Personal development focuses on improving motivation, discipline, mindset, and productivity.",
	},
	{
		Label:       "Politics",
		Code:        "Politique",
		Description: "Politics deals with governance, history, colonialism, diplomacy, and society.",
	},
	{
		Label:       "Finance",
		Code:        "Finance",
		Description: "Finance involves money, investing, banking, economics, and financial systems.",
	},
	{
		Label:       "Computer Networks",
		Code:        "Reseaux",
		Description: "Networks include communication systems, internet, social media, and influence structures.",
	},
	{
		Label:       "Nanosciences",
		Code:        "Nano",
		Description: "Nanosciences cover quantum physics, atoms, molecules, and material science at the nanoscale.",
	},
	{
		Label:       "Mathematics",
		Code:        "Maths",
		Description: "Mathematics includes algebra, statistics, probability, calculus, and logical reasoning.",
	},
	{
		Label:       "Algorithms and Programming",
		Code:        "Algo",
		Description: "Algorithms involve programming, problem-solving, code efficiency, and computational logic.",
	},
	{
		Label:       "Machine Learning",
		Code:        "ML",
		Description: "Machine learning teaches computers to learn from data using models and patterns.",
	},
	{
		Label:       "Deep Learning",
		Code:        "DL",
		Description: "Deep learning is a subset of ML focusing on neural networks with many layers and large data.",
	},
	{
		Label:       "Large Language Models",
		Code:        "LLM",
		Description: "Large Language Models like GPT or BERT are AI models that understand and generate human language.",
	},
	{
		Label:       "Data Engineering",
		Code:        "DE",
		Description: "Data Engineering involves building data pipelines, using tools like Spark, ETL processes, and databases.",
	},
	{
		Label:       "Reinforcement Learning",
		Code:        "RL",
		Description: "Reinforcement Learning is a type of ML where agents learn through rewards and interactions.",
	},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(defaultEntries)
	if err != nil {
		// The built-in entries are validated by tests; this cannot happen
		// at runtime.
		panic(err)
	}
	return c
}
